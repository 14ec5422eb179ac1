package rerank

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker in front of a reranker
type BreakerSettings struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// DefaultBreakerSettings returns the settings used by the server
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:                "rerank",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

type breaker struct {
	next Service
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next with a circuit breaker. While the circuit is open,
// calls fail immediately with model.ErrUpstreamUnavailable.
func NewBreaker(next Service, settings BreakerSettings) Service {
	st := gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logging.Default().Warn("rerank circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// cancellation by the caller is not a reranker failure
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(st),
	}
}

// Rerank implements Service
func (b *breaker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]model.RerankHit, error) {
	resp, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Rerank(ctx, query, documents, topN)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "rerank circuit is open",
				goerr.V("state", b.cb.State().String()),
			)
		}
		return nil, err
	}
	return resp.([]model.RerankHit), nil
}
