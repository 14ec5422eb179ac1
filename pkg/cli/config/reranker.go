package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/service/rerank"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Reranker holds CLI flags for the Cohere cross-encoder
type Reranker struct {
	apiKey   string `masq:"secret"`
	endpoint string
	model    string
}

// Flags returns CLI flags for reranker configuration
func (r *Reranker) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cohere-api-key",
			Usage:       "Cohere API key. Reranking is disabled when empty",
			Category:    "Reranker",
			Sources:     cli.EnvVars("STUBSCOUT_COHERE_API_KEY", "COHERE_API_KEY"),
			Destination: &r.apiKey,
		},
		&cli.StringFlag{
			Name:        "cohere-endpoint",
			Usage:       "Cohere API base URL",
			Value:       rerank.DefaultCohereEndpoint,
			Category:    "Reranker",
			Sources:     cli.EnvVars("STUBSCOUT_COHERE_ENDPOINT"),
			Destination: &r.endpoint,
		},
		&cli.StringFlag{
			Name:        "cohere-model",
			Usage:       "Cohere rerank model",
			Value:       rerank.DefaultCohereModel,
			Category:    "Reranker",
			Sources:     cli.EnvVars("STUBSCOUT_COHERE_MODEL"),
			Destination: &r.model,
		},
	}
}

// LogAttrs returns log attributes for the reranker configuration
func (r *Reranker) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("enabled", r.apiKey != ""),
		slog.String("endpoint", r.endpoint),
		slog.String("model", r.model),
	}
}

// Configure creates the breaker-wrapped Cohere client.
// Returns nil if no API key is configured (results keep their embedding order).
func (r *Reranker) Configure(timeout time.Duration) (rerank.Service, error) {
	if r.apiKey == "" {
		logging.Default().Info("Cohere API key not configured, reranking disabled")
		return nil, nil
	}

	cohere, err := rerank.NewCohere(r.apiKey,
		rerank.WithEndpoint(orDefault(r.endpoint, rerank.DefaultCohereEndpoint)),
		rerank.WithModel(orDefault(r.model, rerank.DefaultCohereModel)),
		rerank.WithTimeout(timeout),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cohere client")
	}

	return rerank.NewBreaker(cohere, rerank.DefaultBreakerSettings()), nil
}
