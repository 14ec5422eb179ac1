package model

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy shared by services and use cases. Wrap these with goerr.Wrap
// and classify with errors.Is.
var (
	// ErrUpstreamUnavailable means a dependency failed on network, auth or protocol level
	ErrUpstreamUnavailable = goerr.New("upstream unavailable")

	// ErrInvalidInput means required request fields were missing
	ErrInvalidInput = goerr.New("invalid input")

	// ErrNoResults means a stage produced nothing
	ErrNoResults = goerr.New("no results")

	// ErrPartialMapFailure means reranked entries could not be resolved back to source data
	ErrPartialMapFailure = goerr.New("reranked results could not be mapped")

	// ErrDimensionMismatch means two embedding vectors have different lengths
	ErrDimensionMismatch = goerr.New("embedding dimension mismatch")
)

// Context keys for error values
const (
	TitleKey    = "title"
	QueryKey    = "query"
	StatusKey   = "status"
	EndpointKey = "endpoint"
)

// Upstream marks cause as a dependency failure. The result matches
// ErrUpstreamUnavailable with errors.Is and still unwraps to cause, so
// callers can tell a caller cancellation from an outage.
func Upstream(cause error) error {
	return &upstreamError{cause: cause}
}

type upstreamError struct {
	cause error
}

func (e *upstreamError) Error() string { return e.cause.Error() }

func (e *upstreamError) Unwrap() error { return e.cause }

func (e *upstreamError) Is(target error) bool { return target == ErrUpstreamUnavailable }
