package embedding

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

const (
	// DefaultDimension matches OpenAI text-embedding-3-small
	DefaultDimension = 1536

	defaultTimeout = 30 * time.Second
)

// Service turns text into embedding vectors
type Service interface {
	// Embed returns the embedding of text. Failures wrap model.ErrUpstreamUnavailable.
	Embed(ctx context.Context, text string) (model.EmbeddingVector, error)
}

type client struct {
	llmClient gollem.LLMClient
	dimension int
	timeout   time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithDimension sets the requested vector dimension
func WithDimension(dim int) Option {
	return func(c *client) {
		c.dimension = dim
	}
}

// WithTimeout bounds every embedding call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// New creates an embedding Service backed by the LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
		dimension: DefaultDimension,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.dimension <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", c.dimension))
	}

	return c, nil
}

// Embed implements Service
func (c *client) Embed(ctx context.Context, text string) (model.EmbeddingVector, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	vectors, err := c.llmClient.GenerateEmbedding(ctx, c.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(model.Upstream(err), "failed to generate embedding",
			goerr.V("text_length", len(text)),
		)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "embedding response is empty",
			goerr.V("text_length", len(text)),
		)
	}

	return model.EmbeddingVector(vectors[0]), nil
}
