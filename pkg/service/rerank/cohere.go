package rerank

import (
	"context"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

const (
	// DefaultCohereEndpoint is the Cohere API base URL
	DefaultCohereEndpoint = "https://api.cohere.com"

	// DefaultCohereModel is the cross-encoder used when none is configured
	DefaultCohereModel = "rerank-english-v2.0"

	defaultTimeout = 15 * time.Second
)

type cohereService struct {
	client   *cohereclient.Client
	endpoint string
	model    string
	timeout  time.Duration
}

type cohereConfig struct {
	endpoint   string
	model      string
	httpClient *http.Client
	timeout    time.Duration
}

// CohereOption is a functional option for the Cohere client
type CohereOption func(*cohereConfig)

// WithEndpoint overrides the API base URL
func WithEndpoint(endpoint string) CohereOption {
	return func(c *cohereConfig) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithModel selects the rerank model
func WithModel(m string) CohereOption {
	return func(c *cohereConfig) {
		c.model = m
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) CohereOption {
	return func(c *cohereConfig) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every rerank call
func WithTimeout(d time.Duration) CohereOption {
	return func(c *cohereConfig) {
		c.timeout = d
	}
}

// NewCohere creates a Service calling the Cohere rerank API
func NewCohere(apiKey string, opts ...CohereOption) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("Cohere API key is required")
	}

	cfg := &cohereConfig{
		endpoint:   DefaultCohereEndpoint,
		model:      DefaultCohereModel,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &cohereService{
		client: cohereclient.NewClient(
			option.WithToken(apiKey),
			option.WithBaseURL(cfg.endpoint),
			option.WithHTTPClient(cfg.httpClient),
		),
		endpoint: cfg.endpoint,
		model:    cfg.model,
		timeout:  cfg.timeout,
	}, nil
}

// Rerank implements Service
func (c *cohereService) Rerank(ctx context.Context, query string, documents []string, topN int) ([]model.RerankHit, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	items := make([]*cohere.RerankRequestDocumentsItem, len(documents))
	for i, doc := range documents {
		items[i] = &cohere.RerankRequestDocumentsItem{String: doc}
	}

	resp, err := c.client.Rerank(reqCtx, &cohere.RerankRequest{
		Model:     cohere.String(c.model),
		Query:     query,
		Documents: items,
		TopN:      cohere.Int(topN),
	})
	if err != nil {
		// the caller went away; not a reranker failure
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, goerr.Wrap(ctxErr, "rerank request cancelled", goerr.V(model.EndpointKey, c.endpoint))
		}
		return nil, goerr.Wrap(model.Upstream(err), "rerank request failed",
			goerr.V(model.EndpointKey, c.endpoint),
			goerr.V("model", c.model),
		)
	}

	hits := make([]model.RerankHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r == nil {
			continue
		}
		hits = append(hits, model.RerankHit{Index: r.Index, Score: r.RelevanceScore})
	}
	return hits, nil
}
