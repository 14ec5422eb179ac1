package rerank

import (
	"context"

	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

// Service scores documents against a query with a cross-encoder
type Service interface {
	// Rerank returns up to topN hits ordered by relevance. Each hit's Index
	// refers to documents. Failures wrap model.ErrUpstreamUnavailable; a
	// cancelled ctx yields context.Canceled instead.
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]model.RerankHit, error)
}
