package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/service/rerank"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

const (
	rerankQueryLimit    = 512
	rerankDocumentLimit = 1024
	rerankTopN          = 20

	msgNoArticles       = "No relevant articles found"
	msgReranked         = "Results enhanced using cross-encoder reranking for improved relevance"
	msgEmbeddings       = "Results found using embeddings for semantic similarity"
	msgRerankFailed     = "Results found using embeddings (reranking failed)"
	msgRerankNoResults  = "Results found using embeddings (reranking returned no results)"
	msgRerankUnmappable = "Results found using embeddings (no valid articles after reranking)"
)

// RerankResult is the outcome of the rerank cascade
type RerankResult struct {
	Articles []model.CandidateArticle
	Reranked bool
	Message  string
}

// rerankOutcome is what one strategy produced. A nil err means success.
type rerankOutcome struct {
	articles []model.CandidateArticle
	reranked bool
	message  string
	err      error
}

// rerankStrategy is one step of the cascade. prev is the failure of the step before, if any.
type rerankStrategy interface {
	name() string
	apply(ctx context.Context, query string, articles []model.CandidateArticle, prev error) rerankOutcome
}

// RerankUseCase reorders pipeline results with a cross-encoder and falls back to
// the embedding order on any failure.
type RerankUseCase struct {
	strategies []rerankStrategy
}

// NewRerankUseCase creates a new RerankUseCase. reranker may be nil, in which case
// results always keep their embedding order.
func NewRerankUseCase(reranker rerank.Service) *RerankUseCase {
	return &RerankUseCase{
		strategies: []rerankStrategy{
			&crossEncoderStrategy{reranker: reranker},
			&embeddingOrderStrategy{},
		},
	}
}

// Rerank runs the strategies in order and returns the first successful outcome
func (uc *RerankUseCase) Rerank(ctx context.Context, query string, articles []model.CandidateArticle) *RerankResult {
	if len(articles) == 0 {
		return &RerankResult{Articles: []model.CandidateArticle{}, Message: msgNoArticles}
	}

	logger := logging.From(ctx)
	var prev error
	for _, s := range uc.strategies {
		out := s.apply(ctx, query, articles, prev)
		if out.err == nil {
			logger.Debug("rerank strategy succeeded", "strategy", s.name(), "reranked", out.reranked)
			return &RerankResult{Articles: out.articles, Reranked: out.reranked, Message: out.message}
		}

		logger.Warn("rerank strategy failed", "strategy", s.name(), "error", out.err)
		prev = out.err
	}

	return &RerankResult{Articles: articles, Message: fallbackMessage(prev)}
}

type crossEncoderStrategy struct {
	reranker rerank.Service
}

func (s *crossEncoderStrategy) name() string { return "cross-encoder" }

func (s *crossEncoderStrategy) apply(ctx context.Context, query string, articles []model.CandidateArticle, _ error) rerankOutcome {
	if s.reranker == nil {
		return rerankOutcome{err: errRerankUnconfigured}
	}

	titles := make([]string, len(articles))
	documents := make([]string, len(articles))
	byTitle := make(map[string]model.CandidateArticle, len(articles))
	for i, a := range articles {
		titles[i] = a.Title
		documents[i] = truncateRunes(a.Title+"\n"+a.Extract, rerankDocumentLimit)
		byTitle[a.Title] = a
	}

	hits, err := s.reranker.Rerank(ctx, truncateRunes(query, rerankQueryLimit), documents, min(len(documents), rerankTopN))
	if err != nil {
		return rerankOutcome{err: goerr.Wrap(err, "cross-encoder rerank failed")}
	}
	if len(hits) == 0 {
		return rerankOutcome{err: goerr.Wrap(model.ErrNoResults, "reranker returned no results")}
	}

	logger := logging.From(ctx)
	seen := make(map[string]struct{}, len(hits))
	reranked := make([]model.CandidateArticle, 0, len(hits))
	for _, hit := range hits {
		if hit.Index < 0 || hit.Index >= len(titles) {
			logger.Warn("dropping rerank hit with out-of-range index", "index", hit.Index, "documents", len(titles))
			continue
		}
		article, ok := byTitle[titles[hit.Index]]
		if !ok {
			logger.Warn("dropping rerank hit without matching article", model.TitleKey, titles[hit.Index])
			continue
		}
		if _, dup := seen[article.Title]; dup {
			continue
		}
		seen[article.Title] = struct{}{}

		article.RelevanceScore = hit.Score
		reranked = append(reranked, article)
	}

	if len(reranked) == 0 {
		return rerankOutcome{err: goerr.Wrap(model.ErrPartialMapFailure, "no rerank hit could be mapped to an article",
			goerr.V("hits", len(hits)),
		)}
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].RelevanceScore > reranked[j].RelevanceScore
	})

	return rerankOutcome{articles: reranked, reranked: true, message: msgReranked}
}

type embeddingOrderStrategy struct{}

func (s *embeddingOrderStrategy) name() string { return "embedding-order" }

func (s *embeddingOrderStrategy) apply(_ context.Context, _ string, articles []model.CandidateArticle, prev error) rerankOutcome {
	return rerankOutcome{articles: articles, message: fallbackMessage(prev)}
}

func fallbackMessage(prev error) string {
	switch {
	case prev == nil, errors.Is(prev, errRerankUnconfigured):
		return msgEmbeddings
	case errors.Is(prev, model.ErrNoResults):
		return msgRerankNoResults
	case errors.Is(prev, model.ErrPartialMapFailure):
		return msgRerankUnmappable
	default:
		return msgRerankFailed
	}
}
