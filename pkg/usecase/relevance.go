package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/domain/types"
	"github.com/secmon-lab/stubscout/pkg/service/embedding"
	"github.com/secmon-lab/stubscout/pkg/service/keyword"
	"github.com/secmon-lab/stubscout/pkg/service/wikipedia"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// RelevanceUseCase finds stub articles semantically close to a user's expertise
type RelevanceUseCase struct {
	wiki     wikipedia.Service
	embedder embedding.Service
	keywords keyword.Extractor
	settings model.PipelineSettings
}

// NewRelevanceUseCase creates a new RelevanceUseCase
func NewRelevanceUseCase(wiki wikipedia.Service, embedder embedding.Service, keywords keyword.Extractor, settings model.PipelineSettings) *RelevanceUseCase {
	return &RelevanceUseCase{
		wiki:     wiki,
		embedder: embedder,
		keywords: keywords,
		settings: settings,
	}
}

// searchTerm is one fan-out query and the topic it stands for
type searchTerm struct {
	term  string
	limit int
}

// candidate is a search hit that is not yet known to be a stub
type candidate struct {
	title string
	term  string
}

// FindRelevantArticles searches stubs for every topic and free-text keyword, scores
// each against the profile embedding and returns at most limit articles by descending score.
// A non-positive limit uses the configured default. Search failures count as no hits;
// embedding failures abort the run.
func (uc *RelevanceUseCase) FindRelevantArticles(ctx context.Context, profile *model.UserProfile, limit int) ([]model.CandidateArticle, error) {
	if profile == nil || profile.IsEmpty() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "topics or free text is required")
	}
	if limit <= 0 {
		limit = uc.settings.ResultLimit
	}

	runID := types.NewRunID()
	logger := logging.From(ctx).With("run_id", runID.String())
	ctx = logging.With(ctx, logger)

	userVector, err := uc.embedder.Embed(ctx, profile.ProfileText())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed user profile")
	}

	profile.Keywords = uc.keywords.Extract(profile.FreeText, uc.settings.KeywordCount)
	terms := uc.searchTerms(profile)
	candidates := uc.collectCandidates(ctx, terms)

	articles, err := uc.scoreCandidates(ctx, candidates, userVector)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].RelevanceScore > articles[j].RelevanceScore
	})
	if len(articles) > limit {
		articles = articles[:limit]
	}

	logger.Info("relevance pipeline finished",
		"topics", profile.Topics,
		"keywords", profile.Keywords,
		"candidates", len(candidates),
		"articles", len(articles),
	)

	return articles, nil
}

func (uc *RelevanceUseCase) searchTerms(profile *model.UserProfile) []searchTerm {
	terms := make([]searchTerm, 0, len(profile.Topics)+len(profile.Keywords))
	for _, topic := range profile.Topics {
		terms = append(terms, searchTerm{term: topic, limit: uc.settings.TopicSearchLimit})
	}
	for _, kw := range profile.Keywords {
		terms = append(terms, searchTerm{term: kw, limit: uc.settings.KeywordSearchLimit})
	}
	return terms
}

// collectCandidates runs all searches and merges hits in term order, then hit order.
// The first occurrence of a title wins.
func (uc *RelevanceUseCase) collectCandidates(ctx context.Context, terms []searchTerm) []candidate {
	results := make([][]model.SearchHit, len(terms))

	var eg errgroup.Group
	eg.SetLimit(uc.settings.Concurrency)
	for i, t := range terms {
		eg.Go(func() error {
			results[i] = uc.wiki.Search(ctx, t.term+" stub", t.limit)
			return nil
		})
	}
	_ = eg.Wait()

	seen := make(map[string]struct{})
	var candidates []candidate
	for i, hits := range results {
		for _, hit := range hits {
			if _, ok := seen[hit.Title]; ok {
				continue
			}
			seen[hit.Title] = struct{}{}
			candidates = append(candidates, candidate{title: hit.Title, term: terms[i].term})
		}
	}
	return candidates
}

// scoreCandidates keeps stub candidates with details and scores them. Results keep
// candidate order; an embedding failure cancels the remaining work.
func (uc *RelevanceUseCase) scoreCandidates(ctx context.Context, candidates []candidate, userVector model.EmbeddingVector) ([]model.CandidateArticle, error) {
	slots := make([]*model.CandidateArticle, len(candidates))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.settings.Concurrency)
	for i, c := range candidates {
		eg.Go(func() error {
			article, err := uc.scoreCandidate(ctx, c, userVector)
			if err != nil {
				return err
			}
			slots[i] = article
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	articles := make([]model.CandidateArticle, 0, len(slots))
	for _, a := range slots {
		if a == nil {
			continue
		}
		// redirects can resolve two search titles to the same page
		if _, ok := seen[a.Title]; ok {
			continue
		}
		seen[a.Title] = struct{}{}
		articles = append(articles, *a)
	}
	return articles, nil
}

func (uc *RelevanceUseCase) scoreCandidate(ctx context.Context, c candidate, userVector model.EmbeddingVector) (*model.CandidateArticle, error) {
	logger := logging.From(ctx)

	categories := uc.wiki.Categories(ctx, c.title)
	if !model.IsStub(categories) {
		logger.Debug("skipping non-stub page", model.TitleKey, c.title)
		return nil, nil
	}

	detail := uc.wiki.Details(ctx, c.title)
	if detail == nil {
		logger.Debug("skipping page without details", model.TitleKey, c.title)
		return nil, nil
	}

	vector, err := uc.embedder.Embed(ctx, model.ArticleText(detail))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed article", goerr.V(model.TitleKey, c.title))
	}

	score, err := model.CosineSimilarity(userVector, vector)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to score article", goerr.V(model.TitleKey, c.title))
	}

	article := model.NewCandidateArticle(detail, score, model.SuggestMissingInfo(detail, c.term))
	return &article, nil
}
