package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/service/embedding"
	"github.com/secmon-lab/stubscout/pkg/service/keyword"
	"github.com/secmon-lab/stubscout/pkg/service/rerank"
	"github.com/secmon-lab/stubscout/pkg/service/wikipedia"
)

type UseCases struct {
	settings       model.PipelineSettings
	stubCategories []string
	reranker       rerank.Service
	summaryLLM     gollem.LLMClient
	validationLLM  gollem.LLMClient
	searchKeywords keyword.Extractor
	topicKeywords  keyword.Extractor

	Relevance  *RelevanceUseCase
	Rerank     *RerankUseCase
	Recommend  *RecommendUseCase
	Summary    *SummaryUseCase
	Validation *ValidationUseCase
	Lookup     *LookupUseCase
}

type Option func(*UseCases)

func WithPipelineSettings(settings model.PipelineSettings) Option {
	return func(uc *UseCases) {
		uc.settings = settings
	}
}

func WithStubCategories(categories []string) Option {
	return func(uc *UseCases) {
		uc.stubCategories = categories
	}
}

func WithReranker(reranker rerank.Service) Option {
	return func(uc *UseCases) {
		uc.reranker = reranker
	}
}

func WithSummaryLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.summaryLLM = client
	}
}

func WithValidationLLM(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.validationLLM = client
	}
}

// WithKeywordExtractors replaces the extractor used for search fan-out and the one
// used to derive topics from free text
func WithKeywordExtractors(search, topics keyword.Extractor) Option {
	return func(uc *UseCases) {
		uc.searchKeywords = search
		uc.topicKeywords = topics
	}
}

func New(wiki wikipedia.Service, embedder embedding.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		settings:       model.DefaultPipelineSettings(),
		stubCategories: model.DefaultStubCategories(),
	}
	for _, opt := range opts {
		opt(uc)
	}

	if uc.searchKeywords == nil {
		uc.searchKeywords = keyword.NewFrequency()
	}
	if uc.topicKeywords == nil {
		uc.topicKeywords = keyword.NewWeighted()
	}

	uc.Relevance = NewRelevanceUseCase(wiki, embedder, uc.searchKeywords, uc.settings)
	uc.Rerank = NewRerankUseCase(uc.reranker)
	uc.Recommend = NewRecommendUseCase(uc.Relevance, uc.Rerank, uc.topicKeywords, uc.settings.TopicCount)
	uc.Summary = NewSummaryUseCase(uc.summaryLLM, uc.settings.StreamTimeout)
	uc.Validation = NewValidationUseCase(uc.validationLLM, uc.settings.StreamTimeout)
	uc.Lookup = NewLookupUseCase(wiki, uc.stubCategories)

	return uc
}
