package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/service/keyword"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

// RecommendInput is one "find relevant articles" request
type RecommendInput struct {
	Topics []string
	Text   string
	Limit  int
}

// Recommendation is the ranked stub list returned to the user
type Recommendation struct {
	Articles       []model.CandidateArticle `json:"articles"`
	UsedEmbeddings bool                     `json:"usedEmbeddings"`
	Reranked       bool                     `json:"reranked"`
	Message        string                   `json:"message"`
}

// RecommendUseCase ties topic derivation, the relevance pipeline and the rerank cascade together
type RecommendUseCase struct {
	relevance *RelevanceUseCase
	rerank    *RerankUseCase
	topics    keyword.Extractor
	topicN    int
}

// NewRecommendUseCase creates a new RecommendUseCase. topics derives topics from
// free text when the request has none.
func NewRecommendUseCase(relevance *RelevanceUseCase, rerank *RerankUseCase, topics keyword.Extractor, topicN int) *RecommendUseCase {
	return &RecommendUseCase{
		relevance: relevance,
		rerank:    rerank,
		topics:    topics,
		topicN:    topicN,
	}
}

// Recommend returns ranked stub articles for the input. It fails with
// model.ErrInvalidInput when both topics and text are blank.
func (uc *RecommendUseCase) Recommend(ctx context.Context, input RecommendInput) (*Recommendation, error) {
	profile := model.NewUserProfile(input.Topics, input.Text)
	if profile.IsEmpty() {
		return nil, goerr.Wrap(model.ErrInvalidInput, "topics or text is required")
	}

	if len(profile.Topics) == 0 {
		profile.Topics = uc.topics.Extract(profile.FreeText, uc.topicN)
		logging.From(ctx).Info("derived topics from text", "topics", profile.Topics)
	}

	articles, err := uc.relevance.FindRelevantArticles(ctx, profile, input.Limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find relevant articles")
	}

	result := uc.rerank.Rerank(ctx, profile.RerankQuery(), articles)

	return &Recommendation{
		Articles:       result.Articles,
		UsedEmbeddings: true,
		Reranked:       result.Reranked,
		Message:        result.Message,
	}, nil
}
