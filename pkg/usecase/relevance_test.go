package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/usecase"
)

func newRelevance(wiki *mockWikipedia, embedder *mockEmbedder, keywords *fixedExtractor) *usecase.RelevanceUseCase {
	if keywords == nil {
		keywords = &fixedExtractor{}
	}
	return usecase.NewRelevanceUseCase(wiki, embedder, keywords, model.DefaultPipelineSettings())
}

func TestRelevanceUseCase_FindRelevantArticles(t *testing.T) {
	t.Run("returns only the stub page", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Science stub", "Example Stub", "Complete Article")
		wiki.addPage("Example Stub", "A short science page.", "Category:Science stubs")
		wiki.addPage("Complete Article", "A long, complete page.", "Category:Physics")

		embedder := (&mockEmbedder{fallback: model.EmbeddingVector{1, 0}})
		uc := newRelevance(wiki, embedder, nil)

		articles, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Science"}, ""), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, articles).Length(1)
		gt.Value(t, articles[0].Title).Equal("Example Stub")
		gt.Value(t, articles[0].RelevanceScore).Equal(1.0)
		gt.Number(t, len(articles[0].MissingInfo)).LessOrEqual(model.MaxMissingInfo)
		gt.Value(t, articles[0].MissingInfo[0]).Equal("Expand the basic description with more details")
	})

	t.Run("issues topic and keyword searches with their limits", func(t *testing.T) {
		wiki := newMockWikipedia()
		embedder := &mockEmbedder{fallback: model.EmbeddingVector{1, 0}}
		keywords := &fixedExtractor{keywords: []string{"sediment", "delta", "estuary", "unused"}}
		uc := newRelevance(wiki, embedder, keywords)

		profile := model.NewUserProfile([]string{"Rivers", "Geology"}, "I map sediment in river deltas.")
		_, err := uc.FindRelevantArticles(context.Background(), profile, 10)
		gt.NoError(t, err).Required()

		calls := wiki.searchCalls()
		gt.Array(t, calls).Length(5)
		want := map[string]int{
			"Rivers stub":   5,
			"Geology stub":  5,
			"sediment stub": 3,
			"delta stub":    3,
			"estuary stub":  3,
		}
		for _, c := range calls {
			gt.Value(t, c.Limit).Equal(want[c.Query])
		}

		gt.Value(t, keywords.texts).Equal([]string{"I map sediment in river deltas."})
		gt.Value(t, embedder.inputs[0]).Equal("Topics: Rivers, Geology\n\nExpertise description: I map sediment in river deltas.")
	})

	t.Run("titles are unique and scores non-increasing", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "Low", "Shared", "High")
		wiki.addHits("Lakes stub", "Shared", "Mid", "High")
		wiki.addPage("Low", "low", "Category:Rivers stubs")
		wiki.addPage("Shared", "shared", "Category:Rivers stubs")
		wiki.addPage("High", "high", "Category:Rivers stubs")
		wiki.addPage("Mid", "mid", "Category:Lakes stubs")

		embedder := (&mockEmbedder{fallback: model.EmbeddingVector{1, 0}}).
			on("title: Low", 0, 1).
			on("title: Shared", 1, 1).
			on("title: High", 1, 0.1).
			on("title: Mid", 1, 0.5)
		uc := newRelevance(wiki, embedder, nil)

		articles, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers", "Lakes"}, ""), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, articles).Length(4)

		seen := map[string]bool{}
		for i, a := range articles {
			gt.Bool(t, seen[a.Title]).False()
			seen[a.Title] = true
			if i > 0 {
				gt.Bool(t, articles[i-1].RelevanceScore >= a.RelevanceScore).True()
			}
		}
		gt.Value(t, articles[0].Title).Equal("High")
		gt.Value(t, articles[3].Title).Equal("Low")
	})

	t.Run("truncates to limit", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "A", "B", "C")
		for _, title := range []string{"A", "B", "C"} {
			wiki.addPage(title, "x", "Category:Rivers stubs")
		}
		uc := newRelevance(wiki, &mockEmbedder{fallback: model.EmbeddingVector{1, 0}}, nil)

		articles, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 2)
		gt.NoError(t, err).Required()
		gt.Array(t, articles).Length(2)
	})

	t.Run("skips stubs whose details are missing", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "Ghost", "Real")
		wiki.categories["Ghost"] = []string{"Category:Rivers stubs"}
		wiki.addPage("Real", "x", "Category:Rivers stubs")
		uc := newRelevance(wiki, &mockEmbedder{fallback: model.EmbeddingVector{1, 0}}, nil)

		articles, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, articles).Length(1)
		gt.Value(t, articles[0].Title).Equal("Real")
	})

	t.Run("article embedding failure aborts the run", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "A")
		wiki.addPage("A", "x", "Category:Rivers stubs")
		embedder := &mockEmbedder{
			fallback: model.EmbeddingVector{1, 0},
			err: func(text string) error {
				if text == "Topics: Rivers" {
					return nil
				}
				return goerr.Wrap(model.ErrUpstreamUnavailable, "quota exceeded")
			},
		}
		uc := newRelevance(wiki, embedder, nil)

		_, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 10)
		gt.Error(t, err).Is(model.ErrUpstreamUnavailable)
	})

	t.Run("profile embedding failure aborts before searching", func(t *testing.T) {
		wiki := newMockWikipedia()
		embedder := &mockEmbedder{err: func(string) error { return errors.New("down") }}
		uc := newRelevance(wiki, embedder, nil)

		_, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 10)
		gt.Value(t, err).NotNil()
		gt.Array(t, wiki.searchCalls()).Length(0)
	})

	t.Run("dimension mismatch propagates", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "A")
		wiki.addPage("A", "x", "Category:Rivers stubs")
		embedder := (&mockEmbedder{fallback: model.EmbeddingVector{1, 0}}).on("title: A", 1, 0, 0)
		uc := newRelevance(wiki, embedder, nil)

		_, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 10)
		gt.Error(t, err).Is(model.ErrDimensionMismatch)
	})

	t.Run("empty profile is invalid input", func(t *testing.T) {
		uc := newRelevance(newMockWikipedia(), &mockEmbedder{}, nil)
		_, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile(nil, " "), 10)
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})

	t.Run("serialized result carries no embedding", func(t *testing.T) {
		wiki := newMockWikipedia()
		wiki.addHits("Rivers stub", "A")
		wiki.addPage("A", "x", "Category:Rivers stubs")
		uc := newRelevance(wiki, &mockEmbedder{fallback: model.EmbeddingVector{0.25, 0.75}}, nil)

		articles, err := uc.FindRelevantArticles(context.Background(), model.NewUserProfile([]string{"Rivers"}, ""), 10)
		gt.NoError(t, err).Required()

		raw, err := json.Marshal(articles)
		gt.NoError(t, err).Required()
		gt.String(t, string(raw)).NotContains("0.75")
		gt.String(t, string(raw)).NotContains("embedding")
	})
}
