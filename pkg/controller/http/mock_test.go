package http_test

import (
	"context"
	"strings"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

type fakeWikipedia struct {
	hits       map[string][]model.SearchHit
	categories map[string][]string
	details    map[string]*model.ArticleDetail
	members    map[string][]model.SearchHit
}

func newFakeWikipedia() *fakeWikipedia {
	return &fakeWikipedia{
		hits:       map[string][]model.SearchHit{},
		categories: map[string][]string{},
		details:    map[string]*model.ArticleDetail{},
		members:    map[string][]model.SearchHit{},
	}
}

func (f *fakeWikipedia) addStub(query, title, extract string) {
	f.hits[query] = append(f.hits[query], model.SearchHit{Title: title, PageID: int64(len(f.hits) + 1)})
	f.categories[title] = []string{"Category:Science stubs"}
	f.details[title] = &model.ArticleDetail{
		Title:      title,
		Extract:    extract,
		Categories: []string{"Category:Science stubs"},
		ViewURL:    "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_"),
		EditURL:    "https://en.wikipedia.org/w/index.php?title=" + strings.ReplaceAll(title, " ", "_") + "&action=edit",
	}
}

func (f *fakeWikipedia) Search(ctx context.Context, query string, limit int) []model.SearchHit {
	return f.hits[query]
}

func (f *fakeWikipedia) Categories(ctx context.Context, title string) []string {
	return f.categories[title]
}

func (f *fakeWikipedia) Details(ctx context.Context, title string) *model.ArticleDetail {
	return f.details[title]
}

func (f *fakeWikipedia) CategoryMembers(ctx context.Context, category string, limit int) []model.SearchHit {
	return f.members[category]
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (model.EmbeddingVector, error) {
	if f.err != nil {
		return nil, f.err
	}
	return model.EmbeddingVector{1, 0}, nil
}

type fakeSession struct {
	responses []*gollem.Response
	streamErr error
}

func (s *fakeSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return &gollem.Response{}, nil
}

func (s *fakeSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	ch := make(chan *gollem.Response, len(s.responses))
	for _, r := range s.responses {
		ch <- r
	}
	close(ch)
	return ch, nil
}

func (s *fakeSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *fakeSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *fakeSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type fakeLLMClient struct {
	session *fakeSession
}

func (c *fakeLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return c.session, nil
}

func (c *fakeLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func (s *fakeSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *fakeSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}
