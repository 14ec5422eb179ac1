package usecase_test

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

// mockWikipedia is an in-memory wikipedia.Service
type mockWikipedia struct {
	mu         sync.Mutex
	hits       map[string][]model.SearchHit
	categories map[string][]string
	details    map[string]*model.ArticleDetail
	members    map[string][]model.SearchHit
	queries    []searchCall
}

type searchCall struct {
	Query string
	Limit int
}

func newMockWikipedia() *mockWikipedia {
	return &mockWikipedia{
		hits:       map[string][]model.SearchHit{},
		categories: map[string][]string{},
		details:    map[string]*model.ArticleDetail{},
		members:    map[string][]model.SearchHit{},
	}
}

// addPage registers a page so category and detail lookups can find it
func (m *mockWikipedia) addPage(title, extract string, categories ...string) {
	m.categories[title] = categories
	m.details[title] = &model.ArticleDetail{
		Title:      title,
		Extract:    extract,
		Categories: categories,
		ViewURL:    "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_"),
		EditURL:    "https://en.wikipedia.org/w/index.php?title=" + strings.ReplaceAll(title, " ", "_") + "&action=edit",
	}
}

func (m *mockWikipedia) addHits(query string, titles ...string) {
	for i, title := range titles {
		m.hits[query] = append(m.hits[query], model.SearchHit{Title: title, PageID: int64(i + 1)})
	}
}

func (m *mockWikipedia) Search(ctx context.Context, query string, limit int) []model.SearchHit {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, searchCall{Query: query, Limit: limit})

	hits := m.hits[query]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func (m *mockWikipedia) Categories(ctx context.Context, title string) []string {
	return m.categories[title]
}

func (m *mockWikipedia) Details(ctx context.Context, title string) *model.ArticleDetail {
	return m.details[title]
}

func (m *mockWikipedia) CategoryMembers(ctx context.Context, category string, limit int) []model.SearchHit {
	return m.members[category]
}

func (m *mockWikipedia) searchCalls() []searchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]searchCall, len(m.queries))
	copy(out, m.queries)
	return out
}

// mockEmbedder returns the vector of the first registered substring found in the text
type mockEmbedder struct {
	mu       sync.Mutex
	vectors  []keyedVector
	fallback model.EmbeddingVector
	err      func(text string) error
	inputs   []string
}

type keyedVector struct {
	key    string
	vector model.EmbeddingVector
}

func (m *mockEmbedder) on(key string, v ...float64) *mockEmbedder {
	m.vectors = append(m.vectors, keyedVector{key: key, vector: v})
	return m
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (model.EmbeddingVector, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()

	if m.err != nil {
		if err := m.err(text); err != nil {
			return nil, err
		}
	}
	for _, kv := range m.vectors {
		if strings.Contains(text, kv.key) {
			return kv.vector, nil
		}
	}
	return m.fallback, nil
}

// mockReranker records its call and returns canned hits
type mockReranker struct {
	hits      []model.RerankHit
	err       error
	query     string
	documents []string
	topN      int
}

func (m *mockReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]model.RerankHit, error) {
	m.query = query
	m.documents = documents
	m.topN = topN
	return m.hits, m.err
}

// fixedExtractor returns canned keywords
type fixedExtractor struct {
	keywords []string
	texts    []string
}

func (f *fixedExtractor) Extract(text string, limit int) []string {
	f.texts = append(f.texts, text)
	if len(f.keywords) > limit {
		return f.keywords[:limit]
	}
	return f.keywords
}

// mockLLMSession streams canned responses
type mockLLMSession struct {
	responses []*gollem.Response
	streamErr error
	inputs    []gollem.Input
	stopped   chan struct{}
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	return &gollem.Response{}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	s.inputs = input
	if s.streamErr != nil {
		return nil, s.streamErr
	}

	ch := make(chan *gollem.Response)
	go func() {
		defer close(ch)
		if s.stopped != nil {
			defer close(s.stopped)
		}
		for _, r := range s.responses {
			select {
			case ch <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient hands out one session
type mockLLMClient struct {
	session    *mockLLMSession
	sessionErr error
	options    []gollem.SessionOption
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.options = options
	if c.sessionErr != nil {
		return nil, c.sessionErr
	}
	return c.session, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}
