package usecase

import (
	"context"
	_ "embed"
	"iter"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

//go:embed prompt/summary_system.md
var summarySystemPrompt string

//go:embed prompt/summary_user.md
var summaryUserPromptTmpl string

var summaryUserPrompt = template.Must(template.New("summary_user").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(summaryUserPromptTmpl))

const (
	summaryExtractLimit  = 300
	summaryCategoryLimit = 5
)

// SummaryInput is the article selection to summarize
type SummaryInput struct {
	Articles []model.CandidateArticle
	Query    string
	Reranked bool
}

type summaryPromptArticle struct {
	Title      string
	Extract    string
	Categories string
}

type summaryPromptData struct {
	Query    string
	Reranked bool
	Articles []summaryPromptArticle
}

// SummaryUseCase streams a prose summary of selected articles
type SummaryUseCase struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// NewSummaryUseCase creates a new SummaryUseCase. llmClient may be nil, which
// makes every request fail as upstream unavailable.
func NewSummaryUseCase(llmClient gollem.LLMClient, timeout time.Duration) *SummaryUseCase {
	return &SummaryUseCase{llmClient: llmClient, timeout: timeout}
}

// Summarize validates the input and returns a fragment stream. Input errors are
// returned before any upstream call.
func (uc *SummaryUseCase) Summarize(ctx context.Context, input SummaryInput) (iter.Seq2[string, error], error) {
	if len(input.Articles) == 0 {
		return nil, goerr.Wrap(model.ErrInvalidInput, "articles are required")
	}
	if uc.llmClient == nil {
		return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "summary generator is not configured")
	}

	prompt, err := buildSummaryPrompt(input)
	if err != nil {
		return nil, err
	}

	return streamText(ctx, uc.llmClient, summarySystemPrompt, prompt, uc.timeout), nil
}

func buildSummaryPrompt(input SummaryInput) (string, error) {
	data := summaryPromptData{
		Query:    input.Query,
		Reranked: input.Reranked,
		Articles: make([]summaryPromptArticle, len(input.Articles)),
	}
	for i, a := range input.Articles {
		categories := a.Categories
		if len(categories) > summaryCategoryLimit {
			categories = categories[:summaryCategoryLimit]
		}
		data.Articles[i] = summaryPromptArticle{
			Title:      a.Title,
			Extract:    truncateRunes(a.Extract, summaryExtractLimit) + "...",
			Categories: strings.Join(categories, ", ") + "...",
		}
	}

	return renderTemplate(summaryUserPrompt, data)
}
