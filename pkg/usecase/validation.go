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

//go:embed prompt/validation_system.md
var validationSystemPrompt string

//go:embed prompt/validation_user.md
var validationUserPromptTmpl string

var validationUserPrompt = template.Must(template.New("validation_user").Parse(validationUserPromptTmpl))

// ValidationInput is proposed article text to check against content policy
type ValidationInput struct {
	Content      string
	ArticleTitle string
}

// ValidationUseCase streams a Markdown policy critique of proposed content
type ValidationUseCase struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// NewValidationUseCase creates a new ValidationUseCase
func NewValidationUseCase(llmClient gollem.LLMClient, timeout time.Duration) *ValidationUseCase {
	return &ValidationUseCase{llmClient: llmClient, timeout: timeout}
}

// Validate checks the input and returns a fragment stream
func (uc *ValidationUseCase) Validate(ctx context.Context, input ValidationInput) (iter.Seq2[string, error], error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "content is required")
	}
	if uc.llmClient == nil {
		return nil, goerr.Wrap(model.ErrUpstreamUnavailable, "content validator is not configured")
	}

	prompt, err := renderTemplate(validationUserPrompt, input)
	if err != nil {
		return nil, err
	}

	return streamText(ctx, uc.llmClient, validationSystemPrompt, prompt, uc.timeout), nil
}
