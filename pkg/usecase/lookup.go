package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/service/wikipedia"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	categoryPrefix     = "Category:"
)

// LookupUseCase exposes direct Wikipedia lookups
type LookupUseCase struct {
	wiki           wikipedia.Service
	stubCategories []string
}

// NewLookupUseCase creates a new LookupUseCase
func NewLookupUseCase(wiki wikipedia.Service, stubCategories []string) *LookupUseCase {
	return &LookupUseCase{wiki: wiki, stubCategories: stubCategories}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return min(limit, maxSearchLimit)
}

// Search runs a full-text search
func (uc *LookupUseCase) Search(ctx context.Context, query string, limit int) ([]model.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "query is required")
	}
	return uc.wiki.Search(ctx, query, clampLimit(limit)), nil
}

// Categories returns the categories of a page
func (uc *LookupUseCase) Categories(ctx context.Context, title string) ([]string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "title is required")
	}
	return uc.wiki.Categories(ctx, title), nil
}

// Article returns the details of a page. A missing page wraps model.ErrNoResults.
func (uc *LookupUseCase) Article(ctx context.Context, title string) (*model.ArticleDetail, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "title is required")
	}

	detail := uc.wiki.Details(ctx, title)
	if detail == nil {
		return nil, goerr.Wrap(model.ErrNoResults, "article not found", goerr.V(model.TitleKey, title))
	}
	return detail, nil
}

// StubCategories returns the configured stub category list
func (uc *LookupUseCase) StubCategories() []string {
	out := make([]string, len(uc.stubCategories))
	copy(out, uc.stubCategories)
	return out
}

// CategoryMembers lists pages in a category. The "Category:" prefix is added when missing.
func (uc *LookupUseCase) CategoryMembers(ctx context.Context, category string, limit int) (string, []model.SearchHit, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", nil, goerr.Wrap(model.ErrInvalidInput, "category is required")
	}
	if !strings.HasPrefix(category, categoryPrefix) {
		category = categoryPrefix + category
	}
	return category, uc.wiki.CategoryMembers(ctx, category, clampLimit(limit)), nil
}
