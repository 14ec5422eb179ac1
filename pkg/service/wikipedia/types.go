package wikipedia

import (
	"context"

	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

// Service looks up pages in a MediaWiki site. Lookups never fail: upstream
// errors are logged and reported as "nothing found".
type Service interface {
	// Search runs a full-text search and returns at most limit hits
	Search(ctx context.Context, query string, limit int) []model.SearchHit

	// Categories returns the category titles of a page, empty if the page is missing
	Categories(ctx context.Context, title string) []string

	// Details returns intro text, thumbnail and categories of a page, nil if the page is missing
	Details(ctx context.Context, title string) *model.ArticleDetail

	// CategoryMembers lists pages in a category
	CategoryMembers(ctx context.Context, category string, limit int) []model.SearchHit
}

type apiResponse struct {
	Error *apiError `json:"error,omitempty"`
	Query struct {
		Search          []searchEntry         `json:"search"`
		Pages           map[string]pageEntry  `json:"pages"`
		CategoryMembers []categoryMemberEntry `json:"categorymembers"`
	} `json:"query"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchEntry struct {
	Title   string `json:"title"`
	PageID  int64  `json:"pageid"`
	Snippet string `json:"snippet"`
}

type pageEntry struct {
	PageID     int64           `json:"pageid"`
	Title      string          `json:"title"`
	Missing    *string         `json:"missing,omitempty"`
	Extract    string          `json:"extract"`
	Thumbnail  *thumbnailEntry `json:"thumbnail,omitempty"`
	Categories []categoryEntry `json:"categories"`
}

func (p pageEntry) isMissing(key string) bool {
	return key == "-1" || p.Missing != nil
}

func (p pageEntry) categoryTitles() []string {
	titles := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		titles = append(titles, c.Title)
	}
	return titles
}

type thumbnailEntry struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type categoryEntry struct {
	Title string `json:"title"`
}

type categoryMemberEntry struct {
	PageID int64  `json:"pageid"`
	Title  string `json:"title"`
}
