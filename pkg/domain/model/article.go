package model

// SearchHit is one result of a full-text search. Snippet is plain text.
type SearchHit struct {
	Title   string `json:"title"`
	PageID  int64  `json:"pageId"`
	Snippet string `json:"snippet"`
}

// ArticleDetail is the intro, thumbnail and categories of an existing page
type ArticleDetail struct {
	Title        string   `json:"title"`
	Extract      string   `json:"extract"`
	Categories   []string `json:"categories"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	ViewURL      string   `json:"viewUrl"`
	EditURL      string   `json:"editUrl"`
}

// CandidateArticle is a stub page surfaced as a contribution target.
// It never carries the embedding used to score it.
type CandidateArticle struct {
	Title          string   `json:"title"`
	Extract        string   `json:"extract"`
	Categories     []string `json:"categories"`
	ThumbnailURL   string   `json:"thumbnailUrl,omitempty"`
	ViewURL        string   `json:"viewUrl"`
	EditURL        string   `json:"editUrl"`
	MissingInfo    []string `json:"missingInfo"`
	RelevanceScore float64  `json:"relevanceScore"`
}

// NewCandidateArticle builds a candidate from page details with the given score
func NewCandidateArticle(detail *ArticleDetail, score float64, missingInfo []string) CandidateArticle {
	categories := detail.Categories
	if categories == nil {
		categories = []string{}
	}
	if missingInfo == nil {
		missingInfo = []string{}
	}

	return CandidateArticle{
		Title:          detail.Title,
		Extract:        detail.Extract,
		Categories:     categories,
		ThumbnailURL:   detail.ThumbnailURL,
		ViewURL:        detail.ViewURL,
		EditURL:        detail.EditURL,
		MissingInfo:    missingInfo,
		RelevanceScore: score,
	}
}

// RerankHit is one raw entry returned by a cross-encoder reranker.
// Index points into the documents sent with the request.
type RerankHit struct {
	Index int
	Score float64
}
