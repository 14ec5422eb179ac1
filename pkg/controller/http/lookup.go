package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/secmon-lab/stubscout/pkg/utils/errutil"
)

const (
	msgSearchInvalid    = "Please provide a search query"
	msgSearchFailed     = "Failed to search articles"
	msgTitleInvalid     = "Please provide an article title"
	msgCategoriesFailed = "Failed to get categories"
	msgArticleNotFound  = "Article not found"
	msgArticleFailed    = "Failed to get article details"
	msgCategoryInvalid  = "Please provide a category"
	msgLimitInvalid     = "Limit must be a positive integer"
	msgMembersFailed    = "Failed to get category members"
)

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// pathParam returns the decoded URL parameter. chi may hand back the escaped
// segment when the request path carried escapes.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func lookupError(w http.ResponseWriter, r *http.Request, err error, invalid, failed string) {
	if errors.Is(err, model.ErrInvalidInput) {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest, invalid)
		return
	}
	errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, failed)
}

func searchHandler(uc *usecase.LookupUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode search request"), http.StatusBadRequest, msgSearchInvalid)
			return
		}

		hits, err := uc.Search(r.Context(), req.Query, req.Limit)
		if err != nil {
			lookupError(w, r, err, msgSearchInvalid, msgSearchFailed)
			return
		}
		if hits == nil {
			hits = []model.SearchHit{}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"results": hits})
	}
}

func categoriesHandler(uc *usecase.LookupUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := pathParam(r, "title")
		categories, err := uc.Categories(r.Context(), title)
		if err != nil {
			lookupError(w, r, err, msgTitleInvalid, msgCategoriesFailed)
			return
		}
		if categories == nil {
			categories = []string{}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"title":      title,
			"categories": categories,
		})
	}
}

func articleHandler(uc *usecase.LookupUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := uc.Article(r.Context(), pathParam(r, "title"))
		if err != nil {
			if errors.Is(err, model.ErrNoResults) {
				errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound, msgArticleNotFound)
				return
			}
			lookupError(w, r, err, msgTitleInvalid, msgArticleFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, detail)
	}
}

func stubCategoriesHandler(uc *usecase.LookupUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{"categories": uc.StubCategories()})
	}
}

func categoryMembersHandler(uc *usecase.LookupUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var limit int
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				errutil.WriteJSONError(r.Context(), w, http.StatusBadRequest, msgLimitInvalid)
				return
			}
			limit = n
		}

		category, hits, err := uc.CategoryMembers(r.Context(), pathParam(r, "category"), limit)
		if err != nil {
			lookupError(w, r, err, msgCategoryInvalid, msgMembersFailed)
			return
		}
		if hits == nil {
			hits = []model.SearchHit{}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"category": category,
			"articles": hits,
		})
	}
}
