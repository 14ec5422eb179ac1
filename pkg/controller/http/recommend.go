package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/secmon-lab/stubscout/pkg/utils/errutil"
)

const (
	msgRecommendInvalid = "Please provide either topics or text to find relevant articles"
	msgRecommendFailed  = "Failed to find stub articles"
)

type recommendRequest struct {
	Topics []string `json:"topics"`
	Text   string   `json:"text"`
	Limit  int      `json:"limit"`
}

func recommendHandler(uc *usecase.RecommendUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode recommend request"), http.StatusBadRequest, msgRecommendInvalid)
			return
		}

		rec, err := uc.Recommend(ctx, usecase.RecommendInput{
			Topics: req.Topics,
			Text:   req.Text,
			Limit:  req.Limit,
		})
		if err != nil {
			if errors.Is(err, model.ErrInvalidInput) {
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, msgRecommendInvalid)
				return
			}
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, msgRecommendFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, rec)
	}
}
