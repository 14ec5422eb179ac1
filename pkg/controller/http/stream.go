package http

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/secmon-lab/stubscout/pkg/utils/errutil"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"github.com/secmon-lab/stubscout/pkg/utils/safe"
)

const (
	msgSummaryInvalid    = "Please provide valid articles to summarize"
	msgSummaryFailed     = "Failed to generate summary"
	msgValidationInvalid = "Please provide content to validate"
	msgValidationFailed  = "Failed to validate content"
)

type summaryRequest struct {
	Articles []model.CandidateArticle `json:"articles"`
	Query    string                   `json:"query"`
	Reranked bool                     `json:"reranked"`
}

type validationRequest struct {
	Content      string `json:"content"`
	ArticleTitle string `json:"articleTitle"`
}

// streamMessages are the public error messages of one streaming endpoint
type streamMessages struct {
	invalid string
	failed  string
}

func summaryHandler(uc *usecase.SummaryUseCase) http.HandlerFunc {
	msgs := streamMessages{invalid: msgSummaryInvalid, failed: msgSummaryFailed}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req summaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode summary request"), http.StatusBadRequest, msgs.invalid)
			return
		}

		seq, err := uc.Summarize(ctx, usecase.SummaryInput{
			Articles: req.Articles,
			Query:    req.Query,
			Reranked: req.Reranked,
		})
		writeStream(ctx, w, seq, err, msgs)
	}
}

func validationHandler(uc *usecase.ValidationUseCase) http.HandlerFunc {
	msgs := streamMessages{invalid: msgValidationInvalid, failed: msgValidationFailed}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req validationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode validation request"), http.StatusBadRequest, msgs.invalid)
			return
		}

		seq, err := uc.Validate(ctx, usecase.ValidationInput{
			Content:      req.Content,
			ArticleTitle: req.ArticleTitle,
		})
		writeStream(ctx, w, seq, err, msgs)
	}
}

// writeStream sends fragments as plain text, flushing after each one. Headers are
// committed with the first fragment, so a failure before it still becomes a JSON 500.
// A failure after it ends the body.
func writeStream(ctx context.Context, w http.ResponseWriter, seq iter.Seq2[string, error], err error, msgs streamMessages) {
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, msgs.invalid)
			return
		}
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, msgs.failed)
		return
	}

	started := false
	start := func() {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		started = true
	}

	for fragment, err := range seq {
		if err != nil {
			if !started {
				errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError, msgs.failed)
				return
			}
			errutil.Handle(ctx, err, "stream failed after first fragment")
			return
		}

		if !started {
			start()
		}
		if !safe.Write(ctx, w, []byte(fragment)) {
			logging.From(ctx).Info("client went away during stream")
			return
		}
		safe.Flush(ctx, w)
	}

	if !started {
		start()
	}
}
