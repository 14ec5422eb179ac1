package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

// Handle logs err with its goerr values and stack, and reports it to Sentry
// when a Sentry client is bound to the current hub. Cancellation by the
// caller is logged at warn level and not reported.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	if errors.Is(err, context.Canceled) {
		logging.From(ctx).Warn(msg, errorAttrs(err)...)
		return
	}

	logging.From(ctx).Error(msg, errorAttrs(err)...)
	capture(ctx, err)
}

// HandleHTTP logs err and writes a JSON error response carrying publicMsg.
// The internal error text is never sent to the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, publicMsg string) {
	if err == nil {
		return
	}

	attrs := append([]any{"status", statusCode}, errorAttrs(err)...)
	switch {
	case errors.Is(err, context.Canceled):
		logging.From(ctx).Warn("HTTP request cancelled", attrs...)
	case statusCode >= http.StatusInternalServerError:
		logging.From(ctx).Error("HTTP error", attrs...)
		capture(ctx, err)
	default:
		logging.From(ctx).Warn("HTTP error", attrs...)
	}

	WriteJSONError(ctx, w, statusCode, publicMsg)
}

// WriteJSONError writes {"error": msg} with the given status
func WriteJSONError(ctx context.Context, w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logging.From(ctx).Debug("failed to write error response", slog.Any("error", err))
	}
}

func errorAttrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		}
	}
	return []any{"error", err.Error()}
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		}
		hub.CaptureException(err)
	})
}
