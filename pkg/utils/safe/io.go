package safe

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

// Close closes c and logs the failure instead of returning it. nil is ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and reports whether the write succeeded.
// A failed write usually means the peer went away, so it is logged at debug.
func Write(ctx context.Context, w io.Writer, data []byte) bool {
	if w == nil {
		return false
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Debug("failed to write", slog.Any("error", err))
		return false
	}
	return true
}

// Flush pushes buffered response data to the client when the writer supports it.
func Flush(ctx context.Context, w http.ResponseWriter) {
	if err := http.NewResponseController(w).Flush(); err != nil {
		logging.From(ctx).Debug("failed to flush", slog.Any("error", err))
	}
}

// Drain discards the rest of r so the underlying connection can be reused, then closes it.
func Drain(ctx context.Context, r io.ReadCloser) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		logging.From(ctx).Debug("failed to drain body", slog.Any("error", err))
	}
	Close(ctx, r)
}
