package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/secmon-lab/stubscout/pkg/utils/errutil"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	corsOrigins []string
}

type Options func(*Server)

// WithCORSOrigins sets the allowed origins. "*" allows any origin.
func WithCORSOrigins(origins []string) Options {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:      r,
		uc:          uc,
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.corsOrigins))

	r.Get("/", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/stub-articles", recommendHandler(uc.Recommend))
		r.Post("/relevant-stubs", recommendHandler(uc.Recommend))
		r.Post("/generate-summary", summaryHandler(uc.Summary))
		r.Post("/validate-content", validationHandler(uc.Validation))

		r.Post("/search", searchHandler(uc.Lookup))
		r.Get("/categories/{title}", categoriesHandler(uc.Lookup))
		r.Get("/article/{title}", articleHandler(uc.Lookup))
		r.Get("/stub-categories", stubCategoriesHandler(uc.Lookup))
		r.Get("/stub-categories/{category}/members", categoryMembersHandler(uc.Lookup))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "stubscout API is running"})
}

// writeJSON marshals v before touching the response so a marshal failure can still become a 500
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}
