package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsMiddleware allows the listed origins ("*" for any) to call the API and
// answers preflight requests with 204
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
