// Package httpapi exposes the OpenAI-compatible HTTP surface: chat
// completions, model listing, and health, wired through go-chi.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// corsMiddleware applies the permissive CORS policy named in the HTTP
// surface: any origin, the three methods the API uses, and the two
// headers a chat-completions client sends.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the chi router for the three endpoints plus metrics.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Post("/v1/chat/completions", h.ChatCompletions)
	r.Get("/v1/models", h.Models)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "route not found", "not_found_error", "not_found")
	})

	return r
}
