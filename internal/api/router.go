package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "mediadeck/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the
// application's routes.
func NewRouter(mediaHandler *MediaHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// --- Public Routes ---

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Prometheus metrics for the resolver core and upstream calls.
	r.Handle("/metrics", promhttp.Handler())

	// A simple health check endpoint for liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON API routes with a request timeout so client
		// connections cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/media/overview", mediaHandler.GetOverview)
			r.Post("/media/files/query", mediaHandler.QueryFiles)
			r.Get("/media/files/{fileID}/chat", mediaHandler.GetFileChat)
			r.Delete("/media/files", mediaHandler.DeleteFiles)
		})

		// Prompt recovery may scan up to the configured chat limit with one
		// upstream fetch per chat, so it runs without the standard timeout.
		r.Group(func(r chi.Router) {
			r.Get("/media/files/{fileID}/prompt", mediaHandler.GetFilePrompt)
		})
	})

	return r
}
