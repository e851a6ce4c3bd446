// Package routes assembles the chi router for the assistant API.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dlformula/assistant/app"
	"github.com/dlformula/assistant/handlers"
	"github.com/dlformula/assistant/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS for the local companion UI
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handlers.StatusHandler(deps))

		// Question answering
		r.Get("/search", handlers.SearchHandler(deps))
		r.Post("/ask", handlers.AskHandler(deps))
		r.Post("/feedback", handlers.FeedbackHandler(deps))

		// Function catalog
		r.Route("/functions", func(r chi.Router) {
			r.Get("/", handlers.ListFunctionsHandler(deps))
			r.Get("/categories", handlers.ListCategoriesHandler(deps))
			r.Get("/{name}", handlers.GetFunctionHandler(deps))
		})

		// Stored feedback memory
		r.Route("/memory", func(r chi.Router) {
			r.Get("/stats", handlers.MemoryStatsHandler(deps))
			r.Get("/export", handlers.MemoryExportHandler(deps))
			r.Post("/import", handlers.MemoryImportHandler(deps))
			r.Post("/cleanup", handlers.MemoryCleanupHandler(deps))
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handlers.GetSettingsHandler(deps))
			r.Put("/", handlers.UpdateSettingsHandler(deps))
			r.Post("/reset", handlers.ResetSettingsHandler(deps))
		})

		// Provider key check
		r.Post("/providers/test", handlers.TestKeyHandler(deps))

		// History and favorites
		r.Route("/history", func(r chi.Router) {
			r.Get("/", handlers.GetHistoryHandler(deps))
			r.Delete("/", handlers.ClearHistoryHandler(deps))
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", handlers.ListFavoritesHandler(deps))
			r.Post("/", handlers.AddFavoriteHandler(deps))
			r.Delete("/{name}", handlers.RemoveFavoriteHandler(deps))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
