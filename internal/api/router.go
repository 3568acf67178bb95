package api

import (
	"net/http"

	"github.com/gameshelf/gameshelf/internal/api/handlers"
	"github.com/gameshelf/gameshelf/internal/api/middleware"
	"github.com/gameshelf/gameshelf/internal/ingest"
	"github.com/gameshelf/gameshelf/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func NewRouter(services *service.Services, scheduler *ingest.Scheduler, logger *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(services.Game, logger)
	ingestHandler := handlers.NewIngestHandler(scheduler, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.List)
			r.Get("/{slug}", gameHandler.GetBySlug)
			r.Post("/sync", ingestHandler.Sync) // Should be admin-only in production
		})
	})

	return r
}
