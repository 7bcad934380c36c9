package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"illumicheck/internal/handlers"
	"illumicheck/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SpellService service.SpellService
	// DB is pinged by the health check; nil skips that check.
	DB handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// Add CORS middleware
	r.Use(CORS)

	checkHandler := handlers.NewCheckHandler(deps.SpellService)
	sessionHandler := handlers.NewSessionHandler(deps.SpellService)
	statusHandler := handlers.NewStatusHandler(deps.SpellService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.SpellService)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/check", checkHandler)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Post("/{id}/check", sessionHandler.Check)
			r.Delete("/{id}", sessionHandler.Close)
		})
		r.Method(http.MethodGet, "/status", statusHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve the editor page at root
	r.Get("/", handlers.EditorHandler)

	return r
}
