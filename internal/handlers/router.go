// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shiburizu/concerto-server/internal/middleware"
)

// NewRouter mounts the lobby endpoints with logging, panic recovery, a /ping
// heartbeat and CORS.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LogMiddleware(s.logger))
	r.Use(chimw.Recoverer)

	r.Use(chimw.Heartbeat("/ping"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/l", s.LobbyHandler)
	r.Get("/s", s.StatsHandler)
	r.Get("/v", s.VersionHandler)
	r.Get("/announce", s.AnnounceHandler)
	return r
}
