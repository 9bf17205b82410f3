package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	AllowedOrigins []string
	// RequestsPerMinute caps report generation across all clients; 0 means no cap.
	RequestsPerMinute int
}

func NewRouter(h *Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	RegisterRoutes(r, h, opts)
	return r
}

func RegisterRoutes(r chi.Router, h *Handler, opts Options) {
	r.With(RateLimit(opts.RequestsPerMinute, opts.RequestsPerMinute)).Post("/generateReport", h.GenerateReport)
	r.Get("/ping", h.Ping)
}
