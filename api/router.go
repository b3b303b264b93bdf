package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the request surface onto a chi.Router:
// request-id and recover middleware, then the three routes.
func NewRouter(logger zerolog.Logger) chi.Router {
	h := NewHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HandleHealthz)
	r.Post("/analyze", h.HandleAnalyze)
	r.Post("/repair", h.HandleRepair)

	return r
}
