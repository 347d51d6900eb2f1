package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flighttime-data/internal/metrics"
)

func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.HTTPMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/api/airports", h.SearchAirports)
	r.Post("/api/itineraries/calculate", h.Calculate)

	return r
}
