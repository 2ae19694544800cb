// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the HTTP routes and middleware stack.
func NewRouter(h *Handler, cfg MiddlewareConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(cfg.CORSAllowedOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(PrometheusMetrics)
		if cfg.RateLimitRequests > 0 {
			r.Use(RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}

		r.Post("/recognize", h.Recognize)
		r.Get("/landmarks/nearby", h.GetNearby)
		r.Get("/landmarks/{id}", h.GetLandmark)
		r.Get("/preferences/radius", h.GetRadius)
		r.Put("/preferences/radius", h.PutRadius)
		r.Get("/health", h.Health)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
