package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/delivery/http/handler"
	"github.com/user/book-classifier/internal/delivery/http/middleware"
)

// Options tunes the API router.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
	// RequestTimeout bounds a whole analysis: lookup, browser capture and model call.
	RequestTimeout time.Duration
}

func New(h *handler.Handler, opts Options, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/analyses", h.HandleRecent)
		analyze := r.With(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
		if opts.RequestTimeout > 0 {
			analyze = analyze.With(chimw.Timeout(opts.RequestTimeout))
		}
		analyze.Post("/analyze", h.HandleAnalyze)
	})

	return r
}
