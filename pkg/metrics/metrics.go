package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_analyses_total",
			Help: "Total number of book analyses by outcome.",
		},
		[]string{"status"}, // success, cached, not_found, failure
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "book_analysis_stage_duration_seconds",
			Help:    "Duration of each analysis stage.",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 15, 30, 60},
		},
		[]string{"stage"}, // metadata, capture, classify
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_classifier_errors_total",
			Help: "The total number of non-fatal errors encountered.",
		},
		[]string{"type"}, // e.g. capture_failed, classify_failed, history_save_failed
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "web_active_sessions",
			Help: "Current number of search page sessions held in memory.",
		},
	)
)
