package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/delivery/http/request"
	"github.com/user/book-classifier/internal/delivery/http/response"
	"github.com/user/book-classifier/internal/repository"
	"github.com/user/book-classifier/internal/usecase"
)

const (
	detailBookNotFound   = "Buku tidak ditemukan"
	detailEmptyTitle     = "Judul buku wajib diisi"
	detailInvalidBody    = "Body permintaan tidak valid"
	detailUpstreamFailed = "Gagal mengambil metadata buku"
	detailInternal       = "Terjadi kesalahan internal"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	analyzer usecase.Analyzer
	history  usecase.History
	checks   map[string]Pinger
	logger   *zap.Logger
}

// NewHandler wires the API handlers. checks maps a dependency name to its probe.
func NewHandler(analyzer usecase.Analyzer, history usecase.History, checks map[string]Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		history:  history,
		checks:   checks,
		logger:   logger,
	}
}

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req request.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, detailInvalidBody, http.StatusBadRequest)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req.Title)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyTitle):
			h.writeJSONError(w, detailEmptyTitle, http.StatusBadRequest)
		case errors.Is(err, repository.ErrBookNotFound):
			h.writeJSONError(w, detailBookNotFound, http.StatusNotFound)
		case errors.Is(err, repository.ErrMetadataUnavailable):
			h.logger.Error("metadata source failed", zap.String("title", req.Title), zap.Error(err))
			h.writeJSONError(w, detailUpstreamFailed, http.StatusBadGateway)
		default:
			h.logger.Error("failed to analyze book", zap.String("title", req.Title), zap.Error(err))
			h.writeJSONError(w, detailInternal, http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeJSONError(w, "Parameter limit harus berupa angka", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list recent analyses", zap.Error(err))
		h.writeJSONError(w, detailInternal, http.StatusInternalServerError)
		return
	}

	resp := response.RecentAnalysesResponse{Items: make([]response.AnalysisSummary, 0, len(records))}
	for _, rec := range records {
		resp.Items = append(resp.Items, response.AnalysisSummary{
			ID:              rec.ID,
			Query:           rec.Query,
			Title:           rec.Title,
			Jenjang:         rec.Jenjang,
			ConfidenceScore: rec.ConfidenceScore,
			BadgeColor:      rec.BadgeColor,
			Thumbnail:       rec.Result.Thumbnail,
			CreatedAt:       rec.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := map[string]string{"status": "ok"}
	healthy := true
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			healthStatus[name] = "unhealthy"
			healthy = false
			h.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		healthStatus[name] = "healthy"
	}

	if !healthy {
		healthStatus["status"] = "degraded"
		h.writeJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	h.writeJSON(w, http.StatusOK, healthStatus)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, detail string, status int) {
	h.writeJSON(w, status, response.ErrorResponse{Detail: detail})
}
