package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/delivery/http/handler"
	"github.com/user/book-classifier/internal/entity"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, title string) (*entity.BookResult, error) {
	return &entity.BookResult{Title: title}, nil
}

type stubHistory struct{}

func (stubHistory) Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	return nil, nil
}

func TestRoutes(t *testing.T) {
	h := handler.NewHandler(stubAnalyzer{}, stubHistory{}, nil, zap.NewNop())
	r := New(h, Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, zap.NewNop())

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/analyses", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/analyze", `{"title":"Bumi"}`, http.StatusOK},
		{http.MethodPost, "/api/analyze", `{"title":"Bumi"}`, http.StatusTooManyRequests},
		{http.MethodGet, "/api/analyze", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestCORSHeader(t *testing.T) {
	h := handler.NewHandler(stubAnalyzer{}, stubHistory{}, nil, zap.NewNop())
	r := New(h, Options{}, zap.NewNop())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
