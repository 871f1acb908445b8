package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/frontend/page"
)

// Options configures the web server.
type Options struct {
	Port       string
	CoverHosts []string
	SessionTTL time.Duration
	// CoverClient fetches thumbnails for /cover; nil uses a client with a short timeout.
	CoverClient *http.Client
}

// Server renders the search page and proxies cover images.
type Server struct {
	opts       Options
	sessions   *page.Store
	tmpl       *template.Template
	router     http.Handler
	httpServer *http.Server
	cover      *coverProxy
	logger     *zap.Logger

	sweepCtx  context.Context
	stopSweep context.CancelFunc
}

func NewServer(opts Options, sessions *page.Store, logger *zap.Logger) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if opts.CoverClient == nil {
		opts.CoverClient = &http.Client{Timeout: 10 * time.Second}
	}

	s := &Server{
		opts:     opts,
		sessions: sessions,
		tmpl:     tmpl,
		cover:    newCoverProxy(opts.CoverClient, opts.CoverHosts, logger),
		logger:   logger,
	}
	s.router = s.setupRouter()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", opts.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	s.sweepCtx, s.stopSweep = context.WithCancel(context.Background())
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	go s.sweepSessions(s.sweepCtx)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopSweep()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) sweepSessions(ctx context.Context) {
	interval := s.opts.SessionTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(); n > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
