package chromedp_scraper

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/entity"
)

const (
	viewportWidth  = 1280
	viewportHeight = 800
	scrollOffset   = 600
)

// ErrNoPreviewLink is returned when the metadata carried no preview URL to visit.
var ErrNoPreviewLink = errors.New("no preview link")

// Options configures the scraper.
type Options struct {
	PageLoadTimeout time.Duration
	RenderWait      time.Duration // Google Books paints pages onto a canvas after load
	ScrollWait      time.Duration
	MaxConcurrency  int
}

// ChromedpScraper implements repository.PreviewRepository with a headless Chrome.
type ChromedpScraper struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	sem      chan struct{}
	agents   *AgentPool
	opts     Options
	logger   *zap.Logger
}

// NewChromedpScraper creates a new scraper implementation using chromedp.
func NewChromedpScraper(opts Options, logger *zap.Logger) *ChromedpScraper {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return &ChromedpScraper{
		allocCtx: allocCtx,
		cancel:   cancel,
		sem:      make(chan struct{}, opts.MaxConcurrency),
		agents:   NewAgentPool(),
		opts:     opts,
		logger:   logger,
	}
}

// Capture opens the preview page, lets it render, scrolls once and screenshots the viewport.
func (s *ChromedpScraper) Capture(ctx context.Context, previewURL string) (*entity.Preview, error) {
	if previewURL == "" {
		return &entity.Preview{}, ErrNoPreviewLink
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return &entity.Preview{}, ctx.Err()
	}

	taskCtx, cancel := chromedp.NewContext(s.allocCtx, chromedp.WithLogf(s.logger.Sugar().Debugf))
	defer cancel()

	// Create a timeout for the entire capture task
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, s.opts.PageLoadTimeout+s.opts.RenderWait+s.opts.ScrollWait)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var (
		screenshot []byte
		html       string
		scrolled   bool
	)

	s.logger.Info("opening preview page", zap.String("url", previewURL))
	startTime := time.Now()

	err := chromedp.Run(taskCtx,
		emulation.SetUserAgentOverride(s.agents.Next()),
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate(previewURL),
		chromedp.Sleep(s.opts.RenderWait),
		chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d); true", scrollOffset), &scrolled),
		chromedp.Sleep(s.opts.ScrollWait),
		chromedp.CaptureScreenshot(&screenshot),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		s.logger.Warn("preview capture failed", zap.String("url", previewURL), zap.Error(err))
		return &entity.Preview{}, fmt.Errorf("capture preview: %w", err)
	}

	preview := &entity.Preview{Screenshots: []string{}}
	if len(screenshot) > 0 {
		preview.Screenshots = append(preview.Screenshots, base64.StdEncoding.EncodeToString(screenshot))
	}

	if cover, err := ExtractCover(html); err != nil {
		s.logger.Debug("could not parse preview html", zap.Error(err))
	} else {
		preview.CoverURL = cover
	}

	s.logger.Info("preview captured",
		zap.String("url", previewURL),
		zap.Int("screenshots", len(preview.Screenshots)),
		zap.Duration("took", time.Since(startTime)),
	)
	return preview, nil
}

// Close shuts the browser allocator down.
func (s *ChromedpScraper) Close() {
	s.cancel()
}
