package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/repository"
	"github.com/user/book-classifier/pkg/metrics"
)

var ErrEmptyTitle = errors.New("title is empty")

// Analyzer defines the interface for the title → reading level pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, title string) (*entity.BookResult, error)
}

// FallbackAnalysis is returned in place of a classifier verdict when classification fails.
func FallbackAnalysis(err error) entity.AIAnalysis {
	return entity.AIAnalysis{
		Jenjang:         "Tidak Teridentifikasi",
		ConfidenceScore: 0,
		Alasan:          fmt.Sprintf("Gagal analisis AI: %v", err),
		Saran:           "-",
		BadgeColor:      "ABU",
	}
}

type analyzerUseCase struct {
	metadataRepo     repository.MetadataRepository
	previewRepo      repository.PreviewRepository
	classifier       repository.LevelClassifier
	cache            repository.ResultCache
	analysisRepo     repository.AnalysisRepository
	failedLookupRepo repository.FailedLookupRepository
	cacheTTL         time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

// AnalyzerDeps groups the collaborators of the analyzer. Cache, AnalysisRepo and
// FailedLookupRepo may be nil.
type AnalyzerDeps struct {
	Metadata     repository.MetadataRepository
	Preview      repository.PreviewRepository
	Classifier   repository.LevelClassifier
	Cache        repository.ResultCache
	AnalysisRepo repository.AnalysisRepository
	FailedLookup repository.FailedLookupRepository
	CacheTTL     time.Duration
}

// NewAnalyzer creates a new instance of the analyzer use case.
func NewAnalyzer(deps AnalyzerDeps, logger *zap.Logger) Analyzer {
	return &analyzerUseCase{
		metadataRepo:     deps.Metadata,
		previewRepo:      deps.Preview,
		classifier:       deps.Classifier,
		cache:            deps.Cache,
		analysisRepo:     deps.AnalysisRepo,
		failedLookupRepo: deps.FailedLookup,
		cacheTTL:         deps.CacheTTL,
		logger:           logger,
		now:              time.Now,
	}
}

// Analyze looks the title up, captures its preview, classifies it and records the result.
// Only an empty title and metadata failures are returned as errors; everything after the
// lookup degrades instead of failing.
func (uc *analyzerUseCase) Analyze(ctx context.Context, title string) (*entity.BookResult, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	log := uc.logger.With(zap.String("title", title))
	log.Info("analysis started")

	if cached := uc.fromCache(ctx, title); cached != nil {
		log.Info("analysis served from cache")
		metrics.AnalysesTotal.WithLabelValues("cached").Inc()
		return cached, nil
	}

	start := time.Now()
	meta, err := uc.metadataRepo.Search(ctx, title)
	metrics.StageDuration.WithLabelValues("metadata").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, uc.handleLookupFailure(ctx, title, err)
	}
	log.Info("metadata found", zap.String("volume_id", meta.VolumeID), zap.Any("page_count", meta.PageCount))

	preview := uc.capture(ctx, meta)

	evidence := ""
	if len(preview.Screenshots) > 0 {
		evidence = preview.Screenshots[0]
	} else {
		log.Warn("no screenshot available, classifying from metadata only")
	}

	start = time.Now()
	analysis, err := uc.classifier.Classify(ctx, meta, evidence)
	metrics.StageDuration.WithLabelValues("classify").Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("classification failed", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("classify_failed").Inc()
		analysis = FallbackAnalysis(err)
	}

	thumbnail := meta.Thumbnail
	if thumbnail == "" {
		thumbnail = preview.CoverURL
	}

	result := &entity.BookResult{
		Title:       meta.Title,
		Authors:     meta.Authors,
		PageCount:   meta.PageCount,
		Categories:  meta.Categories,
		Thumbnail:   thumbnail,
		Screenshots: preview.Screenshots,
		Analysis:    analysis,
	}
	if result.Screenshots == nil {
		result.Screenshots = []string{}
	}

	uc.handleSuccess(ctx, title, result, err == nil)
	log.Info("analysis finished",
		zap.String("jenjang", analysis.Jenjang),
		zap.Float64("confidence_score", analysis.ConfidenceScore),
	)
	return result, nil
}

func (uc *analyzerUseCase) fromCache(ctx context.Context, title string) *entity.BookResult {
	if uc.cache == nil {
		return nil
	}
	cached, err := uc.cache.Get(ctx, title)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			uc.logger.Warn("cache lookup failed", zap.String("title", title), zap.Error(err))
		}
		return nil
	}
	return cached
}

func (uc *analyzerUseCase) capture(ctx context.Context, meta *entity.BookMetadata) *entity.Preview {
	start := time.Now()
	preview, err := uc.previewRepo.Capture(ctx, meta.PreviewLink)
	metrics.StageDuration.WithLabelValues("capture").Observe(time.Since(start).Seconds())
	if err != nil {
		uc.logger.Warn("preview capture failed", zap.String("preview_link", meta.PreviewLink), zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("capture_failed").Inc()
	}
	if preview == nil {
		preview = &entity.Preview{}
	}
	return preview
}

func (uc *analyzerUseCase) handleLookupFailure(ctx context.Context, title string, lookupErr error) error {
	status := "failure"
	if errors.Is(lookupErr, repository.ErrBookNotFound) {
		status = "not_found"
	}
	metrics.AnalysesTotal.WithLabelValues(status).Inc()
	uc.logger.Warn("metadata lookup failed", zap.String("title", title), zap.Error(lookupErr))

	if uc.failedLookupRepo != nil {
		failed := &entity.FailedLookup{
			Query:                title,
			FailureReason:        lookupErr.Error(),
			LastAttemptTimestamp: uc.now(),
		}
		if err := uc.failedLookupRepo.SaveOrUpdate(ctx, failed); err != nil {
			uc.logger.Error("failed to record failed lookup", zap.String("title", title), zap.Error(err))
		}
	}

	return fmt.Errorf("lookup %q: %w", title, lookupErr)
}

func (uc *analyzerUseCase) handleSuccess(ctx context.Context, title string, result *entity.BookResult, classified bool) {
	metrics.AnalysesTotal.WithLabelValues("success").Inc()

	if uc.analysisRepo != nil {
		if err := uc.analysisRepo.Save(ctx, entity.NewAnalysisRecord(title, result, uc.now())); err != nil {
			uc.logger.Error("failed to save analysis history", zap.String("title", title), zap.Error(err))
			metrics.ErrorsTotal.WithLabelValues("history_save_failed").Inc()
		}
	}

	// A fallback verdict is not worth keeping around; the next request should try the model again.
	if uc.cache != nil && classified {
		if err := uc.cache.Set(ctx, title, result, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache analysis", zap.String("title", title), zap.Error(err))
		}
	}

	// If the title previously failed, remove it from the failed table.
	if uc.failedLookupRepo != nil {
		if err := uc.failedLookupRepo.Delete(ctx, title); err != nil {
			uc.logger.Warn("failed to clear failed lookup", zap.String("title", title), zap.Error(err))
		}
	}
}
