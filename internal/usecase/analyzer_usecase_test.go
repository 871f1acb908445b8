package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/repository"
)

type analyzerFixture struct {
	metadata   *MockMetadataRepo
	preview    *MockPreviewRepo
	classifier *MockClassifier
	cache      *MockCache
	history    *MockAnalysisRepo
	failed     *MockFailedLookupRepo
	analyzer   Analyzer
}

func newAnalyzerFixture() *analyzerFixture {
	f := &analyzerFixture{
		metadata:   &MockMetadataRepo{},
		preview:    &MockPreviewRepo{},
		classifier: &MockClassifier{},
		cache:      &MockCache{},
		history:    &MockAnalysisRepo{},
		failed:     &MockFailedLookupRepo{},
	}
	f.analyzer = NewAnalyzer(AnalyzerDeps{
		Metadata:     f.metadata,
		Preview:      f.preview,
		Classifier:   f.classifier,
		Cache:        f.cache,
		AnalysisRepo: f.history,
		FailedLookup: f.failed,
		CacheTTL:     time.Hour,
	}, zap.NewNop())
	return f
}

func (f *analyzerFixture) assertExpectations(t *testing.T) {
	f.metadata.AssertExpectations(t)
	f.preview.AssertExpectations(t)
	f.classifier.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.history.AssertExpectations(t)
	f.failed.AssertExpectations(t)
}

func sampleMetadata() *entity.BookMetadata {
	pages := 529
	return &entity.BookMetadata{
		VolumeID:    "abc",
		Title:       "Laskar Pelangi",
		Authors:     []string{"Andrea Hirata"},
		PageCount:   &pages,
		Categories:  []string{"Fiction"},
		PreviewLink: "http://books.google.com/books?id=abc",
		Thumbnail:   "http://books.google.com/cover?id=abc",
	}
}

var sampleAnalysis = entity.AIAnalysis{
	Jenjang:         "Jenjang D - Pembaca Madya",
	ConfidenceScore: 85,
	Alasan:          "Paragraf naratif kompleks.",
	Saran:           "Mandiri",
	BadgeColor:      "HIJAU",
}

func TestAnalyzeEmptyTitle(t *testing.T) {
	f := newAnalyzerFixture()

	_, err := f.analyzer.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	f.assertExpectations(t)
}

func TestAnalyzeSuccess(t *testing.T) {
	ctx := context.Background()
	f := newAnalyzerFixture()
	meta := sampleMetadata()

	f.cache.On("Get", ctx, "Laskar Pelangi").Return(nil, repository.ErrCacheMiss)
	f.metadata.On("Search", ctx, "Laskar Pelangi").Return(meta, nil)
	f.preview.On("Capture", ctx, meta.PreviewLink).Return(&entity.Preview{Screenshots: []string{"shot1", "shot2"}}, nil)
	f.classifier.On("Classify", ctx, meta, "shot1").Return(sampleAnalysis, nil)
	f.history.On("Save", ctx, mock.MatchedBy(func(r *entity.AnalysisRecord) bool {
		return r.Query == "Laskar Pelangi" && r.Jenjang == sampleAnalysis.Jenjang && r.BadgeColor == "HIJAU"
	})).Return(nil)
	f.cache.On("Set", ctx, "Laskar Pelangi", mock.AnythingOfType("*entity.BookResult"), time.Hour).Return(nil)
	f.failed.On("Delete", ctx, "Laskar Pelangi").Return(nil)

	result, err := f.analyzer.Analyze(ctx, "Laskar Pelangi")
	require.NoError(t, err)

	assert.Equal(t, "Laskar Pelangi", result.Title)
	assert.Equal(t, []string{"Andrea Hirata"}, result.Authors)
	assert.Equal(t, 529, *result.PageCount)
	assert.Equal(t, meta.Thumbnail, result.Thumbnail)
	assert.Equal(t, []string{"shot1", "shot2"}, result.Screenshots)
	assert.Equal(t, sampleAnalysis, result.Analysis)
	f.assertExpectations(t)
}

func TestAnalyzeCacheHit(t *testing.T) {
	ctx := context.Background()
	f := newAnalyzerFixture()
	cached := &entity.BookResult{Title: "Laskar Pelangi", Analysis: sampleAnalysis}

	f.cache.On("Get", ctx, "Laskar Pelangi").Return(cached, nil)

	result, err := f.analyzer.Analyze(ctx, "Laskar Pelangi")
	require.NoError(t, err)
	assert.Same(t, cached, result)
	f.assertExpectations(t)
}

func TestAnalyzeNotFound(t *testing.T) {
	ctx := context.Background()
	f := newAnalyzerFixture()

	f.cache.On("Get", ctx, "zzz").Return(nil, repository.ErrCacheMiss)
	f.metadata.On("Search", ctx, "zzz").Return(nil, repository.ErrBookNotFound)
	f.failed.On("SaveOrUpdate", ctx, mock.MatchedBy(func(fl *entity.FailedLookup) bool {
		return fl.Query == "zzz" && fl.FailureReason == repository.ErrBookNotFound.Error()
	})).Return(nil)

	_, err := f.analyzer.Analyze(ctx, "zzz")
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	f.assertExpectations(t)
}

func TestAnalyzeDegradesWithoutScreenshotOrModel(t *testing.T) {
	ctx := context.Background()
	f := newAnalyzerFixture()
	meta := sampleMetadata()
	meta.Thumbnail = ""
	modelErr := errors.New("quota exceeded")

	f.cache.On("Get", ctx, "Laskar Pelangi").Return(nil, errors.New("redis down"))
	f.metadata.On("Search", ctx, "Laskar Pelangi").Return(meta, nil)
	f.preview.On("Capture", ctx, meta.PreviewLink).
		Return(&entity.Preview{CoverURL: "https://books.google.com/og.jpg"}, errors.New("navigation timeout"))
	f.classifier.On("Classify", ctx, meta, "").Return(entity.AIAnalysis{}, modelErr)
	f.history.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))
	f.failed.On("Delete", ctx, "Laskar Pelangi").Return(nil)

	result, err := f.analyzer.Analyze(ctx, "Laskar Pelangi")
	require.NoError(t, err)

	assert.Equal(t, FallbackAnalysis(modelErr), result.Analysis)
	assert.Equal(t, "ABU", result.Analysis.BadgeColor)
	assert.Equal(t, "Gagal analisis AI: quota exceeded", result.Analysis.Alasan)
	assert.Equal(t, "https://books.google.com/og.jpg", result.Thumbnail)
	assert.NotNil(t, result.Screenshots)
	assert.Empty(t, result.Screenshots)
	// The fallback verdict must not be cached.
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAnalyzeWithoutOptionalStores(t *testing.T) {
	ctx := context.Background()
	meta := sampleMetadata()
	metadata := &MockMetadataRepo{}
	preview := &MockPreviewRepo{}
	classifier := &MockClassifier{}

	metadata.On("Search", ctx, "Laskar Pelangi").Return(meta, nil)
	preview.On("Capture", ctx, meta.PreviewLink).Return(nil, errors.New("chrome missing"))
	classifier.On("Classify", ctx, meta, "").Return(sampleAnalysis, nil)

	analyzer := NewAnalyzer(AnalyzerDeps{Metadata: metadata, Preview: preview, Classifier: classifier}, zap.NewNop())
	result, err := analyzer.Analyze(ctx, "Laskar Pelangi")
	require.NoError(t, err)
	assert.Equal(t, sampleAnalysis, result.Analysis)
}
