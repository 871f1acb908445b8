package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/user/book-classifier/internal/entity"
)

type MockMetadataRepo struct{ mock.Mock }

func (m *MockMetadataRepo) Search(ctx context.Context, query string) (*entity.BookMetadata, error) {
	args := m.Called(ctx, query)
	meta, _ := args.Get(0).(*entity.BookMetadata)
	return meta, args.Error(1)
}

type MockPreviewRepo struct{ mock.Mock }

func (m *MockPreviewRepo) Capture(ctx context.Context, previewURL string) (*entity.Preview, error) {
	args := m.Called(ctx, previewURL)
	preview, _ := args.Get(0).(*entity.Preview)
	return preview, args.Error(1)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Classify(ctx context.Context, meta *entity.BookMetadata, screenshot string) (entity.AIAnalysis, error) {
	args := m.Called(ctx, meta, screenshot)
	return args.Get(0).(entity.AIAnalysis), args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Get(ctx context.Context, title string) (*entity.BookResult, error) {
	args := m.Called(ctx, title)
	result, _ := args.Get(0).(*entity.BookResult)
	return result, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, title string, result *entity.BookResult, expiry time.Duration) error {
	return m.Called(ctx, title, result, expiry).Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAnalysisRepo struct{ mock.Mock }

func (m *MockAnalysisRepo) Save(ctx context.Context, record *entity.AnalysisRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockAnalysisRepo) Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*entity.AnalysisRecord)
	return records, args.Error(1)
}

func (m *MockAnalysisRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockFailedLookupRepo struct{ mock.Mock }

func (m *MockFailedLookupRepo) SaveOrUpdate(ctx context.Context, failed *entity.FailedLookup) error {
	return m.Called(ctx, failed).Error(0)
}

func (m *MockFailedLookupRepo) Delete(ctx context.Context, query string) error {
	return m.Called(ctx, query).Error(0)
}
