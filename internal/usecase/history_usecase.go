package usecase

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/repository"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// History defines the interface for reading past analyses.
type History interface {
	Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error)
}

type historyUseCase struct {
	analysisRepo repository.AnalysisRepository
}

// NewHistory creates a new History use case.
func NewHistory(analysisRepo repository.AnalysisRepository) History {
	return &historyUseCase{analysisRepo: analysisRepo}
}

// Recent clamps limit to 1..100; zero or negative means the default of 10.
func (uc *historyUseCase) Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}
	return uc.analysisRepo.Recent(ctx, limit)
}
