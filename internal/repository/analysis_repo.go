package repository

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
)

// AnalysisRepository stores the history of completed analyses.
type AnalysisRepository interface {
	Save(ctx context.Context, record *entity.AnalysisRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error)
	Ping(ctx context.Context) error
}
