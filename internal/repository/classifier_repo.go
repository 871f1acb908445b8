package repository

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
)

// LevelClassifier assigns a reading level to a book.
type LevelClassifier interface {
	// Classify uses the metadata and, when non-empty, a base64 PNG screenshot.
	Classify(ctx context.Context, meta *entity.BookMetadata, screenshot string) (entity.AIAnalysis, error)
}
