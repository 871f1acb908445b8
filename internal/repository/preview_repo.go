package repository

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
)

// PreviewRepository captures visual evidence from a book's preview page.
type PreviewRepository interface {
	Capture(ctx context.Context, previewURL string) (*entity.Preview, error)
}
