package repository

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
)

// MetadataRepository looks a book up by free-text title.
type MetadataRepository interface {
	// Search returns the best match for query, or ErrBookNotFound.
	Search(ctx context.Context, query string) (*entity.BookMetadata, error)
}
