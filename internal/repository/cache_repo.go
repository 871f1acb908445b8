package repository

import (
	"context"
	"time"

	"github.com/user/book-classifier/internal/entity"
)

// ResultCache keeps recent analysis results keyed by title.
type ResultCache interface {
	// Get returns the cached result for title, or ErrCacheMiss.
	Get(ctx context.Context, title string) (*entity.BookResult, error)
	// Set stores a result with a specific expiry time.
	Set(ctx context.Context, title string, result *entity.BookResult, expiry time.Duration) error
	Ping(ctx context.Context) error
}
