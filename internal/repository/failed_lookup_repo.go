package repository

import (
	"context"

	"github.com/user/book-classifier/internal/entity"
)

// FailedLookupRepository tracks titles whose analysis could not be completed.
type FailedLookupRepository interface {
	// SaveOrUpdate creates a record or bumps the attempt counter of an existing one.
	SaveOrUpdate(ctx context.Context, failed *entity.FailedLookup) error
	// Delete removes a record, typically after a successful analysis.
	Delete(ctx context.Context, query string) error
}
