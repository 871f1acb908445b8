package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/book-classifier/internal/entity"
)

// FailedLookupRepoImpl provides a concrete implementation for the FailedLookupRepository interface using PostgreSQL.
type FailedLookupRepoImpl struct {
	db *pgxpool.Pool
}

// NewFailedLookupRepo creates a new instance of FailedLookupRepoImpl.
func NewFailedLookupRepo(db *pgxpool.Pool) *FailedLookupRepoImpl {
	return &FailedLookupRepoImpl{db: db}
}

// SaveOrUpdate creates or updates a record for a failed lookup.
// It increments attempts on conflict.
func (r *FailedLookupRepoImpl) SaveOrUpdate(ctx context.Context, failed *entity.FailedLookup) error {
	query := `
		INSERT INTO failed_lookups (query, failure_reason, attempts, last_attempt_timestamp)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (query) DO UPDATE SET
			failure_reason = EXCLUDED.failure_reason,
			attempts = failed_lookups.attempts + 1,
			last_attempt_timestamp = EXCLUDED.last_attempt_timestamp;
	`
	_, err := r.db.Exec(ctx, query,
		failed.Query,
		failed.FailureReason,
		failed.LastAttemptTimestamp,
	)
	return err
}

// Delete removes a failed lookup record, typically after a successful analysis.
func (r *FailedLookupRepoImpl) Delete(ctx context.Context, query string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM failed_lookups WHERE query = $1;`, query)
	return err
}
