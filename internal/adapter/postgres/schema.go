package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS book_analyses (
	id               BIGSERIAL PRIMARY KEY,
	query            TEXT        NOT NULL,
	title            TEXT        NOT NULL,
	jenjang          TEXT        NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	badge_color      TEXT        NOT NULL,
	result           JSONB       NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS book_analyses_created_at_idx ON book_analyses (created_at DESC);

CREATE TABLE IF NOT EXISTS failed_lookups (
	id                     BIGSERIAL PRIMARY KEY,
	query                  TEXT        NOT NULL UNIQUE,
	failure_reason         TEXT        NOT NULL,
	attempts               INTEGER     NOT NULL DEFAULT 1,
	last_attempt_timestamp TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the tables used by the repositories in this package.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
