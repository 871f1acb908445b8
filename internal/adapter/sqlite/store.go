package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/user/book-classifier/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS book_analyses (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	query            TEXT    NOT NULL,
	title            TEXT    NOT NULL,
	jenjang          TEXT    NOT NULL,
	confidence_score REAL    NOT NULL,
	badge_color      TEXT    NOT NULL,
	result           TEXT    NOT NULL,
	created_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS book_analyses_created_at_idx ON book_analyses (created_at DESC);

CREATE TABLE IF NOT EXISTS failed_lookups (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	query                  TEXT    NOT NULL UNIQUE,
	failure_reason         TEXT    NOT NULL,
	attempts               INTEGER NOT NULL DEFAULT 1,
	last_attempt_timestamp INTEGER NOT NULL
);
`

// Store keeps analysis history in a local SQLite file. It implements both
// repository.AnalysisRepository and repository.FailedLookupRepository.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database file %q: %w", path, err)
	}
	// A single connection avoids SQLITE_BUSY between concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save inserts a history row and fills in its generated id.
func (s *Store) Save(ctx context.Context, record *entity.AnalysisRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO book_analyses (query, title, jenjang, confidence_score, badge_color, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Query,
		record.Title,
		record.Jenjang,
		record.ConfidenceScore,
		record.BadgeColor,
		string(resultJSON),
		record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return err
	}
	record.ID, err = res.LastInsertId()
	return err
}

// Recent returns the newest history rows.
func (s *Store) Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, title, jenjang, confidence_score, badge_color, result, created_at
		 FROM book_analyses
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*entity.AnalysisRecord{}
	for rows.Next() {
		var (
			rec        entity.AnalysisRecord
			resultJSON string
			createdAt  int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Title,
			&rec.Jenjang,
			&rec.ConfidenceScore,
			&rec.BadgeColor,
			&resultJSON,
			&createdAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// SaveOrUpdate creates or updates a record for a failed lookup.
func (s *Store) SaveOrUpdate(ctx context.Context, failed *entity.FailedLookup) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failed_lookups (query, failure_reason, attempts, last_attempt_timestamp)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT (query) DO UPDATE SET
			failure_reason = excluded.failure_reason,
			attempts = failed_lookups.attempts + 1,
			last_attempt_timestamp = excluded.last_attempt_timestamp`,
		failed.Query,
		failed.FailureReason,
		failed.LastAttemptTimestamp.UnixNano(),
	)
	return err
}

// Delete removes a failed lookup record.
func (s *Store) Delete(ctx context.Context, query string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM failed_lookups WHERE query = ?`, query)
	return err
}

// FailedLookup returns the record for query, or sql.ErrNoRows.
func (s *Store) FailedLookup(ctx context.Context, query string) (*entity.FailedLookup, error) {
	var (
		f    entity.FailedLookup
		last int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, query, failure_reason, attempts, last_attempt_timestamp FROM failed_lookups WHERE query = ?`,
		query,
	).Scan(&f.ID, &f.Query, &f.FailureReason, &f.Attempts, &last)
	if err != nil {
		return nil, err
	}
	f.LastAttemptTimestamp = time.Unix(0, last).UTC()
	return &f, nil
}
