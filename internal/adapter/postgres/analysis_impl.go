package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/book-classifier/internal/entity"
)

// AnalysisRepoImpl provides a concrete implementation for the AnalysisRepository interface using PostgreSQL.
type AnalysisRepoImpl struct {
	db *pgxpool.Pool
}

// NewAnalysisRepo creates a new instance of AnalysisRepoImpl.
func NewAnalysisRepo(db *pgxpool.Pool) *AnalysisRepoImpl {
	return &AnalysisRepoImpl{db: db}
}

// Save inserts a history row and fills in its generated id.
func (r *AnalysisRepoImpl) Save(ctx context.Context, record *entity.AnalysisRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO book_analyses (query, title, jenjang, confidence_score, badge_color, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	return r.db.QueryRow(ctx, query,
		record.Query,
		record.Title,
		record.Jenjang,
		record.ConfidenceScore,
		record.BadgeColor,
		resultJSON,
		record.CreatedAt,
	).Scan(&record.ID)
}

// Recent retrieves the newest history rows.
func (r *AnalysisRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	query := `
		SELECT id, query, title, jenjang, confidence_score, badge_color, result, created_at
		FROM book_analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*entity.AnalysisRecord{}
	for rows.Next() {
		var rec entity.AnalysisRecord
		var resultJSON []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Title,
			&rec.Jenjang,
			&rec.ConfidenceScore,
			&rec.BadgeColor,
			&resultJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (r *AnalysisRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
