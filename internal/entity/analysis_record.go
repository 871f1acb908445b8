package entity

import "time"

// AnalysisRecord mirrors the `book_analyses` table schema.
type AnalysisRecord struct {
	ID              int64      `json:"id"`
	Query           string     `json:"query"`
	Title           string     `json:"title"`
	Jenjang         string     `json:"jenjang"`
	ConfidenceScore float64    `json:"confidence_score"`
	BadgeColor      string     `json:"badge_color"`
	Result          BookResult `json:"-"` // Stored as JSON
	CreatedAt       time.Time  `json:"created_at"`
}

// NewAnalysisRecord flattens a result into a history row.
func NewAnalysisRecord(query string, result *BookResult, at time.Time) *AnalysisRecord {
	return &AnalysisRecord{
		Query:           query,
		Title:           result.Title,
		Jenjang:         result.Analysis.Jenjang,
		ConfidenceScore: result.Analysis.ConfidenceScore,
		BadgeColor:      result.Analysis.BadgeColor,
		Result:          *result,
		CreatedAt:       at,
	}
}
