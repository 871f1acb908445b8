package response

import "time"

// ErrorResponse carries a human-readable message the client shows verbatim.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// AnalysisSummary is a DTO for one history row, mirroring entity.AnalysisRecord.
type AnalysisSummary struct {
	ID              int64     `json:"id"`
	Query           string    `json:"query"`
	Title           string    `json:"title"`
	Jenjang         string    `json:"jenjang"`
	ConfidenceScore float64   `json:"confidence_score"`
	BadgeColor      string    `json:"badge_color"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecentAnalysesResponse struct {
	Items []AnalysisSummary `json:"items"`
}
