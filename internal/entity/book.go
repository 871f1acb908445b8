package entity

// AIAnalysis is the classifier's verdict for one book.
type AIAnalysis struct {
	Jenjang         string  `json:"jenjang"`
	ConfidenceScore float64 `json:"confidence_score"`
	Alasan          string  `json:"alasan"`
	Saran           string  `json:"saran"`
	BadgeColor      string  `json:"badge_color"` // MERAH, UNGU, BIRU, HIJAU, KUNING; ABU when unidentified
}

// BookResult is the body of a successful /api/analyze response.
type BookResult struct {
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	PageCount   *int       `json:"page_count"`
	Categories  []string   `json:"categories"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Screenshots []string   `json:"screenshots"` // base64 PNG, no data: prefix
	Analysis    AIAnalysis `json:"analysis"`
}

// BookMetadata is what the metadata lookup knows about a title.
type BookMetadata struct {
	VolumeID    string
	Title       string
	Authors     []string
	PageCount   *int
	Categories  []string
	PreviewLink string
	Thumbnail   string
}

// Preview holds what was captured from a book's preview page.
type Preview struct {
	Screenshots []string
	CoverURL    string
}
