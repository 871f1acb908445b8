package request

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Title string `json:"title"`
}
