package models

import "time"

// Batch job statuses.
const (
	BatchProcessing = "processing"
	BatchCompleted  = "completed"
	BatchPartial    = "partial"
	BatchFailed     = "failed"
)

// BatchResponse is the immediate response for POST /api/v1/scrape-recipe/batch.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchItem is the outcome of one URL in a batch.
type BatchItem struct {
	URL    string         `json:"url"`
	Recipe *ScrapedRecipe `json:"recipe,omitempty"`
	Error  *ErrorDetail   `json:"error,omitempty"`
}

// BatchStatusResponse is the response for GET /api/v1/scrape-recipe/batch/:id.
type BatchStatusResponse struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
	Results   []BatchItem `json:"results"`
	CreatedAt time.Time   `json:"created_at"`
}
