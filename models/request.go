package models

// ScrapeRecipeRequest is the payload for POST /api/v1/scrape-recipe.
type ScrapeRecipeRequest struct {
	// URL is the recipe page to scrape. Required.
	URL string `json:"url"`
}

// BatchRequest is the payload for POST /api/v1/scrape-recipe/batch.
type BatchRequest struct {
	// URLs is the list of recipe pages to scrape. Required.
	URLs []string `json:"urls"`

	// WebhookURL, if set, receives a batch.completed event.
	WebhookURL string `json:"webhook_url,omitempty"`

	// WebhookSecret signs the webhook body with HMAC-SHA256.
	WebhookSecret string `json:"webhook_secret,omitempty"`
}
