package models

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status     string `json:"status"` // always "healthy" while serving
	Uptime     string `json:"uptime"`
	ActiveJobs int    `json:"active_jobs"`
	Version    string `json:"version"`
}
