package webui

import "time"

// HealthResponse reports liveness for the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Import    bool      `json:"import_enabled"`
}
