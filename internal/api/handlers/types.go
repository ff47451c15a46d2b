package handlers

import "time"

// Health status values.
const (
	HealthStatusOk       = "ok"
	HealthStatusDegraded = "degraded"
)

// Health is the liveness/readiness response body.
type Health struct {
	Status  string                 `json:"status"`
	Checks  map[string]string      `json:"checks,omitempty"`
	Workers map[string]interface{} `json:"workers,omitempty"`
}

// AnnouncementResult reports how many users an announcement reached.
type AnnouncementResult struct {
	Count int `json:"count"`
}

// SweepAccepted acknowledges a manual sweep trigger.
type SweepAccepted struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// LogLevel is the body of the log level endpoints.
type LogLevel struct {
	Level string `json:"level" binding:"required"`
}

// Notification is the API view of an inbox entry.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	ActionLink string    `json:"action_link,omitempty"`
	RelatedID  string    `json:"related_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationList wraps a user's inbox.
type NotificationList struct {
	Items []Notification `json:"items"`
}
