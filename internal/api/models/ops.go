package models

// HealthStatus represents the health status of the service or one of its
// dependencies.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "UP"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusDown     HealthStatus = "DOWN"
)

// Health represents the liveness state of the process.
type Health struct {
	Status  HealthStatus   `json:"status"`
	Time    Timestamp      `json:"time"`
	Details map[string]any `json:"details,omitempty"`
}

// Readiness represents the result of a dependency round-trip.
type Readiness struct {
	Status   HealthStatus `json:"status"`
	Time     Timestamp    `json:"time"`
	Database DatabaseStatus `json:"database"`
}

// DatabaseStatus reports the outcome of a persistence ping.
type DatabaseStatus struct {
	State     string `json:"state"`
	ElapsedMS int64  `json:"elapsedMs"`
	Error     string `json:"error,omitempty"`
}
