// Package worker provides background job processing for AquaGrid.
package worker

import (
	"time"
)

// DispatchConfig holds configuration for the notification dispatch job.
type DispatchConfig struct {
	// BatchSize is the maximum number of pending notifications drained
	// per run. Default: 50
	BatchSize int

	// Concurrency is the number of notifications dispatched in parallel.
	// Default: 3
	Concurrency int

	// Timeout bounds the delivery of one notification to all of its
	// subscribers. Default: 30 seconds
	Timeout time.Duration
}

// DefaultDispatchConfig returns the default dispatch configuration.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		BatchSize:   50,
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// withDefaults fills in zero-valued fields.
func (c DispatchConfig) withDefaults() DispatchConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
