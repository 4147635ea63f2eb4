// Package worker provides background job processing for the store locator.
package worker

import (
	"time"

	"github.com/storelocator/storelocator/internal/directions"
)

// RefreshConfig holds configuration for the distance refresh job.
type RefreshConfig struct {
	// Concurrency is the number of concurrent directions requests.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each directions request.
	// Default: 30 seconds
	Timeout time.Duration

	// Profile is the travel profile used when computing distances.
	// Default: walking
	Profile directions.Profile
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
		Profile:     directions.ProfileWalking,
	}
}

// normalized fills in zero-value fields with defaults.
func (c RefreshConfig) normalized() RefreshConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Profile == "" {
		c.Profile = directions.ProfileWalking
	}
	return c
}
