package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the relay.
type Metrics struct {
	// Channels is the number of registered channels
	Channels int64 `json:"channels"`

	// OutcomeCounts maps delivery outcome to count over the recent window
	OutcomeCounts map[string]int64 `json:"outcome_counts"`

	// FormatCounts maps detected payload format to count over the recent window
	FormatCounts map[string]int64 `json:"format_counts"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the relay.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetChannelCount returns the number of registered channels
	GetChannelCount(ctx context.Context) (int64, error)

	// GetOutcomeCounts returns delivery counts by outcome
	GetOutcomeCounts(ctx context.Context) (map[string]int64, error)

	// GetFormatCounts returns delivery counts by detected format
	GetFormatCounts(ctx context.Context) (map[string]int64, error)
}
