package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/hooklog"
)

// sampleSize bounds how many recent log records feed the counters
const sampleSize = 1000

/* StoreCollector implements the Collector interface over the channel
 * registry and the ingestion log. Outcome and format counts cover a
 * bounded window of the most recent records, not all history.
 */
type StoreCollector struct {
	channels channel.Reader
	log      hooklog.Reader
}

// NewStoreCollector creates a collector over the relay's stores
func NewStoreCollector(channels channel.Reader, log hooklog.Reader) *StoreCollector {
	return &StoreCollector{
		channels: channels,
		log:      log,
	}
}

// Collect gathers all metrics
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	channels, err := c.GetChannelCount(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting channel count: %w", err)
	}

	outcomes, err := c.GetOutcomeCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting outcome counts: %w", err)
	}

	formats, err := c.GetFormatCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting format counts: %w", err)
	}

	return Metrics{
		Channels:      channels,
		OutcomeCounts: outcomes,
		FormatCounts:  formats,
		Timestamp:     time.Now(),
	}, nil
}

// GetChannelCount returns the number of registered channels
func (c *StoreCollector) GetChannelCount(ctx context.Context) (int64, error) {
	all, err := c.channels.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing channels: %w", err)
	}
	return int64(len(all)), nil
}

// GetOutcomeCounts returns delivery counts by outcome
func (c *StoreCollector) GetOutcomeCounts(ctx context.Context) (map[string]int64, error) {
	records, err := c.log.Recent(ctx, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("reading recent records: %w", err)
	}

	counts := make(map[string]int64)
	for _, rec := range records {
		counts[rec.Outcome.String()]++
	}
	return counts, nil
}

// GetFormatCounts returns delivery counts by detected format
func (c *StoreCollector) GetFormatCounts(ctx context.Context) (map[string]int64, error) {
	records, err := c.log.Recent(ctx, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("reading recent records: %w", err)
	}

	counts := make(map[string]int64)
	for _, rec := range records {
		counts[rec.Format.String()]++
	}
	return counts, nil
}
