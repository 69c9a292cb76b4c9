package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter             metric.Meter
	channelCountGauge metric.Int64ObservableGauge
	outcomeCountGauge metric.Int64ObservableGauge
	formatCountGauge  metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"webhook-relay",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	// Registered channel count gauge
	oe.channelCountGauge, err = oe.meter.Int64ObservableGauge(
		"relay.channels.count",
		metric.WithDescription("Number of registered webhook channels"),
		metric.WithUnit("{channels}"),
		metric.WithInt64Callback(oe.observeChannelCount),
	)
	if err != nil {
		return fmt.Errorf("creating channel count gauge: %w", err)
	}

	// Delivery outcome gauge (per outcome)
	oe.outcomeCountGauge, err = oe.meter.Int64ObservableGauge(
		"relay.deliveries.outcome",
		metric.WithDescription("Recent deliveries by outcome"),
		metric.WithUnit("{deliveries}"),
		metric.WithInt64Callback(oe.observeOutcomeCounts),
	)
	if err != nil {
		return fmt.Errorf("creating outcome count gauge: %w", err)
	}

	// Detected format gauge (per format)
	oe.formatCountGauge, err = oe.meter.Int64ObservableGauge(
		"relay.deliveries.format",
		metric.WithDescription("Recent deliveries by detected payload format"),
		metric.WithUnit("{deliveries}"),
		metric.WithInt64Callback(oe.observeFormatCounts),
	)
	if err != nil {
		return fmt.Errorf("creating format count gauge: %w", err)
	}

	return nil
}

// observeChannelCount is a callback that reports the registry size
func (oe *OTelExporter) observeChannelCount(ctx context.Context, observer metric.Int64Observer) error {
	count, err := oe.collector.GetChannelCount(ctx)
	if err != nil {
		return err
	}

	observer.Observe(count)
	return nil
}

// observeOutcomeCounts is a callback that reports deliveries by outcome
func (oe *OTelExporter) observeOutcomeCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetOutcomeCounts(ctx)
	if err != nil {
		return err
	}

	for outcome, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("delivery.outcome", outcome),
		))
	}

	return nil
}

// observeFormatCounts is a callback that reports deliveries by format
func (oe *OTelExporter) observeFormatCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetFormatCounts(ctx)
	if err != nil {
		return err
	}

	for format, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("payload.format", format),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
