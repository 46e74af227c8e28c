package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/availsys/asset-availability-go/shell"
)

const (
	commandOutcomeMetricName  = "availability.command.outcome"
	commandDurationMetricName = "availability.command.duration"

	attrCommandType = "command_type"
	attrOutcome     = "outcome"
)

// MetricsCollector implements shell.MetricsCollector using the OpenTelemetry
// metrics API:
//   - RecordCommandOutcome -> Counter (per command type and outcome)
//   - RecordCommandDuration -> Histogram (seconds, per command type)
type MetricsCollector struct {
	meter      metric.Meter
	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

// NewMetricsCollector creates a new OpenTelemetry metrics collector.
// It uses the provided meter to create instruments on demand as metrics are
// recorded. The meter should be created from your OpenTelemetry MeterProvider.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

// RecordCommandOutcome counts a processed command by type and outcome.
func (m *MetricsCollector) RecordCommandOutcome(ctx context.Context, commandType string, outcome string) {
	counter := m.getOrCreateCounter(commandOutcomeMetricName)
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrCommandType, commandType),
		attribute.String(attrOutcome, outcome),
	))
}

// RecordCommandDuration records a command processing duration.
// Durations are recorded in seconds per OpenTelemetry convention.
func (m *MetricsCollector) RecordCommandDuration(ctx context.Context, commandType string, duration time.Duration) {
	histogram := m.getOrCreateHistogram(commandDurationMetricName)
	if histogram == nil {
		return
	}

	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrCommandType, commandType),
	))
}

func (m *MetricsCollector) getOrCreateCounter(metricName string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, ok := m.counters[metricName]; ok {
		return counter
	}

	counter, err := m.meter.Int64Counter(metricName)
	if err != nil {
		return nil
	}

	m.counters[metricName] = counter

	return counter
}

func (m *MetricsCollector) getOrCreateHistogram(metricName string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, ok := m.histograms[metricName]; ok {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(metricName, metric.WithUnit("s"))
	if err != nil {
		return nil
	}

	m.histograms[metricName] = histogram

	return histogram
}

// Ensure MetricsCollector implements shell.MetricsCollector.
var _ shell.MetricsCollector = (*MetricsCollector)(nil)
