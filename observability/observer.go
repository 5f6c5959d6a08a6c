package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ReactiumCore/ReactiumFramework-sub005/hook"
)

// meterName is the instrumentation scope name for engine metrics.
const meterName = "github.com/ReactiumCore/ReactiumFramework-sub005"

// Compile-time interface checks.
var (
	_ hook.Observer           = (*MetricsObserver)(nil)
	_ hook.RegisterObserver   = (*MetricsObserver)(nil)
	_ hook.UnregisterObserver = (*MetricsObserver)(nil)
	_ hook.RunStartObserver   = (*MetricsObserver)(nil)
	_ hook.RunEndObserver     = (*MetricsObserver)(nil)
)

// MetricsObserver records engine lifecycle metrics. Attach it with
// hook.WithObserver to track registration churn and dispatch outcomes.
//
// Instruments:
//   - reactium.hook.registrations (Int64Counter): callback registrations,
//     with attributes: kind
//   - reactium.hook.unregistrations (Int64Counter): callback removals,
//     with attributes: kind
//   - reactium.hook.runs (Int64Counter): dispatch sequences, with
//     attributes: hook, kind, status ("ok" or "error")
//   - reactium.hook.run.duration (Float64Histogram): dispatch time in
//     seconds, with attributes: hook, kind, status
//   - reactium.hook.run.subscribers (Int64Histogram): subscriber count
//     per dispatch, with attributes: hook, kind
type MetricsObserver struct {
	registrations   metric.Int64Counter
	unregistrations metric.Int64Counter
	runs            metric.Int64Counter
	runDuration     metric.Float64Histogram
	runSubscribers  metric.Int64Histogram
}

// NewMetricsObserver creates a MetricsObserver on the global OTel
// MeterProvider. With no provider configured the instruments are noops.
func NewMetricsObserver() *MetricsObserver {
	return NewMetricsObserverWithMeter(otel.Meter(meterName))
}

// NewMetricsObserverWithMeter creates a MetricsObserver with the provided
// meter. This variant allows injecting a specific MeterProvider for
// testing.
func NewMetricsObserverWithMeter(meter metric.Meter) *MetricsObserver {
	// OTel returns noop instruments on error, so creation failures
	// degrade gracefully.
	registrations, _ := meter.Int64Counter(
		"reactium.hook.registrations",
		metric.WithDescription("Total number of hook callback registrations"),
		metric.WithUnit("{registration}"),
	)
	unregistrations, _ := meter.Int64Counter(
		"reactium.hook.unregistrations",
		metric.WithDescription("Total number of hook callback removals"),
		metric.WithUnit("{registration}"),
	)
	runs, _ := meter.Int64Counter(
		"reactium.hook.runs",
		metric.WithDescription("Total number of hook dispatch sequences"),
		metric.WithUnit("{run}"),
	)
	runDuration, _ := meter.Float64Histogram(
		"reactium.hook.run.duration",
		metric.WithDescription("Duration of hook dispatch sequences in seconds"),
		metric.WithUnit("s"),
	)
	runSubscribers, _ := meter.Int64Histogram(
		"reactium.hook.run.subscribers",
		metric.WithDescription("Subscriber count per hook dispatch"),
		metric.WithUnit("{subscriber}"),
	)

	return &MetricsObserver{
		registrations:   registrations,
		unregistrations: unregistrations,
		runs:            runs,
		runDuration:     runDuration,
		runSubscribers:  runSubscribers,
	}
}

// Name implements hook.Observer.
func (m *MetricsObserver) Name() string { return "observability-metrics" }

// OnHookRegistered implements hook.RegisterObserver.
func (m *MetricsObserver) OnHookRegistered(d hook.Declaration) error {
	m.registrations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("kind", string(d.Kind)),
	))
	return nil
}

// OnHookUnregistered implements hook.UnregisterObserver.
func (m *MetricsObserver) OnHookUnregistered(d hook.Declaration) error {
	m.unregistrations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("kind", string(d.Kind)),
	))
	return nil
}

// OnRunStart implements hook.RunStartObserver.
func (m *MetricsObserver) OnRunStart(ctx context.Context, name string, kind hook.Kind, subscribers int) error {
	m.runSubscribers.Record(ctx, int64(subscribers), metric.WithAttributes(
		attribute.String("hook", name),
		attribute.String("kind", string(kind)),
	))
	return nil
}

// OnRunEnd implements hook.RunEndObserver.
func (m *MetricsObserver) OnRunEnd(ctx context.Context, name string, kind hook.Kind, elapsed time.Duration, err error) error {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("hook", name),
		attribute.String("kind", string(kind)),
		attribute.String("status", status),
	)
	m.runs.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, elapsed.Seconds(), attrs)
	return nil
}
