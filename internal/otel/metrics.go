package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmx"

// Metrics holds all OTEL metric instruments for tmx.
// All counters are cumulative (monotonic) and safe for concurrent use.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Template lifecycle counters
	TemplatesCaptured metric.Int64Counter
	TemplatesLaunched metric.Int64Counter
	TemplatesSaved    metric.Int64Counter
	TemplatesDeleted  metric.Int64Counter

	// Multiplexer layout commands issued during launch (partitioned by kind)
	LayoutCommands metric.Int64Counter

	// Failed operations (partitioned by op: capture, launch, save, delete, load)
	Errors metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TemplatesCaptured, err = meter.Int64Counter("templates.captured",
		metric.WithDescription("Number of live sessions captured as templates"))
	if err != nil {
		return nil, err
	}

	m.TemplatesLaunched, err = meter.Int64Counter("templates.launched",
		metric.WithDescription("Number of templates fully replayed into a new session"))
	if err != nil {
		return nil, err
	}

	m.TemplatesSaved, err = meter.Int64Counter("templates.saved",
		metric.WithDescription("Number of templates written to the store"))
	if err != nil {
		return nil, err
	}

	m.TemplatesDeleted, err = meter.Int64Counter("templates.deleted",
		metric.WithDescription("Number of templates removed from the store"))
	if err != nil {
		return nil, err
	}

	m.LayoutCommands, err = meter.Int64Counter("mux.layout_commands",
		metric.WithDescription("Multiplexer layout commands issued (new_session, rename_window, new_window, split)"))
	if err != nil {
		return nil, err
	}

	m.Errors, err = meter.Int64Counter("template.errors",
		metric.WithDescription("Failed template operations partitioned by op"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCaptured records a successful capture.
func (m *Metrics) RecordCaptured(ctx context.Context) {
	if m == nil {
		return
	}
	m.TemplatesCaptured.Add(ctx, 1)
}

// RecordLaunched records a successful launch.
func (m *Metrics) RecordLaunched(ctx context.Context) {
	if m == nil {
		return
	}
	m.TemplatesLaunched.Add(ctx, 1)
}

// RecordSaved records a template write.
func (m *Metrics) RecordSaved(ctx context.Context) {
	if m == nil {
		return
	}
	m.TemplatesSaved.Add(ctx, 1)
}

// RecordDeleted records a template removal.
func (m *Metrics) RecordDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.TemplatesDeleted.Add(ctx, 1)
}

// RecordLayoutCommand records one multiplexer layout command of the given kind.
func (m *Metrics) RecordLayoutCommand(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.LayoutCommands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mux.command", kind),
	))
}

// RecordError records a failed operation.
func (m *Metrics) RecordError(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.Errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template.op", op),
	))
}
