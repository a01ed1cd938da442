package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "window-namer"

// Metrics holds the metric instruments for rename passes. All counters
// are cumulative and safe for concurrent use; every method tolerates a
// nil receiver so callers can wire metrics unconditionally.
type Metrics struct {
	// WindowsNamed counts computed window names, partitioned by category.
	WindowsNamed metric.Int64Counter
	// WindowsApplied counts names actually written to tmux.
	WindowsApplied metric.Int64Counter
	// WindowsSkipped counts windows excluded from renaming (disabled).
	WindowsSkipped metric.Int64Counter
	// RulesSkipped counts substitution rules dropped for failing to compile.
	RulesSkipped metric.Int64Counter
	// ClassifyFallbacks counts panes whose command line was unusable and
	// fell back to the shell classification.
	ClassifyFallbacks metric.Int64Counter
	// PassDuration records wall-clock rename pass duration.
	PassDuration metric.Float64Histogram
}

// NewMetrics creates all instruments. They are no-ops when no
// MeterProvider is registered, so this is safe to call unconditionally.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.WindowsNamed, err = meter.Int64Counter("windows.named",
		metric.WithDescription("Window names computed, partitioned by pane category"))
	if err != nil {
		return nil, err
	}

	m.WindowsApplied, err = meter.Int64Counter("windows.applied",
		metric.WithDescription("Window names applied via rename-window"))
	if err != nil {
		return nil, err
	}

	m.WindowsSkipped, err = meter.Int64Counter("windows.skipped",
		metric.WithDescription("Windows excluded from renaming by the per-window enabled option"))
	if err != nil {
		return nil, err
	}

	m.RulesSkipped, err = meter.Int64Counter("substitution_rules.skipped",
		metric.WithDescription("Configured substitution rules skipped because they failed to compile"))
	if err != nil {
		return nil, err
	}

	m.ClassifyFallbacks, err = meter.Int64Counter("classify.fallbacks",
		metric.WithDescription("Panes with unusable command lines classified as shells"))
	if err != nil {
		return nil, err
	}

	m.PassDuration, err = meter.Float64Histogram("rename_pass.duration",
		metric.WithDescription("Rename pass wall-clock duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordWindowNamed records one computed window name.
func (m *Metrics) RecordWindowNamed(ctx context.Context, category string) {
	if m == nil {
		return
	}
	m.WindowsNamed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pane.category", category),
	))
}

// RecordWindowApplied records one applied rename.
func (m *Metrics) RecordWindowApplied(ctx context.Context) {
	if m == nil {
		return
	}
	m.WindowsApplied.Add(ctx, 1)
}

// RecordWindowSkipped records a window left alone.
func (m *Metrics) RecordWindowSkipped(ctx context.Context) {
	if m == nil {
		return
	}
	m.WindowsSkipped.Add(ctx, 1)
}

// RecordRuleSkipped records a substitution rule dropped at compile time.
func (m *Metrics) RecordRuleSkipped(ctx context.Context) {
	if m == nil {
		return
	}
	m.RulesSkipped.Add(ctx, 1)
}

// RecordClassifyFallback records a pane that fell back to shell naming.
func (m *Metrics) RecordClassifyFallback(ctx context.Context) {
	if m == nil {
		return
	}
	m.ClassifyFallbacks.Add(ctx, 1)
}

// RecordPassDuration records the duration of a completed rename pass.
func (m *Metrics) RecordPassDuration(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.PassDuration.Record(ctx, d.Seconds())
}
