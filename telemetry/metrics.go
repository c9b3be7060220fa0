package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "spec-agent"

// WorkflowMetrics records invocation and document-generation measurements.
type WorkflowMetrics struct {
	invocationsCounter metric.Int64Counter
	specRunsCounter    metric.Int64Counter
	specDuration       metric.Float64Histogram
	documentDuration   metric.Float64Histogram
}

// NewWorkflowMetrics registers the instruments on mp, usually otel.GetMeterProvider().
func NewWorkflowMetrics(mp metric.MeterProvider) (*WorkflowMetrics, error) {
	meter := mp.Meter(meterName)

	invocations, err := meter.Int64Counter(
		"spec_agent.invocations",
		metric.WithDescription("Invocations handled, by action"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, err
	}

	specRuns, err := meter.Int64Counter(
		"spec_agent.spec_runs",
		metric.WithDescription("Spec generation runs, by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	specDuration, err := meter.Float64Histogram(
		"spec_agent.spec_run.duration",
		metric.WithDescription("Duration of a full spec generation run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	documentDuration, err := meter.Float64Histogram(
		"spec_agent.document.duration",
		metric.WithDescription("Duration of a single document generation call"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &WorkflowMetrics{
		invocationsCounter: invocations,
		specRunsCounter:    specRuns,
		specDuration:       specDuration,
		documentDuration:   documentDuration,
	}, nil
}

func (m *WorkflowMetrics) RecordInvocation(ctx context.Context, action string) {
	m.invocationsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func (m *WorkflowMetrics) RecordSpecRun(ctx context.Context, success bool, d time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.specRunsCounter.Add(ctx, 1, attrs)
	m.specDuration.Record(ctx, d.Seconds(), attrs)
}

func (m *WorkflowMetrics) RecordDocument(ctx context.Context, document string, d time.Duration, err error) {
	m.documentDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("document", document),
		attribute.Bool("success", err == nil),
	))
}
