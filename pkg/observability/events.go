package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventMetrics counts domain events handled by the workers.
type EventMetrics struct {
	handled metric.Int64Counter
}

// NewEventMetrics builds the counters on the global meter provider.
func NewEventMetrics() (*EventMetrics, error) {
	meter := otel.Meter(instrumentationName)
	handled, err := meter.Int64Counter(
		"dentclinic_events_handled_total",
		metric.WithDescription("Domain events processed by workers"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}
	return &EventMetrics{handled: handled}, nil
}

// Handled records one processed event of kind. A nil receiver is a no-op.
func (m *EventMetrics) Handled(ctx context.Context, kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.handled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event.kind", kind),
		attribute.String("outcome", outcome),
	))
}
