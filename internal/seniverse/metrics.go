package seniverse

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/skytracker/skytracker/internal/seniverse"

// Metrics holds the instruments recorded for each vendor call.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// NewMetrics creates the vendor call instruments on the global meter.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"seniverse.request.duration",
		metric.WithDescription("Duration of Seniverse API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"seniverse.request.total",
		metric.WithDescription("Total number of Seniverse API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// record is safe to call on a nil receiver.
func (m *Metrics) record(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("seniverse.operation", operation),
		attribute.String("outcome", outcome(err)),
	}

	// the request context may already be cancelled
	ctx = context.WithoutCancel(ctx)
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "failed"
}
