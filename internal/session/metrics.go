package session

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Shashankvwali/VoltGo/internal/session"

// Metrics holds the session instruments.
type Metrics struct {
	searches       metric.Int64Counter
	transitions    metric.Int64Counter
	activeSessions metric.Int64UpDownCounter
}

// NewMetrics creates session metrics on the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithMeter(otel.Meter(meterName))
}

// NewMetricsWithMeter creates session metrics on the given meter.
func NewMetricsWithMeter(meter metric.Meter) (*Metrics, error) {
	searches, err := meter.Int64Counter(
		"voltgo.search.total",
		metric.WithDescription("Number of station searches by outcome"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"voltgo.reservation.requests",
		metric.WithDescription("Reserve and cancel requests, split by whether the flag changed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	activeSessions, err := meter.Int64UpDownCounter(
		"voltgo.sessions.active",
		metric.WithDescription("Number of live sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		searches:       searches,
		transitions:    transitions,
		activeSessions: activeSessions,
	}, nil
}

func (m *Metrics) recordSearch(ctx context.Context, matched bool) {
	if m == nil {
		return
	}
	outcome := "matched"
	if !matched {
		outcome = "fallback"
	}
	m.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) recordTransition(ctx context.Context, action string, applied bool) {
	if m == nil {
		return
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("applied", applied),
	))
}

func (m *Metrics) sessionsChanged(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.activeSessions.Add(ctx, delta)
}
