package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "seatwise"

// Metrics holds the booking lifecycle metric instruments.
type Metrics struct {
	BookingsConfirmed  metric.Int64Counter
	BookingsWaitlisted metric.Int64Counter
	BookingsCanceled   metric.Int64Counter
	BookingsPromoted   metric.Int64Counter
	AdmissionDuration  metric.Float64Histogram

	// SideEffectFailures counts post-commit side effects (log, notification,
	// publish) that failed. The mutation itself has already committed, so
	// this counter is the only operator-visible signal.
	SideEffectFailures metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.BookingsConfirmed, err = meter.Int64Counter("seatwise.bookings.confirmed",
		metric.WithDescription("Bookings admitted as confirmed"))
	if err != nil {
		return nil, err
	}

	m.BookingsWaitlisted, err = meter.Int64Counter("seatwise.bookings.waitlisted",
		metric.WithDescription("Bookings admitted onto the waitlist"))
	if err != nil {
		return nil, err
	}

	m.BookingsCanceled, err = meter.Int64Counter("seatwise.bookings.canceled",
		metric.WithDescription("Bookings canceled"))
	if err != nil {
		return nil, err
	}

	m.BookingsPromoted, err = meter.Int64Counter("seatwise.bookings.promoted",
		metric.WithDescription("Waitlisted bookings promoted to confirmed"))
	if err != nil {
		return nil, err
	}

	m.AdmissionDuration, err = meter.Float64Histogram("seatwise.admission.duration_seconds",
		metric.WithDescription("Admission transaction duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.SideEffectFailures, err = meter.Int64Counter("seatwise.sideeffects.failures",
		metric.WithDescription("Post-commit side effects that failed"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
