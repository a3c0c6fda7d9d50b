package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "seatwise"

// StartAdmissionSpan starts a span for a booking admission.
func StartAdmissionSpan(ctx context.Context, tenantID, eventID, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "booking.admit",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("event.id", eventID),
			attribute.String("user.id", userID),
		),
	)
}

// StartPromotionSpan starts a span for a waitlist promotion attempt.
func StartPromotionSpan(ctx context.Context, tenantID, eventID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "booking.promote",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("event.id", eventID),
		),
	)
}

// StartCancelSpan starts a span for a booking cancellation.
func StartCancelSpan(ctx context.Context, tenantID, bookingID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "booking.cancel",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("booking.id", bookingID),
		),
	)
}
