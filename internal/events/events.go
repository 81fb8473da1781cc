// Package events publishes marketplace lifecycle events. Publishing is best
// effort: failures are logged and never reach the caller.
package events

import (
	"context"

	"marketplace/pkg/kafka"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingRescheduled   = "booking.rescheduled"
	ReviewCreated        = "review.created"
	PaymentRecorded      = "payment.recorded"
)

type BookingStatusChange struct {
	Booking        *model.Booking `json:"booking"`
	PreviousStatus string         `json:"previous_status"`
}

type BookingReschedule struct {
	Booking      *model.Booking `json:"booking"`
	PreviousDate string         `json:"previous_date"`
	PreviousTime string         `json:"previous_time"`
}

type Emitter struct {
	publisher kafka.Publisher
	source    string
	log       *logger.Logger
}

func NewEmitter(publisher kafka.Publisher, source string, log *logger.Logger) *Emitter {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &Emitter{publisher: publisher, source: source, log: log}
}

// Nop returns an emitter that drops every event.
func Nop() *Emitter {
	return NewEmitter(kafka.NopPublisher{}, "", logger.Discard())
}

// Emit publishes payload under eventType, keyed by key.
func (e *Emitter) Emit(ctx context.Context, eventType, key string, payload any) {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(e.source).
		WithCorrelationID(CorrelationID(ctx)).
		Build()
	if err != nil {
		e.log.Error("Failed to build event", "event_type", eventType, "key", key, "error", err)
		return
	}

	// The request may already be finishing; the publish gets its own deadline
	// from the producer.
	if err := e.publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		e.log.Warn("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}

type correlationKey struct{}

// WithCorrelationID attaches a request id that Emit copies into the
// correlation-id header.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
