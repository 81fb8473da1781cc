package events

import (
	"context"
	"errors"
	"testing"

	"marketplace/pkg/kafka"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

type recordingPublisher struct {
	messages []kafka.Message
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestEmitter_Emit(t *testing.T) {
	pub := &recordingPublisher{}
	e := NewEmitter(pub, "marketplace", logger.Discard())

	ctx := WithCorrelationID(context.Background(), "req-42")
	e.Emit(ctx, BookingCreated, "booking-1", &model.Booking{ID: "booking-1", Status: model.StatusPending})

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Key != "booking-1" {
		t.Errorf("key = %s", msg.Key)
	}
	if msg.GetEventType() != BookingCreated {
		t.Errorf("event type = %s", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("correlation id = %s", msg.GetCorrelationID())
	}
	if msg.Headers[kafka.HeaderSource] != "marketplace" {
		t.Errorf("source = %s", msg.Headers[kafka.HeaderSource])
	}

	var b model.Booking
	if err := msg.DecodeValue(&b); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if b.Status != model.StatusPending {
		t.Errorf("payload status = %s", b.Status)
	}
}

func TestEmitter_PublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	e := NewEmitter(pub, "marketplace", logger.Discard())

	e.Emit(context.Background(), PaymentRecorded, "booking-1", &model.Payment{ID: "p"})

	if len(pub.messages) != 1 {
		t.Errorf("publish attempted %d times, want 1", len(pub.messages))
	}
}

func TestNop(t *testing.T) {
	Nop().Emit(context.Background(), ReviewCreated, "booking-1", &model.Review{})
}
