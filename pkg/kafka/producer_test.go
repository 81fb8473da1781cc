package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(writer, dlq *fakeWriter) *Producer {
	p := &Producer{writer: writer, topic: "marketplace.events", writeTimeout: time.Second}
	if dlq != nil {
		p.dlqWriter = dlq
		p.dlqTopic = "marketplace.events.dlq"
	}
	return p
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"status": "Accepted"}).
		WithEventType("booking.status_changed").
		WithSource("marketplace").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return msg
}

func TestMessageBuilder_Defaults(t *testing.T) {
	msg := buildMessage(t)

	if msg.GetEventID() == "" {
		t.Error("event id should be generated")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("timestamp header should be set")
	}
	if msg.GetEventType() != "booking.status_changed" {
		t.Errorf("event type = %s", msg.GetEventType())
	}

	var payload map[string]string
	if err := msg.DecodeValue(&payload); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if payload["status"] != "Accepted" {
		t.Errorf("payload = %v", payload)
	}
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Error("expected encoding error")
	}
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	var order []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "outer")
		return next(ctx, msg)
	})
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "inner:"+msg.Topic)
		return next(ctx, msg)
	})

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("wrote %d messages, want 1", len(writer.messages))
	}
	if string(writer.messages[0].Key) != "booking-1" {
		t.Errorf("key = %s", writer.messages[0].Key)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner:marketplace.events" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newTestProducer(&fakeWriter{}, nil)

	if err := p.Publish(context.Background(), Message{Value: []byte("{}")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("error = %v, want ErrEmptyKey", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("error = %v, want ErrEmptyValue", err)
	}
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("broker down")
	dlq := &fakeWriter{}
	p := newTestProducer(&fakeWriter{err: writeErr}, dlq)

	err := p.Publish(context.Background(), buildMessage(t))
	if !errors.Is(err, writeErr) {
		t.Fatalf("error = %v, want %v", err, writeErr)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("dlq received %d messages, want 1", len(dlq.messages))
	}

	var original string
	for _, h := range dlq.messages[0].Headers {
		if h.Key == HeaderOriginalTopic {
			original = string(h.Value)
		}
	}
	if original != "marketplace.events" {
		t.Errorf("original-topic header = %q", original)
	}
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !writer.closed {
		t.Error("writer not closed")
	}
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("error = %v, want ErrProducerClosed", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
