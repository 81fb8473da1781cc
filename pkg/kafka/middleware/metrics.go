package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"marketplace/pkg/kafka"
)

// Metrics counts publish outcomes. The zero value is ready to use.
type Metrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	durationTotal atomic.Int64 // nanoseconds
}

type MetricsSnapshot struct {
	Published          int64  `json:"published"`
	Failed             int64  `json:"failed"`
	AvgPublishDuration string `json:"avg_publish_duration"`
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.failed.Store(0)
	m.durationTotal.Store(0)
}

func (m *Metrics) AvgPublishDuration() time.Duration {
	total := m.published.Load() + m.failed.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.durationTotal.Load() / total)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Published:          m.published.Load(),
		Failed:             m.failed.Load(),
		AvgPublishDuration: m.AvgPublishDuration().String(),
	}
}

// MetricsProducerMiddleware records every publish into m.
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.durationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.failed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}
