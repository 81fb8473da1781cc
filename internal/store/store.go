// Package store is the in-memory data layer standing in for a backend. It
// owns every collection, simulates network latency and can inject failures.
package store

import (
	"context"
	"fmt"
	"marketplace/pkg/logger"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// FailureHook is consulted before every operation; a non-nil error aborts
// the operation and is returned wrapped in ErrUnavailable.
type FailureHook func(op string) error

type Options struct {
	Latency     time.Duration
	FailureRate float64
	FailureHook FailureHook
	// Seed builds the initial collections. Defaults to DefaultSeed.
	Seed func() *Dataset
	Now  func() time.Time
	Log  *logger.Logger
}

type Store struct {
	mu   sync.RWMutex
	data *Dataset

	latency     time.Duration
	failureRate float64
	failureHook FailureHook
	seed        func() *Dataset
	now         func() time.Time
	log         *logger.Logger

	hooksMu    sync.Mutex
	resetHooks []func()
}

func New(opts Options) *Store {
	if opts.Seed == nil {
		opts.Seed = DefaultSeed
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}

	s := &Store{
		latency:     opts.Latency,
		failureRate: opts.FailureRate,
		failureHook: opts.FailureHook,
		seed:        opts.Seed,
		now:         opts.Now,
		log:         opts.Log,
	}
	s.data = s.seed().clone()
	return s
}

// Reset discards every change and restores the seed collections.
func (s *Store) Reset() {
	fresh := s.seed().clone()

	s.mu.Lock()
	s.data = fresh
	s.mu.Unlock()

	s.hooksMu.Lock()
	hooks := slices.Clone(s.resetHooks)
	s.hooksMu.Unlock()
	for _, hook := range hooks {
		hook()
	}

	s.log.Info("Data store reset to seed",
		"users", len(fresh.Users),
		"services", len(fresh.Services),
		"bookings", len(fresh.Bookings),
	)
}

// OnReset registers fn to run after every Reset, for state derived from
// the records (such as open sessions).
func (s *Store) OnReset(fn func()) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.resetHooks = append(s.resetHooks, fn)
}

// Counts reports the size of each collection.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"users":    len(s.data.Users),
		"services": len(s.data.Services),
		"bookings": len(s.data.Bookings),
		"reviews":  len(s.data.Reviews),
		"payments": len(s.data.Payments),
	}
}

// ExecuteTransaction runs fn under the write lock. Every collection is
// snapshotted first and restored if fn returns an error or panics.
func (s *Store) ExecuteTransaction(ctx context.Context, fn TransactionFunc) (err error) {
	if err := s.simulate(ctx, "transaction"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if r := recover(); r != nil {
			s.data = snapshot
			panic(r)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(&Tx{data: s.data, now: s.now})
}

// Ping makes a round trip to the data store without touching any record.
func (s *Store) Ping(ctx context.Context) error {
	return s.simulate(ctx, "ping")
}

// view runs fn under the read lock after the simulated round trip.
func (s *Store) view(ctx context.Context, op string, fn func(tx *Tx) error) error {
	if err := s.simulate(ctx, op); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{data: s.data, now: s.now, readOnly: true})
}

func (s *Store) simulate(ctx context.Context, op string) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.failureHook != nil {
		if err := s.failureHook(op); err != nil {
			s.log.Warn("Injected data store failure", "operation", op, "error", err)
			return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
		}
	}
	if s.failureRate > 0 && rand.Float64() < s.failureRate {
		s.log.Warn("Injected random data store failure", "operation", op, "failure_rate", s.failureRate)
		return fmt.Errorf("%w: %s: injected failure", ErrUnavailable, op)
	}
	return nil
}
