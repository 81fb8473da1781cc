package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "marketplace/pkg/errors"
	httputil "marketplace/pkg/http"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
	CodeIdempotencyKeyReused = "IDEMPOTENCY_KEY_REUSED"
	idempotencyCleanupPeriod = 10 * time.Minute
	maxIdempotencyKeyLength  = 255
)

// ErrIdempotencyKeyReused is returned by Begin when a key is presented
// again with a different request body.
var ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")

type IdempotencyStore interface {
	// Begin claims key for the request identified by fingerprint. It returns
	// the stored response when the key has completed, a channel to wait on
	// while another request holds it, or neither when the caller now owns
	// the key and must Complete or Release it.
	Begin(key, fingerprint string) (*CachedResponse, <-chan struct{}, error)
	Complete(key string, response *CachedResponse)
	Release(key string)
	Stop()
}

type CachedResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	CreatedAt  time.Time
}

type idempotencyEntry struct {
	fingerprint string
	response    *CachedResponse
	done        chan struct{}
}

type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		entries: make(map[string]*idempotencyEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go store.cleanup()

	return store
}

func (s *InMemoryIdempotencyStore) Begin(key, fingerprint string) (*CachedResponse, <-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[key]
	if exists && entry.response != nil && s.expired(entry.response) {
		delete(s.entries, key)
		exists = false
	}

	if !exists {
		s.entries[key] = &idempotencyEntry{fingerprint: fingerprint, done: make(chan struct{})}
		return nil, nil, nil
	}
	if entry.fingerprint != fingerprint {
		return nil, nil, ErrIdempotencyKeyReused
	}
	if entry.response == nil {
		return nil, entry.done, nil
	}
	return entry.response, nil, nil
}

func (s *InMemoryIdempotencyStore) Complete(key string, response *CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.response != nil {
		return
	}
	response.CreatedAt = time.Now()
	entry.response = response
	close(entry.done)
}

// Release forgets an in-flight key so a later retry runs the request again.
func (s *InMemoryIdempotencyStore) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.response != nil {
		return
	}
	delete(s.entries, key)
	close(entry.done)
}

func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *InMemoryIdempotencyStore) expired(response *CachedResponse) bool {
	return time.Since(response.CreatedAt) > s.ttl
}

func (s *InMemoryIdempotencyStore) cleanup() {
	ticker := time.NewTicker(idempotencyCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if entry.response != nil && s.expired(entry.response) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rc *responseCapture) WriteHeader(statusCode int) {
	rc.statusCode = statusCode
	rc.ResponseWriter.WriteHeader(statusCode)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a successful write request
// when the same caller sends the same Idempotency-Key to the same route
// again, so a retried booking creation does not create a second booking.
// Concurrent retries wait for the first one to finish. Reusing a key with a
// different body is rejected with 422. Paths under exempt prefixes are
// never replayed.
func Idempotency(store IdempotencyStore, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := idempotencyKey(r, exempt)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeIdempotencyError(w, readBodyError(err))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			cached, err := acquire(r.Context(), store, key, fingerprint(body))
			if err != nil {
				writeIdempotencyError(w, err)
				return
			}
			if cached != nil {
				replayCachedResponse(w, cached)
				return
			}

			completed := false
			defer func() {
				if !completed {
					store.Release(key)
				}
			}()

			capture := &responseCapture{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			next.ServeHTTP(capture, r)

			if capture.statusCode >= 200 && capture.statusCode < 300 {
				store.Complete(key, &CachedResponse{
					StatusCode: capture.statusCode,
					Headers:    w.Header().Clone(),
					Body:       capture.body.Bytes(),
				})
				completed = true
			}
		})
	}
}

// acquire returns the stored response for key, or nil once the caller owns
// it. While another request holds the key it waits for that request.
func acquire(ctx context.Context, store IdempotencyStore, key, fingerprint string) (*CachedResponse, error) {
	for {
		cached, wait, err := store.Begin(key, fingerprint)
		if errors.Is(err, ErrIdempotencyKeyReused) {
			return nil, apperrors.New(CodeIdempotencyKeyReused,
				"Idempotency-Key was already used for a different request", http.StatusUnprocessableEntity)
		}
		if err != nil {
			return nil, apperrors.Internal("Idempotency check failed", err)
		}
		if wait == nil {
			return cached, nil
		}

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, apperrors.Conflict("A request with this Idempotency-Key is still in progress")
		}
	}
}

// idempotencyKey scopes the client key to method, path and the caller's
// credentials. Reads and exempt paths are never cached.
func idempotencyKey(r *http.Request, exempt []string) string {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return ""
	}
	for _, prefix := range exempt {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return ""
		}
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	if key == "" || len(key) > maxIdempotencyKeyLength {
		return ""
	}
	caller := fingerprint([]byte(r.Header.Get("Authorization")))
	return r.Method + " " + r.URL.Path + " " + caller + " " + key
}

func fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func readBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.InvalidInput(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	}
	return apperrors.InvalidInput("Failed to read request body")
}

func writeIdempotencyError(w http.ResponseWriter, err error) {
	_ = httputil.WriteError(w, err)
}

func replayCachedResponse(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		if key == http.CanonicalHeaderKey(RequestIDHeader) {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set(IdempotentReplayedHeader, "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
