package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"promenu/internal/pkg/clock"
)

// Entry wraps a cached value with the moment it was fetched. Staleness never
// deletes an entry; it only means the caller should refetch and replace.
type Entry[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// KV is the persisted tier: a best-effort string key/value store that may be
// full, disabled, or absent. Nothing here assumes it survives a session.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// NopKV disables the persisted tier.
type NopKV struct{}

func (NopKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NopKV) Set(context.Context, string, string) error         { return nil }
func (NopKV) Delete(context.Context, string) error              { return nil }

// Store is a two-tier time-bounded cache: an authoritative in-memory map and
// a best-effort persisted mirror. The store is TTL-agnostic; callers decide
// freshness through IsFresh. Created once per process and passed by
// reference to whoever needs it.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]

	kv     KV
	prefix string
	clock  clock.Clock
	logger *slog.Logger
}

func NewStore[T any](kv KV, prefix string, clk clock.Clock, logger *slog.Logger) *Store[T] {
	if kv == nil {
		kv = NopKV{}
	}
	return &Store[T]{
		entries: make(map[string]Entry[T]),
		kv:      kv,
		prefix:  prefix,
		clock:   clk,
		logger:  logger,
	}
}

// Get is an in-memory lookup only. The persisted tier is consulted solely by
// Hydrate.
func (s *Store[T]) Get(key string) (Entry[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e, ok
}

// Hydrate reads the persisted tier. It is meant to run once per key, before
// the first network response, to paint a possibly stale value immediately.
// A value that fails to deserialize is deleted and reported as absent; read
// failures degrade to absent as well.
func (s *Store[T]) Hydrate(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, ok, err := s.kv.Get(ctx, s.prefix+key)
	if err != nil {
		s.logger.Warn("persisted cache read failed", "key", key, "error", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("dropping corrupt persisted cache entry", "key", key, "error", err)
		if derr := s.kv.Delete(ctx, s.prefix+key); derr != nil {
			s.logger.Warn("failed to delete corrupt persisted cache entry", "key", key, "error", derr)
		}
		return zero, false
	}
	return value, true
}

// Put stores the value in memory with the current timestamp and mirrors it to
// the persisted tier. Mirror failures (quota, unavailable store) are
// swallowed; the in-memory entry is already in place.
func (s *Store[T]) Put(ctx context.Context, key string, value T) {
	s.mu.Lock()
	s.entries[key] = Entry[T]{Value: value, FetchedAt: s.clock.Now()}
	s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to serialize cache value", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.prefix+key, string(raw)); err != nil {
		s.logger.Warn("persisted cache write failed", "key", key, "error", err)
	}
}

// Seed publishes a value to the in-memory tier without a fetch timestamp:
// readable immediately, never fresh, so the next load still refetches. Used
// for hydrated values and for locally patched post-mutation state.
func (s *Store[T]) Seed(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry[T]{Value: value}
}

// Patch applies fn to the in-memory value if present, marks the entry stale,
// and drops the persisted mirror so a later hydrate cannot resurrect the
// pre-mutation snapshot. Reports whether an entry existed.
func (s *Store[T]) Patch(ctx context.Context, key string, fn func(*T)) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		fn(&e.Value)
		e.FetchedAt = time.Time{}
		s.entries[key] = e
	}
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.prefix+key); err != nil {
		s.logger.Warn("persisted cache delete failed", "key", key, "error", err)
	}
	return ok
}

// Invalidate removes both tiers for the key.
func (s *Store[T]) Invalidate(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.prefix+key); err != nil {
		s.logger.Warn("persisted cache delete failed", "key", key, "error", err)
	}
}

// IsFresh reports whether the entry is still inside its TTL. An age exactly
// equal to the TTL is already stale.
func (s *Store[T]) IsFresh(e Entry[T], ttl time.Duration) bool {
	if e.FetchedAt.IsZero() {
		return false
	}
	return s.clock.Now().Sub(e.FetchedAt) < ttl
}
