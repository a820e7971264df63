package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/goalserve-heatmap/internal/platform/resilience"
)

// TTLPolicy decides how long the value stored under key stays fresh.
// Zero or a negative duration keeps the entry until the process exits.
type TTLPolicy func(key string) time.Duration

// FixedTTL applies the same TTL to every key.
func FixedTTL(ttl time.Duration) TTLPolicy {
	return func(string) time.Duration { return ttl }
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process keyed cache. Loads for the same key are collapsed and
// failed loads are never stored.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     TTLPolicy
	flight  resilience.SingleFlight[V]
	now     func() time.Time
}

func NewStore[V any](ttl TTLPolicy) *Store[V] {
	if ttl == nil {
		ttl = FixedTTL(0)
	}
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl := s.ttl(key); ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included until they are read.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}
