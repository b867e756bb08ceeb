// Package cache memoizes extracted metadata per canonical link for the lifetime of the process.
package cache

import (
	"context"
	"sync"

	"github.com/anisan-cli/anicat/log"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Loader produces the value for a key on a cache miss.
type Loader[V any] func(ctx context.Context, key string) (V, error)

// Store is a concurrent memo table. Concurrent misses for one key share a single load.
// Entries are never evicted.
type Store[V any] struct {
	name  string
	load  Loader[V]
	empty func(V) bool

	mu    sync.RWMutex
	items map[string]V
	group singleflight.Group
}

// NewStore returns an empty store. empty reports values that should be reloaded once when read.
func NewStore[V any](name string, load Loader[V], empty func(V) bool) *Store[V] {
	return &Store[V]{
		name:  name,
		load:  load,
		empty: empty,
		items: make(map[string]V),
	}
}

// Get returns the value for key, loading it on a miss.
// An empty value, fresh or cached, is dropped and loaded exactly once more; the second result is returned as is.
func (s *Store[V]) Get(ctx context.Context, key string) V {
	v := s.getOrLoad(ctx, key)
	if !s.empty(v) {
		return v
	}

	log.WithFields(logrus.Fields{"store": s.name, "key": key}).Debug("empty entry, reloading")
	s.Invalidate(key)
	return s.getOrLoad(ctx, key)
}

func (s *Store[V]) lookup(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok
}

func (s *Store[V]) getOrLoad(ctx context.Context, key string) V {
	if v, ok := s.lookup(key); ok {
		return v
	}

	res, err, _ := s.group.Do(key, func() (any, error) {
		// a flight that finished between lookup and Do has already stored the value
		if v, ok := s.lookup(key); ok {
			return v, nil
		}

		v, err := s.load(ctx, key)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.items[key] = v
		s.mu.Unlock()
		return v, nil
	})

	if err != nil {
		log.WithFields(logrus.Fields{"store": s.name, "key": key}).Warnf("load failed: %v", err)
		var zero V
		return zero
	}

	return res.(V)
}

// Invalidate drops the entry for key.
func (s *Store[V]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
}

// Len returns the number of stored entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
