// Package cache implements the per-session identity cache: one map from id
// to the most recently fetched entity per record kind, with single-flight
// deduplication of concurrent fetches for the same key.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/notehq/notehq.go/pkg/logger"
	"github.com/notehq/notehq.go/pkg/models"
)

// FetchFunc loads one record from the transport collaborator. It is called
// at most once per key per flight, however many callers are waiting.
type FetchFunc func(ctx context.Context, kind models.Kind, id models.ID) (*models.Entity, error)

type entry struct {
	entity    *models.Entity
	fetchedAt time.Time
}

// Store is the identity cache for one session. The structural operations
// (Get, Put, Invalidate, Clear) never perform I/O; GetOrFetch suspends only
// on a miss, and the mutex is never held across a fetch.
type Store struct {
	fetch  FetchFunc
	log    logger.Logger
	maxAge time.Duration

	mu      sync.Mutex
	entries map[models.Kind]map[models.ID]entry

	group singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fetch events.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMaxAge bounds how long a cached entry satisfies GetOrFetch before a
// refetch. Zero (the default) means entries never expire; they are only
// replaced by Put or removed by Invalidate/Clear. Get ignores the age.
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

// New creates an empty Store backed by the given fetch function.
func New(fetch FetchFunc, opts ...Option) *Store {
	s := &Store{
		fetch:   fetch,
		log:     logger.Nop{},
		entries: make(map[models.Kind]map[models.ID]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached entity for (kind, id), if any. It never performs
// I/O and the returned entity is a snapshot the caller owns.
func (s *Store) Get(kind models.Kind, id models.ID) (*models.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[kind][id]
	if !ok {
		return nil, false
	}
	return e.entity.Clone(), true
}

// GetOrFetch returns the cached entity or fetches it. Concurrent callers
// for the same uncached key share one fetch and observe the same entity or
// the same error; a failed fetch caches nothing.
func (s *Store) GetOrFetch(ctx context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
	if ent, ok := s.getFresh(kind, id); ok {
		return ent, nil
	}

	key := flightKey(kind, id)
	v, err, shared := s.group.Do(key, func() (any, error) {
		// Re-check under the flight: a racing flight may have populated
		// the entry between the miss above and acquiring the flight.
		if ent, ok := s.getFresh(kind, id); ok {
			return ent, nil
		}

		ent, err := s.fetch(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		s.Put(kind, ent)
		return ent.Clone(), nil
	})
	// Drop the completed flight so a later miss starts a fresh fetch
	// instead of observing a stale result.
	s.group.Forget(key)

	if err != nil {
		s.log.Warn("fetch failed", "kind", kind, "id", id, "error", err)
		return nil, err
	}
	if shared {
		s.log.Debug("fetch deduplicated", "kind", kind, "id", id)
	}
	return v.(*models.Entity).Clone(), nil
}

// Put stores a snapshot of the entity under its own key, replacing any
// previous entry wholesale.
func (s *Store) Put(kind models.Kind, ent *models.Entity) {
	if ent == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.entries[kind]
	if !ok {
		m = make(map[models.ID]entry)
		s.entries[kind] = m
	}
	m[ent.ID] = entry{entity: ent.Clone(), fetchedAt: time.Now()}
}

// Invalidate removes the entry for (kind, id), if present.
func (s *Store) Invalidate(kind models.Kind, id models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[kind], id)
}

// Clear drops every entry of the given kind.
func (s *Store) Clear(kind models.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, kind)
}

// Len reports how many entities of the given kind are cached.
func (s *Store) Len(kind models.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries[kind])
}

func (s *Store) getFresh(kind models.Kind, id models.ID) (*models.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[kind][id]
	if !ok {
		return nil, false
	}
	if s.maxAge > 0 && time.Since(e.fetchedAt) > s.maxAge {
		return nil, false
	}
	return e.entity.Clone(), true
}

func flightKey(kind models.Kind, id models.ID) string {
	return fmt.Sprintf("%s/%s", kind, id)
}
