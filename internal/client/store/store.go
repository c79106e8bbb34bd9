// Package store holds the most recent successful load of one remote
// collection. A load is always a full replace; a failed load keeps the
// previous state so the console keeps showing a stale but consistent view.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/logging"
)

// ErrNotKeyed is returned by record patching on a store built without an
// identity function.
var ErrNotKeyed = errors.New("store has no record identity")

// Loader fetches the complete collection from the remote service.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Keyed records carry a server-assigned identity.
type Keyed interface {
	Key() int64
}

type Store[T any] struct {
	name   string
	load   Loader[T]
	key    func(T) int64
	logger logging.Logger

	mu      sync.RWMutex
	records []T
	loaded  bool
}

// New returns a store for a collection whose records cannot be patched
// individually (server-side rollups).
func New[T any](name string, load Loader[T], logger logging.Logger) *Store[T] {
	return &Store[T]{name: name, load: load, logger: logger}
}

// NewKeyed returns a store whose records can be upserted and removed by
// identity.
func NewKeyed[T Keyed](name string, load Loader[T], logger logging.Logger) *Store[T] {
	s := New(name, load, logger)
	s.key = func(r T) int64 { return r.Key() }
	return s
}

// Load replaces the held collection with a fresh fetch. On failure the
// prior state is untouched and the error, wrapped with client.ErrFetch, is
// logged and returned.
func (s *Store[T]) Load(ctx context.Context) error {
	records, err := s.load(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrFetch) {
			err = fmt.Errorf("%w: %w", client.ErrFetch, err)
		}
		s.logger.Error(ctx, "error fetching records", "collection", s.name, "error", err)
		return err
	}

	s.mu.Lock()
	s.records = records
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Records returns a copy of the held collection in server order.
func (s *Store[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Loaded reports whether at least one load has succeeded.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Find returns the record with the given identity.
func (s *Store[T]) Find(id int64) (T, bool) {
	var zero T
	if s.key == nil {
		return zero, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if s.key(r) == id {
			return r, true
		}
	}
	return zero, false
}

// Upsert replaces the record with the same identity, or appends it.
func (s *Store[T]) Upsert(rec T) error {
	if s.key == nil {
		return ErrNotKeyed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.key(rec)
	if i := slices.IndexFunc(s.records, func(r T) bool { return s.key(r) == id }); i >= 0 {
		s.records[i] = rec
		return nil
	}
	s.records = append(s.records, rec)
	return nil
}

// Remove drops the record with the given identity. It reports whether a
// record was removed.
func (s *Store[T]) Remove(id int64) (bool, error) {
	if s.key == nil {
		return false, ErrNotKeyed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r T) bool { return s.key(r) == id })
	return len(s.records) != n, nil
}
