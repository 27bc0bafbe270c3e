// Package memory provides the in-process repository backend. Each repository owns one
// store created at startup and shared by reference; there is no package-level state.
package memory

import (
	"context"
	"slices"
	"sync"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// store is a mutex-guarded map keyed by identifier. It deep-copies values on the way in
// and on the way out, so callers never share instances with the store, and it keeps
// insertion order for listing.
type store[T any] struct {
	mu    sync.RWMutex
	items map[kernel.UUID]T
	keys  []kernel.UUID

	name  string
	idOf  func(T) kernel.UUID
	clone func(T) T
}

func newStore[T any](name string, idOf func(T) kernel.UUID, clone func(T) T) *store[T] {
	return &store[T]{
		items: make(map[kernel.UUID]T),
		name:  name,
		idOf:  idOf,
		clone: clone,
	}
}

func (s *store[T]) get(ctx context.Context, id kernel.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	if !ok {
		return zero, errs.NewObjectNotFoundError(s.name, id.String())
	}
	return s.clone(v), nil
}

// find returns copies of the values matching keep, in insertion order.
// A nil keep matches everything.
func (s *store[T]) find(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.keys))
	for _, id := range s.keys {
		v := s.items[id]
		if keep == nil || keep(v) {
			out = append(out, s.clone(v))
		}
	}
	return out, nil
}

// first returns a copy of the first value matching keep, in insertion order.
func (s *store[T]) first(ctx context.Context, keep func(T) bool, lookup any) (T, error) {
	var zero T
	found, err := s.find(ctx, keep)
	if err != nil {
		return zero, err
	}
	if len(found) == 0 {
		return zero, errs.NewObjectNotFoundError(s.name, lookup)
	}
	return found[0], nil
}

// upsert stores a copy of v, inserting or overwriting, and returns another copy.
func (s *store[T]) upsert(ctx context.Context, v T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := s.idOf(v)
	stored := s.clone(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		s.keys = append(s.keys, id)
	}
	s.items[id] = stored
	return s.clone(stored), nil
}

// replace overwrites an existing value and fails with ObjectNotFoundError otherwise.
func (s *store[T]) replace(ctx context.Context, v T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := s.idOf(v)
	stored := s.clone(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return zero, errs.NewObjectNotFoundError(s.name, id.String())
	}
	s.items[id] = stored
	return s.clone(stored), nil
}

// replaceIf overwrites an existing value only when check accepts the stored one. The
// check and the write happen under the same lock.
func (s *store[T]) replaceIf(ctx context.Context, v T, check func(stored T) error) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	id := s.idOf(v)
	stored := s.clone(v)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return zero, errs.NewObjectNotFoundError(s.name, id.String())
	}
	if err := check(current); err != nil {
		return zero, err
	}
	s.items[id] = stored
	return s.clone(stored), nil
}

func (s *store[T]) remove(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	s.keys = slices.DeleteFunc(s.keys, func(k kernel.UUID) bool { return k == id })
	return true, nil
}
