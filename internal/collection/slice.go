// Package collection implements the per-resource fetch/cache pattern used
// by every feature screen: items, a loading flag and a last error, with
// consistent semantics across resources.
package collection

import (
	"context"
	"sync"

	"github.com/spec-kit/dispatch-dashboard/internal/backend"
)

// Slice holds one server collection. The invariants: loading is true only
// between a fetch dispatch and its resolution; the error is cleared at the
// start of every attempt; items keep their last successful value when a
// fetch fails.
type Slice[T any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	err     string
}

// View is the read-side selector value.
type View[T any] struct {
	Items   []T
	Loading bool
	Err     string
}

// View returns a copy of the current slice state.
func (s *Slice[T]) View() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return View[T]{Items: items, Loading: s.loading, Err: s.err}
}

// RemoveWhere drops items matching pred, used for optimistic local removal
// after a mutation whose effects are fully known client-side.
func (s *Slice[T]) RemoveWhere(pred func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !pred(item) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *Slice[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Slice[T]) resolve(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.items = items
}

func (s *Slice[T]) reject(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = message
}

// fetchInto runs one fetch cycle against the slice: call, decode, resolve
// or reject. A decode failure counts as a rejection; prior items survive.
func fetchInto[T any](ctx context.Context, s *Slice[T], call func(context.Context) backend.Envelope, decode func(backend.Envelope) ([]T, error)) View[T] {
	s.begin()

	env := call(ctx)
	if !env.Success {
		s.reject(env.Message())
		return s.View()
	}

	items, err := decode(env)
	if err != nil {
		s.reject("unexpected response shape: " + err.Error())
		return s.View()
	}
	s.resolve(items)
	return s.View()
}

// decodeList is the default decoder: the envelope data is the list itself.
func decodeList[T any](env backend.Envelope) ([]T, error) {
	var items []T
	if env.Data == nil {
		return items, nil
	}
	if err := env.DecodeData(&items); err != nil {
		return nil, err
	}
	return items, nil
}
