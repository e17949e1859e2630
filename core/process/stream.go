package process

import "sync"

// Stream is a per-process broadcast channel with completion semantics.
// Emissions are delivered synchronously, in subscription order, so ordering
// guarantees follow directly from the caller's single-writer discipline.
// After Close no further value is delivered.
type Stream[T any] struct {
	mu    sync.Mutex
	next  int
	order []int
	subs  map[int]func(T)
	done  chan struct{}
}

func NewStream[T any]() *Stream[T] {
	return &Stream[T]{
		subs: make(map[int]func(T)),
		done: make(chan struct{}),
	}
}

// Subscribe registers fn for every subsequent emission and returns a cancel
// func. Subscribing to a completed stream returns a no-op cancel.
func (s *Stream[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return func() {}
	}

	id := s.next
	s.next++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Emit delivers v to all live subscribers. Dropped after completion.
func (s *Stream[T]) Emit(v T) {
	s.mu.Lock()
	if s.closed() {
		s.mu.Unlock()
		return
	}
	// snapshot so handlers may subscribe/cancel reentrantly
	fns := make([]func(T), 0, len(s.subs))
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Close completes the stream. Idempotent.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return
	}
	close(s.done)
	s.subs = make(map[int]func(T))
	s.order = nil
}

// Done is closed when the stream completes.
func (s *Stream[T]) Done() <-chan struct{} { return s.done }

// Closed reports whether the stream has completed.
func (s *Stream[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed()
}

func (s *Stream[T]) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
