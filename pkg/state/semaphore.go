package state

import "sync/atomic"

// Semaphore is an atomic countdown handle shared by every participant of a
// transition batch. Each participant calls Done exactly once when its
// transition starts; the completion callback runs exactly once, when the
// count reaches zero, regardless of the order decrements arrive in.
//
// Decrementing past zero is a consistency violation (a participant reported
// more than once) and panics.
type Semaphore struct {
	remaining atomic.Int64
	complete  func()
}

// NewSemaphore creates a countdown starting at count, which must be at
// least 1. complete may be nil.
func NewSemaphore(count int, complete func()) *Semaphore {
	s := &Semaphore{complete: complete}
	s.remaining.Store(int64(count))
	return s
}

// Done records one participant's start. The completion callback is invoked
// on the goroutine of the final Done call.
func (s *Semaphore) Done() {
	n := s.remaining.Add(-1)
	switch {
	case n == 0:
		if s.complete != nil {
			s.complete()
		}
	case n < 0:
		panic("state: semaphore decremented past zero")
	}
}

// Remaining returns the current count. Intended for diagnostics.
func (s *Semaphore) Remaining() int {
	return int(s.remaining.Load())
}
