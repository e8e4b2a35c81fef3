// Package frame provides a frame clock: callbacks are requested for the next
// frame and run together when the clock steps.
package frame

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the frame period of Run (~60Hz).
const DefaultInterval = 16 * time.Millisecond

// ID identifies a requested frame callback.
type ID uint64

type request struct {
	id ID
	fn func()
}

// Scheduler queues callbacks for the next frame.
type Scheduler struct {
	mu      sync.Mutex
	pending []request
	nextID  ID
}

func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// RequestFrame queues fn to run on the next Step.
func (s *Scheduler) RequestFrame(fn func()) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.pending = append(s.pending, request{id: id, fn: fn})
	return id
}

// CancelFrame removes a callback that has not run yet.
func (s *Scheduler) CancelFrame(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Step runs the callbacks that were queued when it was called. Callbacks
// requested while stepping run on the following Step.
func (s *Scheduler) Step() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
}

// Run drives s every interval until ctx is done. pump, when non-nil, runs
// before each Step on the same goroutine.
func Run(ctx context.Context, s *Scheduler, interval time.Duration, pump func()) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pump != nil {
				pump()
			}
			s.Step()
		}
	}
}
