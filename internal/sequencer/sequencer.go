// Package sequencer runs scripted, delayed follow-up steps in strict FIFO
// order. Handlers use it for multi-stage animated output: each step's delay
// starts only after the previous step finished, so a later step can never
// become visible before an earlier one, whatever the scheduler load.
package sequencer

import (
	"sync"
	"time"

	"github.com/termfolio/termfolio/internal/logging"
	"github.com/termfolio/termfolio/internal/metrics"
)

type step struct {
	delay time.Duration
	fn    func()
}

// Scheduler executes scheduled steps on a single worker goroutine.
// One worker means one writer: appends to shared result history made from
// step callbacks are serialized by construction.
type Scheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []step
	pending int
	closed  bool
	scale   float64
}

// New creates a scheduler and starts its worker. scale multiplies every
// delay; 0 collapses all delays (tests, CI).
func New(scale float64) *Scheduler {
	if scale < 0 {
		scale = 0
	}
	s := &Scheduler{scale: scale}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Schedule enqueues a step to run after delay, measured from the completion
// of the previously scheduled step. Steps scheduled after Close are dropped.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, step{delay: delay, fn: fn})
	s.pending++
	metrics.SetSequencerDepth(s.pending)
	s.cond.Broadcast()
}

// Pending returns the number of steps not yet completed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Wait blocks until every scheduled step has run. Used by tests and by the
// REPL before printing appended output.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.pending > 0 {
		s.cond.Wait()
	}
}

// Close stops the scheduler once the queue drains. An in-flight chain runs
// to completion: interrupts cancel pending input, never a started sequence.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cond.Broadcast()
}

func (s *Scheduler) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		if d := s.scaled(next.delay); d > 0 {
			time.Sleep(d)
		}
		next.fn()
		metrics.RecordSequencerStep()

		s.mu.Lock()
		s.pending--
		metrics.SetSequencerDepth(s.pending)
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

func (s *Scheduler) scaled(d time.Duration) time.Duration {
	if s.scale == 0 {
		return 0
	}
	scaled := time.Duration(float64(d) * s.scale)
	if scaled < 0 {
		logging.Warn("sequencer delay overflow, clamping to zero")
		return 0
	}
	return scaled
}
