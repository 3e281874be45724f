package lists

import (
	"sync"
	"time"
)

// DefaultDelay is how long the scheduler waits after the last request.
const DefaultDelay = 10 * time.Millisecond

// Scheduler debounces renumber requests. Each Schedule replaces the pending
// one, so a burst of requests runs the callback once.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	run     func()
	timer   *time.Timer
	token   uint64
	stopped bool
}

// NewScheduler calls run on its own goroutine once delay has passed without a
// new request. A non-positive delay uses DefaultDelay.
func NewScheduler(delay time.Duration, run func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay, run: run}
}

// Schedule arms the timer, cancelling any pending run.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelLocked()
	s.token++
	token := s.token
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		current := token == s.token && !s.stopped
		if current {
			s.timer = nil
		}
		s.mu.Unlock()
		if current {
			s.run()
		}
	})
}

// Pending reports whether a run is armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Cancel drops a pending run.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Stop cancels and refuses further requests.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.stopped = true
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// A timer that already fired sees a stale token and does nothing.
	s.token++
}
