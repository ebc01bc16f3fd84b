// Package progress provides a lightweight tracker that keeps aggregated task
// counters (submitted, completed, panicked) for a single worker pool.  Every
// component holding a reference can atomically update the counters via the
// Delta helper without requiring a global registry.

package progress

import (
	"sync"
	"time"

	"github.com/poolkit/poolkit/internal/clock"
)

// Delta represents an incremental counter change emitted by the executor.
// The fields are signed and can therefore be either positive (increment) or
// negative (decrement).
type Delta struct {
	Submitted int
	Completed int
	Panicked  int
}

// Stats keeps aggregated task counters for one pool.  It is safe for
// concurrent use.
type Stats struct {
	// Identification - informative only, filled when the pool is created.
	Pool      string
	StartedAt time.Time

	// Counters - modified via Update().
	SubmittedTasks int
	CompletedTasks int
	PanickedTasks  int

	sync.Mutex
	onChange func(Stats)
}

// NewStats returns a tracker for the named pool.
func NewStats(pool string) *Stats {
	return &Stats{Pool: pool, StartedAt: clock.Now()}
}

// Update applies the supplied delta to the tracker.  It is safe to call from
// multiple goroutines.  If an onChange callback has been registered it is
// invoked with a copy of the updated tracker outside the critical section so
// that the callback can perform slow operations (JSON encoding, I/O) without
// blocking pool workers.
func (s *Stats) Update(d Delta) {
	if s == nil {
		return
	}

	s.Lock()

	s.SubmittedTasks += d.Submitted
	s.CompletedTasks += d.Completed
	s.PanickedTasks += d.Panicked

	// Value-copy for the callback while we still hold the lock, so the
	// callback never sees partially updated counters.
	snapshot := *s
	cb := s.onChange

	s.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (s *Stats) Snapshot() Stats {
	if s == nil {
		return Stats{}
	}
	s.Lock()
	defer s.Unlock()
	return *s
}

// PendingTasks derives the number of tasks submitted but not yet finished.
func (s *Stats) PendingTasks() int {
	snapshot := s.Snapshot()
	return snapshot.SubmittedTasks - snapshot.CompletedTasks - snapshot.PanickedTasks
}

// OnChange registers a callback invoked after every successful Update.
// Passing nil disables the callback.  Only one callback can be active;
// subsequent calls overwrite the previous value.
func (s *Stats) OnChange(cb func(Stats)) {
	if s == nil {
		return
	}
	s.Lock()
	s.onChange = cb
	s.Unlock()
}
