package policy

import (
	"fmt"
	"math"
	"strings"
)

// Unbounded marks a thread limit that never clamps; use it for pools that are
// expected to absorb whatever budget earlier pools did not claim.
const Unbounded = math.MaxInt

// PanicPolicy controls how a pool reacts to a panic raised by one of its
// tasks.  A nil-equivalent empty string behaves like PanicPropagate.
type PanicPolicy string

const (
	// PanicPropagate re-raises the panic on the worker goroutine and takes
	// the process down.  This is the right default for compute work where a
	// panicking task indicates a programming error.
	PanicPropagate = PanicPolicy("propagate")

	// PanicCatchAndIgnore recovers the panic, logs it and keeps the worker
	// alive.  Suited to IO-style pools where a single failed task must not
	// disturb unrelated in-flight work.
	PanicCatchAndIgnore = PanicPolicy("catchAndIgnore")
)

// Valid reports whether the value is one of the recognised policies.  The
// empty string is accepted as shorthand for PanicPropagate.
func (p PanicPolicy) Valid() bool {
	switch p {
	case "", PanicPropagate, PanicCatchAndIgnore:
		return true
	}
	return false
}

// Propagates reports whether a recovered task panic should be re-raised.
func (p PanicPolicy) Propagates() bool {
	return !strings.EqualFold(string(p), string(PanicCatchAndIgnore))
}

// Assignment determines how many threads one pool receives given the number
// of threads still unallocated and the total machine budget.
type Assignment struct {
	// MinThreads forces using at least this many threads.
	MinThreads int `json:"minThreads" yaml:"minThreads"`

	// MaxThreads caps the pool; under no circumstance does the pool use more
	// threads than this.  Expected to be >= MinThreads.
	MaxThreads int `json:"maxThreads" yaml:"maxThreads"`

	// Percent targets this fraction of the total budget, clamped by
	// MinThreads and MaxThreads.  1.0 is permitted and means "use whatever
	// is left".
	Percent float64 `json:"percent" yaml:"percent"`
}

// NumberOfThreads returns the thread count for this pool.  The rounded
// percentage target is first limited to remainingThreads and only then
// clamped into [MinThreads, MaxThreads]; the min floor therefore wins over
// the remaining budget, so the sum of all pool sizes may exceed the budget on
// a device with very few cores.  Rounding is half away from zero
// (math.Round).  The function is pure; a negative Percent panics.
func (a Assignment) NumberOfThreads(remainingThreads, totalThreads int) int {
	if a.Percent < 0 {
		panic(fmt.Sprintf("policy: negative assignment percent %v", a.Percent))
	}
	desired := int(math.Round(float64(totalThreads) * a.Percent))

	// Never claim more than is still unallocated.
	if desired > remainingThreads {
		desired = remainingThreads
	}

	// Min/max clamp comes last on purpose; see the function comment.
	if desired < a.MinThreads {
		desired = a.MinThreads
	}
	if desired > a.MaxThreads {
		desired = a.MaxThreads
	}
	return desired
}

// Validate returns an error describing the first invalid field, or nil.  It
// mirrors the runtime assertion in NumberOfThreads so that configurations
// loaded from files fail once, up front, instead of mid-allocation.
func (a Assignment) Validate() error {
	if a.Percent < 0 {
		return fmt.Errorf("assignment percent must not be negative, got %v", a.Percent)
	}
	if a.MinThreads < 0 {
		return fmt.Errorf("minThreads must not be negative, got %v", a.MinThreads)
	}
	if a.MaxThreads < 0 {
		return fmt.Errorf("maxThreads must not be negative, got %v", a.MaxThreads)
	}
	return nil
}

// PoolPolicies groups everything the allocator needs to know about one pool.
type PoolPolicies struct {
	// Assignment sizes the pool from the shared budget.
	Assignment Assignment `json:"assignment" yaml:"assignment"`

	// Panic selects the pool's reaction to task panics.
	Panic PanicPolicy `json:"panic,omitempty" yaml:"panic,omitempty"`
}

// Validate aggregates validation of the nested policies.
func (p PoolPolicies) Validate() error {
	if err := p.Assignment.Validate(); err != nil {
		return err
	}
	if !p.Panic.Valid() {
		return fmt.Errorf("unknown panic policy %q", p.Panic)
	}
	return nil
}
