package allocator

import (
	"fmt"
	"math"

	"github.com/poolkit/poolkit/policy"
)

// Default pool names, in allocation order.
const (
	PoolIO           = "IO"
	PoolAsyncCompute = "AsyncCompute"
	PoolCompute      = "Compute"
)

// PoolConfig names one pool and carries its sizing and panic policies.
type PoolConfig struct {
	Name     string              `json:"name" yaml:"name"`
	Policies policy.PoolPolicies `json:"policies" yaml:"policies"`
}

// Config is the one-shot allocation configuration.  It is consumed exactly
// once by Service.Allocate and has no further lifecycle.
//
// Pools is an ordered slice, never a map: allocation order is semantically
// significant because each pool is sized from what its predecessors left
// behind.
type Config struct {
	// MinTotalThreads/MaxTotalThreads clamp the probed core count into the
	// total thread budget.  A MaxTotalThreads of zero or less means
	// unbounded.
	MinTotalThreads int `json:"minTotalThreads" yaml:"minTotalThreads"`
	MaxTotalThreads int `json:"maxTotalThreads,omitempty" yaml:"maxTotalThreads,omitempty"`

	Pools []PoolConfig `json:"pools" yaml:"pools"`
}

// DefaultConfig mirrors the allocation used by most interactive applications:
// a quarter of the cores each for IO and async compute (between 1 and 4
// threads), everything left over for compute.  Only the IO pool swallows task
// panics; the compute pools treat a panic as a programming error and let it
// propagate.
func DefaultConfig() Config {
	return Config{
		// By default use however many cores are available on the system.
		MinTotalThreads: 1,
		MaxTotalThreads: policy.Unbounded,

		Pools: []PoolConfig{
			{
				Name: PoolIO,
				Policies: policy.PoolPolicies{
					Assignment: policy.Assignment{MinThreads: 1, MaxThreads: 4, Percent: 0.25},
					Panic:      policy.PanicCatchAndIgnore,
				},
			},
			{
				Name: PoolAsyncCompute,
				Policies: policy.PoolPolicies{
					Assignment: policy.Assignment{MinThreads: 1, MaxThreads: 4, Percent: 0.25},
					Panic:      policy.PanicPropagate,
				},
			},
			{
				Name: PoolCompute,
				Policies: policy.PoolPolicies{
					// 1.0 here means "whatever is left over".
					Assignment: policy.Assignment{MinThreads: 1, MaxThreads: policy.Unbounded, Percent: 1.0},
					Panic:      policy.PanicPropagate,
				},
			},
		},
	}
}

// WithNumThreads returns the default configuration pinned to an exact total
// thread count regardless of probed hardware.
func WithNumThreads(threadCount int) Config {
	cfg := DefaultConfig()
	cfg.MinTotalThreads = threadCount
	cfg.MaxTotalThreads = threadCount
	return cfg
}

// Validate returns an error describing the first invalid setting, or nil.
// Validation runs once, before allocation begins, so that a misauthored
// configuration fails up front rather than mid-allocation.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.MinTotalThreads < 0 {
		return fmt.Errorf("minTotalThreads must not be negative, got %v", c.MinTotalThreads)
	}
	if len(c.Pools) == 0 {
		return fmt.Errorf("at least one pool is required")
	}
	seen := make(map[string]bool, len(c.Pools))
	for i := range c.Pools {
		pool := &c.Pools[i]
		if pool.Name == "" {
			return fmt.Errorf("pool %d: name is required", i)
		}
		if seen[pool.Name] {
			return fmt.Errorf("pool %q declared twice", pool.Name)
		}
		seen[pool.Name] = true
		if err := pool.Policies.Validate(); err != nil {
			return fmt.Errorf("pool %q: %w", pool.Name, err)
		}
	}
	return nil
}

// totalBudget clamps the probed core count into the configured bounds.
func (c *Config) totalBudget(coreCount int) int {
	maxTotal := c.MaxTotalThreads
	if maxTotal <= 0 {
		maxTotal = math.MaxInt
	}
	total := coreCount
	if total > maxTotal {
		total = maxTotal
	}
	if total < c.MinTotalThreads {
		total = c.MinTotalThreads
	}
	return total
}
