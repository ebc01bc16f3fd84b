package allocator

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/poolkit/poolkit/internal/hardware"
	"github.com/poolkit/poolkit/service/executor"
	"github.com/poolkit/poolkit/service/registry"
	"github.com/poolkit/poolkit/tracing"
)

// Probe reports the number of logical cores visible to the process.  The
// value is treated as untrusted input and clamped into the configured total
// bounds before use.
type Probe func() int

// Service performs the one-time pool allocation.
type Service struct {
	probe           Probe
	registry        *registry.Registry
	executorOptions []executor.Option
}

// Option customises the allocator service.
type Option func(*Service)

// WithProbe overrides the hardware core probe, primarily for tests.
func WithProbe(probe Probe) Option {
	return func(s *Service) { s.probe = probe }
}

// WithRegistry overrides the process-wide default registry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Service) { s.registry = r }
}

// WithExecutorOptions supplies additional options passed to executor.New for
// every pool the allocator creates.
func WithExecutorOptions(options ...executor.Option) Option {
	return func(s *Service) { s.executorOptions = append(s.executorOptions, options...) }
}

// New creates an allocator service.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if s.probe == nil {
		s.probe = hardware.LogicalCores
	}
	if s.registry == nil {
		s.registry = registry.Default()
	}
	return s
}

// Allocate partitions the total thread budget across the configured pools in
// declared order and registers each pool's executor, creating and starting it
// if absent.  A pool that already exists in the registry keeps its original
// size; the freshly computed count is discarded.
//
// The running total never goes negative: subtraction saturates at zero, even
// when a pool's min-thread floor pushed its count above what was left.  There
// is no rollback, so the sum of pool sizes may exceed the budget on low-core
// machines.
func (s *Service) Allocate(ctx context.Context, config *Config) (err error) {
	if config == nil {
		defaults := DefaultConfig()
		config = &defaults
	}
	if err = config.Validate(); err != nil {
		return fmt.Errorf("invalid allocation config: %w", err)
	}

	ctx, span := tracing.StartSpan(ctx, "allocator.Allocate", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	totalThreads := config.totalBudget(s.probe())
	log.Printf("allocator: assigning %d threads to %d pools", totalThreads, len(config.Pools))
	span.WithAttributes(map[string]string{"threads.total": strconv.Itoa(totalThreads)})

	remainingThreads := totalThreads
	for i := range config.Pools {
		pool := &config.Pools[i]
		count := pool.Policies.Assignment.NumberOfThreads(remainingThreads, totalThreads)

		log.Printf("allocator: %s threads: %d", pool.Name, count)
		span.WithAttributes(map[string]string{"threads." + pool.Name: strconv.Itoa(count)})

		remainingThreads -= count
		if remainingThreads < 0 {
			remainingThreads = 0
		}

		name, panicPolicy := pool.Name, pool.Policies.Panic
		if _, err = s.registry.GetOrCreate(name, func() (*executor.Pool, error) {
			created, cErr := executor.New(name, count, panicPolicy, s.executorOptions...)
			if cErr != nil {
				return nil, cErr
			}
			created.Start(ctx)
			return created, nil
		}); err != nil {
			return fmt.Errorf("failed to create pool %s: %w", name, err)
		}
	}
	return nil
}

// Registry returns the registry this service allocates into.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}
