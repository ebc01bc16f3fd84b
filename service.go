package poolkit

import (
	"context"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"

	"github.com/poolkit/poolkit/service/allocator"
	"github.com/poolkit/poolkit/service/executor"
	"github.com/poolkit/poolkit/service/meta"
	"github.com/poolkit/poolkit/service/registry"
)

// Service is the high-level façade wiring the core probe, the pool registry
// and the allocator together.  Construct it once with New, call Init at
// process start-up, then fetch pools by name.
type Service struct {
	config    *Config
	configURL string

	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option

	probe           allocator.Probe
	registry        *registry.Registry
	executorOptions []executor.Option
	allocator       *allocator.Service

	initOnce sync.Once
	initErr  error
}

// New creates a service from the supplied options.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	return s
}

func (s *Service) ensureBaseSetup() {
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.registry == nil {
		s.registry = registry.Default()
	}
	allocatorOptions := []allocator.Option{
		allocator.WithRegistry(s.registry),
		allocator.WithExecutorOptions(s.executorOptions...),
	}
	if s.probe != nil {
		allocatorOptions = append(allocatorOptions, allocator.WithProbe(s.probe))
	}
	s.allocator = allocator.New(allocatorOptions...)
}

// Init computes the per-pool thread counts and creates the pools.  It runs
// at most once per Service; repeated calls return the first outcome.  Pools
// that already exist in the registry keep their original size.
func (s *Service) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.init(ctx)
	})
	return s.initErr
}

func (s *Service) init(ctx context.Context) error {
	if s.config == nil && s.configURL != "" {
		config := &Config{}
		if err := s.metaService.Load(ctx, s.configURL, config); err != nil {
			return err
		}
		s.config = config
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	return s.allocator.Allocate(ctx, &s.config.Allocation)
}

// Pool returns the executor registered under name, or nil when allocation
// has not created it.
func (s *Service) Pool(name string) *executor.Pool {
	return s.registry.Lookup(name)
}

// Registry exposes the registry this service allocates into.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// Config returns the effective configuration; nil until Init resolved it.
func (s *Service) Config() *Config {
	return s.config
}

// Shutdown stops every pool created through this service's registry.
func (s *Service) Shutdown() {
	s.registry.Shutdown()
}
