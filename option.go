package poolkit

import (
	"github.com/viant/afs/storage"

	"github.com/poolkit/poolkit/service/allocator"
	"github.com/poolkit/poolkit/service/executor"
	"github.com/poolkit/poolkit/service/meta"
	"github.com/poolkit/poolkit/service/registry"
	"github.com/poolkit/poolkit/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service.
type Option func(s *Service)

// WithConfig supplies the allocation configuration directly; it takes
// precedence over WithConfigURL.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithConfigURL makes Init load the configuration document from the given
// location via the meta service (file path, embed://, s3://, ...).
func WithConfigURL(URL string) Option {
	return func(s *Service) { s.configURL = URL }
}

// WithMetaService sets the meta service used to resolve WithConfigURL.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithMetaBaseURL sets the base URL relative config locations resolve
// against.
func WithMetaBaseURL(URL string) Option {
	return func(s *Service) { s.metaBaseURL = URL }
}

// WithMetaFsOptions sets file system options for the meta service, for
// example an embedded file system.
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.metaFsOptions = options }
}

// WithProbe overrides the hardware logical core probe.
func WithProbe(probe allocator.Probe) Option {
	return func(s *Service) { s.probe = probe }
}

// WithRegistry overrides the process-wide default pool registry, isolating
// this service's pools from other callers.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Service) { s.registry = r }
}

// WithExecutorOptions lets the caller supply additional options passed to
// executor.New for every pool created during allocation (e.g. a custom panic
// handler).
func WithExecutorOptions(options ...executor.Option) Option {
	return func(s *Service) { s.executorOptions = append(s.executorOptions, options...) }
}

// WithTracing configures OpenTelemetry tracing for the service.  If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path.  Safe to call multiple times; the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter (OTLP, Jaeger, Zipkin, ...).  Safe to call multiple times;
// the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
