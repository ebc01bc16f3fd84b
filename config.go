package poolkit

import (
	"fmt"
	"os"

	"github.com/viant/toolbox"

	"github.com/poolkit/poolkit/service/allocator"
)

// EnvTotalThreads pins the total thread budget when set to a positive
// integer, equivalent to building the configuration with
// allocator.WithNumThreads.  Non-numeric values are ignored.
const EnvTotalThreads = "POOLKIT_TOTAL_THREADS"

// Config is a serialisable representation of the service configuration.  It
// can be populated from YAML (see WithConfigURL), JSON or code.
type Config struct {
	Allocation allocator.Config `json:"allocation" yaml:"allocation"`
}

// DefaultConfig returns a Config populated with the standard pool layout
// (IO, AsyncCompute, Compute) and honours the EnvTotalThreads override.
// Callers may modify the returned struct before handing it to the service.
func DefaultConfig() *Config {
	cfg := &Config{Allocation: allocator.DefaultConfig()}
	if value := os.Getenv(EnvTotalThreads); value != "" {
		if n := toolbox.AsInt(value); n > 0 {
			cfg.Allocation.MinTotalThreads = n
			cfg.Allocation.MaxTotalThreads = n
		}
	}
	return cfg
}

// Validate returns an aggregated error describing invalid settings, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Allocation.Validate(); err != nil {
		return fmt.Errorf("allocation: %w", err)
	}
	return nil
}
