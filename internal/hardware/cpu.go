// Package hardware probes machine characteristics needed to size worker
// pools.  The probed values are treated as untrusted input; callers are
// expected to clamp them into configured bounds.
package hardware

import (
	"os"
	"sync"

	"github.com/viant/toolbox"
)

// EnvCPUCount overrides the probed logical core count when set to a positive
// integer.  Useful in containers whose runtime misreports cores and in tests.
const EnvCPUCount = "POOLKIT_CPU_COUNT"

var (
	logicalCores     int
	logicalCoresOnce sync.Once
)

// LogicalCores returns the number of logical CPUs visible to this process,
// never less than 1.  On Linux the scheduler affinity mask is consulted so
// that cgroup and taskset restrictions are respected; other platforms fall
// back to runtime.NumCPU.  The probe runs once per process and the result is
// cached.
func LogicalCores() int {
	logicalCoresOnce.Do(func() {
		logicalCores = probeLogicalCores()
	})
	return logicalCores
}

func probeLogicalCores() int {
	if value := os.Getenv(EnvCPUCount); value != "" {
		if n := toolbox.AsInt(value); n > 0 {
			return n
		}
	}
	n := platformLogicalCores()
	if n < 1 {
		n = 1
	}
	return n
}
