//go:build linux

package hardware

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// platformLogicalCores counts the CPUs in the calling process's affinity
// mask.  The mask reflects taskset/cpuset restrictions, which is the number
// that matters when partitioning threads across pools.
func platformLogicalCores() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
