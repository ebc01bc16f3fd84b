//go:build !linux

package hardware

import "runtime"

func platformLogicalCores() int {
	return runtime.NumCPU()
}
