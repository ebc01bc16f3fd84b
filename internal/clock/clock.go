// Package clock isolates time access so tests can substitute a deterministic
// source.
package clock

import "time"

// NowFunc returns the current time.  Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
