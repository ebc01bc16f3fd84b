// Package registry owns the process-wide set of named pool executors.  Pools
// are created lazily, exactly once per name, and survive for the remainder of
// the process (or until Shutdown).  Creation is guarded per name, so a race
// between concurrent first accesses resolves to a single instance; later
// calls ignore their builder entirely and return the existing pool.
package registry
