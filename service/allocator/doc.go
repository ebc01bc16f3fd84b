// Package allocator turns a declarative pool configuration into running
// executors.  It clamps the probed logical core count into the configured
// total bounds and walks the pools in declared order, sizing each from the
// budget that remains after its predecessors; the last pool conventionally
// targets 100% and absorbs the remainder.  Each sized pool is then registered
// through the process-wide registry with create-if-absent semantics.
package allocator
