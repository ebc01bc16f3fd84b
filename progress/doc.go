// Package progress defines primitives for reporting aggregated task counters
// of a running worker pool.  It abstracts the bookkeeping away from the
// executor so that callers can observe pool activity in a uniform way without
// reaching into executor internals.
package progress
