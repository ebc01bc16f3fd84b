// Package tracing integrates observability back-ends with the pool allocator
// to report the computed per-pool thread counts and pool lifecycle events.
// All instrumentation is kept in a separate package so that applications
// which do not require tracing can exclude it from their build.
package tracing
