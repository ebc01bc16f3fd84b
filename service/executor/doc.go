// Package executor implements the worker pool primitive that the allocator
// creates: a named, fixed-size group of goroutines consuming tasks from a
// message queue.  It is effectively the glue layer between the declarative
// sizing policies and the goroutines that run user work.
package executor
