// Package policy describes, as plain data, how each named worker pool behaves:
// how many threads it should receive from the shared machine budget and how it
// reacts when a task panics.  It is deliberately decoupled from the allocator
// and the executor so that policies can be declared in configuration files,
// serialised and validated independently of the runtime they configure.
package policy
