package executor

import (
	"github.com/poolkit/poolkit/service/messaging"
)

// Option customises a Pool instance.
type Option func(*Pool)

// WithQueue overrides the default unbounded in-memory task queue, for example
// to share a queue between pools or to inject a failing queue in tests.
func WithQueue(queue messaging.Queue[Task]) Option {
	return func(p *Pool) {
		p.queue = queue
	}
}

// WithPanicHandler overrides the callback invoked when a worker recovers a
// task panic under the catch-and-ignore policy.  Passing nil restores the
// default log output.
func WithPanicHandler(handler func(pool string, workerID int, recovered interface{})) Option {
	return func(p *Pool) {
		p.panicHandler = handler
	}
}
