package executor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/poolkit/poolkit/internal/idgen"
	"github.com/poolkit/poolkit/policy"
	"github.com/poolkit/poolkit/progress"
	"github.com/poolkit/poolkit/service/messaging"
	"github.com/poolkit/poolkit/service/messaging/memory"
)

// Task is a unit of work executed on one of the pool's workers.
type Task func(ctx context.Context)

// Pool is a named, fixed-size set of worker goroutines consuming tasks from a
// queue.  A Pool is created with a thread count computed by the allocator,
// started once, and lives until Shutdown.  The pool name is cosmetic; it
// shows up in diagnostics only.
type Pool struct {
	id          string
	name        string
	workerCount int
	panicPolicy policy.PanicPolicy

	queue        messaging.Queue[Task]
	stats        *progress.Stats
	panicHandler func(pool string, workerID int, recovered interface{})

	workers   []*worker
	workerWg  sync.WaitGroup
	running   bool
	runningMu sync.RWMutex
}

type worker struct {
	id       int
	pool     *Pool
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates a pool with the supplied number of workers.  A zero
// workerCount is legal - tasks queue up but never run - and a negative one is
// rejected.
func New(name string, workerCount int, panicPolicy policy.PanicPolicy, options ...Option) (*Pool, error) {
	if name == "" {
		return nil, ErrUnnamedPool
	}
	if workerCount < 0 {
		return nil, fmt.Errorf("pool %s: negative worker count %d", name, workerCount)
	}
	if !panicPolicy.Valid() {
		return nil, fmt.Errorf("pool %s: unknown panic policy %q", name, panicPolicy)
	}
	p := &Pool{
		id:          idgen.New(),
		name:        name,
		workerCount: workerCount,
		panicPolicy: panicPolicy,
		stats:       progress.NewStats(name),
	}
	for _, option := range options {
		option(p)
	}
	if p.queue == nil {
		p.queue = memory.NewQueue[Task](memory.DefaultConfig())
	}
	return p, nil
}

// Start launches the worker goroutines.  Second and later calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.runningMu.Lock()
	defer p.runningMu.Unlock()

	if p.running {
		return
	}
	p.running = true

	for i := 0; i < p.workerCount; i++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{
			id:       i,
			pool:     p,
			ctx:      workerCtx,
			cancelFn: cancel,
		}
		p.workers = append(p.workers, w)
		p.workerWg.Add(1)
		go w.run()
	}
}

// Submit enqueues a task for execution on one of the pool's workers.  It
// never blocks on a busy pool; the backing queue is unbounded.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return ErrNilTask
	}
	p.runningMu.RLock()
	running := p.running
	p.runningMu.RUnlock()
	if !running {
		return fmt.Errorf("pool %s: %w", p.name, ErrNotStarted)
	}
	if err := p.queue.Publish(ctx, &task); err != nil {
		return err
	}
	p.stats.Update(progress.Delta{Submitted: 1})
	return nil
}

// run processes messages from the queue until the worker context is
// cancelled.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	for {
		msg, err := w.pool.queue.Consume(w.ctx)
		if err != nil {
			// Context cancelled - graceful shutdown.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			continue
		}
		if msg == nil {
			continue
		}

		task := msg.T()
		w.execute(*task)
		_ = msg.Ack()
	}
}

// execute runs a single task, applying the pool's panic policy.  Under
// catch-and-ignore a panicking task is recovered, counted and reported; under
// propagate the panic is re-raised and takes the process down.
func (w *worker) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.pool.stats.Update(progress.Delta{Panicked: 1})
			if w.pool.panicPolicy.Propagates() {
				panic(r)
			}
			if handler := w.pool.panicHandler; handler != nil {
				handler(w.pool.name, w.id, r)
				return
			}
			log.Printf("pool %s: worker %d recovered task panic: %v", w.pool.name, w.id, r)
			return
		}
		w.pool.stats.Update(progress.Delta{Completed: 1})
	}()
	task(w.ctx)
}

// Shutdown cancels all workers and waits for them to drain.  Safe to call
// more than once.
func (p *Pool) Shutdown() {
	p.runningMu.Lock()
	if !p.running {
		p.runningMu.Unlock()
		return
	}
	p.running = false
	workers := p.workers
	p.workers = nil
	p.runningMu.Unlock()

	for _, w := range workers {
		w.cancelFn()
	}
	p.workerWg.Wait()
}

// ID returns the pool's unique instance identifier.
func (p *Pool) ID() string { return p.id }

// Name returns the pool name the executor was registered under.
func (p *Pool) Name() string { return p.name }

// WorkerCount returns the number of workers the pool was created with.
func (p *Pool) WorkerCount() int { return p.workerCount }

// PanicPolicy returns the pool's configured panic policy.
func (p *Pool) PanicPolicy() policy.PanicPolicy { return p.panicPolicy }

// IsRunning reports whether the pool has been started and not yet shut down.
func (p *Pool) IsRunning() bool {
	p.runningMu.RLock()
	defer p.runningMu.RUnlock()
	return p.running
}

// Stats exposes the pool's aggregated task counters.
func (p *Pool) Stats() *progress.Stats { return p.stats }

// QueuedTaskCount returns the number of tasks waiting for a worker when the
// backing queue supports introspection, and -1 otherwise.
func (p *Pool) QueuedTaskCount() int {
	if sized, ok := p.queue.(interface{ Size() int }); ok {
		return sized.Size()
	}
	return -1
}
