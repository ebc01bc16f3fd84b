package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/poolkit/poolkit/internal/clock"
	"github.com/poolkit/poolkit/internal/idgen"
	"github.com/poolkit/poolkit/service/messaging"
)

// Config for the in-memory queue implementation.
type Config struct {
	// MaxRequeues bounds how many times a Nack-ed message is put back on the
	// queue before it is dropped.
	MaxRequeues int
}

// DefaultConfig returns a standard configuration for the in-memory queue.
func DefaultConfig() Config {
	return Config{
		MaxRequeues: 1,
	}
}

// Message implements messaging.Message for the in-memory queue.
type Message[T any] struct {
	id        string
	payload   T
	queue     *Queue[T]
	requeues  int
	mu        sync.Mutex
	processed bool
	createdAt time.Time
}

// T returns the message payload.
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully.
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}

	m.processed = true
	return nil
}

// Nack indicates a failure in processing the message.  The message is put
// back at the tail of the queue until MaxRequeues is exhausted, after which
// it is dropped.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processed {
		return fmt.Errorf("message already processed")
	}

	m.processed = true
	if m.requeues >= m.queue.config.MaxRequeues {
		return nil
	}

	m.queue.push(&Message[T]{
		id:        m.id,
		payload:   m.payload,
		queue:     m.queue,
		requeues:  m.requeues + 1,
		createdAt: clock.Now(),
	})
	return nil
}

// Queue implements an unbounded in-memory messaging.Queue backed by a
// growable ring buffer.  Publish never blocks: tasks submitted to a pool must
// not stall the submitter even when every worker is busy.
type Queue[T any] struct {
	mu     sync.Mutex
	items  *queue.Queue
	config Config

	// notify carries at most one pending wake-up token for blocked consumers.
	notify chan struct{}
}

// NewQueue creates a new in-memory queue.
func NewQueue[T any](config Config) *Queue[T] {
	return &Queue[T]{
		items:  queue.New(),
		config: config,
		notify: make(chan struct{}, 1),
	}
}

// Publish adds a new item to the queue.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	q.push(&Message[T]{
		id:        idgen.New(),
		payload:   *t,
		queue:     q,
		createdAt: clock.Now(),
	})
	return nil
}

func (q *Queue[T]) push(msg *Message[T]) {
	q.mu.Lock()
	q.items.Add(msg)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Consume retrieves a single item from the queue, blocking until an item is
// available or ctx is cancelled.  Safe for use by multiple consumers; a
// consumer that loses the race for an item goes back to waiting.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	for {
		q.mu.Lock()
		if q.items.Length() > 0 {
			msg := q.items.Remove().(*Message[T])
			drained := q.items.Length() == 0
			q.mu.Unlock()
			if !drained {
				// Hand the wake-up token to the next blocked consumer.
				select {
				case q.notify <- struct{}{}:
				default:
				}
			}
			return msg, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// Size returns the current number of queued messages.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
