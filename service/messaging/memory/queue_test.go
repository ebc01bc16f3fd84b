package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PublishConsume(t *testing.T) {
	q := NewQueue[string](DefaultConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		payload := fmt.Sprintf("task-%d", i)
		assert.NoError(t, q.Publish(ctx, &payload))
	}
	assert.Equal(t, 3, q.Size())

	for i := 0; i < 3; i++ {
		msg, err := q.Consume(ctx)
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("task-%d", i), *msg.T())
		assert.NoError(t, msg.Ack())
		assert.Error(t, msg.Ack())
	}
	assert.Equal(t, 0, q.Size())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	q := NewQueue[int](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_NackRequeues(t *testing.T) {
	q := NewQueue[int](Config{MaxRequeues: 1})
	ctx := context.Background()

	value := 42
	assert.NoError(t, q.Publish(ctx, &value))

	msg, err := q.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, msg.Nack(fmt.Errorf("transient")))

	// First Nack requeues the payload.
	msg, err = q.Consume(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 42, *msg.T())

	// Second Nack exceeds MaxRequeues and drops it.
	assert.NoError(t, msg.Nack(fmt.Errorf("again")))
	assert.Equal(t, 0, q.Size())
}

func TestQueue_ConcurrentConsumers(t *testing.T) {
	q := NewQueue[int](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	const total = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	consumed := 0

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				msg, err := q.Consume(ctx)
				if err != nil {
					return
				}
				_ = msg.Ack()
				mu.Lock()
				consumed++
				done := consumed == total
				mu.Unlock()
				if done {
					cancel()
				}
			}
		}()
	}

	for i := 0; i < total; i++ {
		value := i
		assert.NoError(t, q.Publish(context.Background(), &value))
	}

	wg.Wait()
	assert.Equal(t, total, consumed)
}
