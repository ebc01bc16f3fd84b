package registry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poolkit/poolkit/policy"
	"github.com/poolkit/poolkit/service/executor"
)

func newPool(t *testing.T, name string, workers int) Builder {
	return func() (*executor.Pool, error) {
		pool, err := executor.New(name, workers, policy.PanicPropagate)
		assert.NoError(t, err)
		return pool, nil
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := New()

	first, err := r.GetOrCreate("IO", newPool(t, "IO", 2))
	assert.NoError(t, err)
	assert.Equal(t, 2, first.WorkerCount())

	// Second call ignores the new builder and returns the existing pool.
	second, err := r.GetOrCreate("IO", newPool(t, "IO", 8))
	assert.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 2, second.WorkerCount())

	assert.Same(t, first, r.Lookup("IO"))
	assert.Nil(t, r.Lookup("unknown"))
}

func TestRegistry_ConcurrentFirstAccess(t *testing.T) {
	r := New()

	var created int64
	builder := func() (*executor.Pool, error) {
		atomic.AddInt64(&created, 1)
		return executor.New("Compute", 4, policy.PanicPropagate)
	}

	var wg sync.WaitGroup
	pools := make([]*executor.Pool, 16)
	for i := 0; i < len(pools); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pool, err := r.GetOrCreate("Compute", builder)
			assert.NoError(t, err)
			pools[i] = pool
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&created))
	for _, pool := range pools {
		assert.Same(t, pools[0], pool)
	}
}

func TestRegistry_BuilderError(t *testing.T) {
	r := New()

	_, err := r.GetOrCreate("broken", func() (*executor.Pool, error) {
		return nil, fmt.Errorf("no capacity")
	})
	assert.Error(t, err)

	// The failed outcome is retained; the new builder never runs.
	_, err = r.GetOrCreate("broken", newPool(t, "broken", 1))
	assert.Error(t, err)
	assert.Nil(t, r.Lookup("broken"))
}

func TestRegistry_NamesAndShutdown(t *testing.T) {
	r := New()
	for _, name := range []string{"IO", "AsyncCompute", "Compute"} {
		pool, err := r.GetOrCreate(name, newPool(t, name, 1))
		assert.NoError(t, err)
		pool.Start(context.Background())
	}
	assert.Equal(t, []string{"IO", "AsyncCompute", "Compute"}, r.Names())

	r.Shutdown()
	for _, name := range r.Names() {
		assert.False(t, r.Lookup(name).IsRunning())
	}
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}
