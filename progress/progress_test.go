package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Update(t *testing.T) {
	stats := NewStats("IO")
	stats.Update(Delta{Submitted: 3})
	stats.Update(Delta{Completed: 2})
	stats.Update(Delta{Panicked: 1})

	snapshot := stats.Snapshot()
	assert.Equal(t, "IO", snapshot.Pool)
	assert.Equal(t, 3, snapshot.SubmittedTasks)
	assert.Equal(t, 2, snapshot.CompletedTasks)
	assert.Equal(t, 1, snapshot.PanickedTasks)
	assert.Equal(t, 0, stats.PendingTasks())
}

func TestStats_ConcurrentUpdates(t *testing.T) {
	stats := NewStats("Compute")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.Update(Delta{Submitted: 1, Completed: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, stats.Snapshot().SubmittedTasks)
	assert.Equal(t, 50, stats.Snapshot().CompletedTasks)
}

func TestStats_OnChange(t *testing.T) {
	stats := NewStats("AsyncCompute")
	var seen []int
	stats.OnChange(func(s Stats) {
		seen = append(seen, s.SubmittedTasks)
	})
	stats.Update(Delta{Submitted: 1})
	stats.Update(Delta{Submitted: 1})
	assert.Equal(t, []int{1, 2}, seen)

	var nilStats *Stats
	nilStats.Update(Delta{Submitted: 1})
	assert.Equal(t, Stats{}, nilStats.Snapshot())
}
