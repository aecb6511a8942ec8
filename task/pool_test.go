package task_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ReeCocho/Snek/task"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPool(t *testing.T) {
	p := task.NewPool(3, task.WithLogger(zap.NewNop()))
	assert.Equal(t, 3, p.Len())

	var count atomic.Int64
	for i := range 30 {
		p.Worker(i % p.Len()).AddJob(func() { count.Add(1) })
	}
	p.Wait()
	assert.Equal(t, int64(30), count.Load())

	p.Close()
	stats := p.Stats()
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, uint64(30), stats.Executed)
	assert.Equal(t, uint64(0), stats.Dropped)
	assert.Equal(t, 0, stats.Pending)
}

func TestPoolNeedsWorkers(t *testing.T) {
	assert.Panics(t, func() { task.NewPool(0) })
}

// ExamplePool shows a render-style job being handed to a single worker each frame.
func ExamplePool() {
	p := task.NewPool(1)
	defer p.Close()

	var frames []int
	for frame := range 3 {
		p.Wait()
		p.Worker(0).AddJob(func() { frames = append(frames, frame) })
	}
	p.Wait()
	fmt.Println(frames)

	// Output:
	// [0 1 2]
}
