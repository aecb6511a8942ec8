// Package task runs jobs off the main goroutine on long-lived workers.
package task

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Option configures a Worker or Pool.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for lifecycle events and recovered panics.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Worker executes jobs one at a time, in submission order, on its own goroutine.
type Worker struct {
	mu         sync.Mutex
	cond       *sync.Cond
	queue      []func()
	busy       bool
	destroying bool

	log      *zap.Logger
	executed atomic.Uint64
	dropped  atomic.Uint64
	done     chan struct{}
}

// NewWorker starts a worker goroutine.
func NewWorker(opts ...Option) *Worker {
	w := newWorker(buildOptions(opts))
	go func() {
		_ = w.work()
	}()
	return w
}

func newWorker(o options) *Worker {
	w := &Worker{
		log:  o.log,
		done: make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// AddJob queues job behind every job submitted before it. Jobs added after Close are
// dropped.
func (w *Worker) AddJob(job func()) {
	w.mu.Lock()
	if w.destroying {
		w.mu.Unlock()
		w.dropped.Add(1)
		w.log.Warn("job submitted to closed worker")
		return
	}
	w.queue = append(w.queue, job)
	w.mu.Unlock()
	w.cond.Broadcast()
}

// Wait blocks until every queued job, including the one running, has finished.
func (w *Worker) Wait() {
	w.mu.Lock()
	for len(w.queue) > 0 || w.busy {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

// Close stops the worker and waits for its goroutine to exit. A running job finishes;
// jobs still queued are dropped.
func (w *Worker) Close() {
	w.signalClose()
	<-w.done
}

func (w *Worker) signalClose() {
	w.mu.Lock()
	w.destroying = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

// Pending returns the number of jobs waiting to run.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

func (w *Worker) work() error {
	defer close(w.done)
	w.log.Debug("worker started")

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.destroying {
			w.cond.Wait()
		}
		if w.destroying {
			dropped := len(w.queue)
			clear(w.queue)
			w.queue = nil
			w.mu.Unlock()
			w.cond.Broadcast()

			if dropped > 0 {
				w.dropped.Add(uint64(dropped))
				w.log.Warn("dropped queued jobs", zap.Int("count", dropped))
			}
			w.log.Debug("worker stopped", zap.Uint64("executed", w.executed.Load()))
			return nil
		}

		job := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.busy = true
		w.mu.Unlock()

		w.run(job)

		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
		w.cond.Broadcast()
	}
}

func (w *Worker) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("job panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
		w.executed.Add(1)
	}()
	job()
}
