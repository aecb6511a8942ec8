package task

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats reports job counters across a pool.
type Stats struct {
	Workers  int
	Pending  int
	Executed uint64
	Dropped  uint64
}

// Pool owns a fixed set of workers. Jobs are routed to a specific worker, so ordering
// holds per worker and never across workers.
type Pool struct {
	workers []*Worker
	group   errgroup.Group
	log     *zap.Logger
}

// NewPool starts n workers. n must be at least one.
func NewPool(n int, opts ...Option) *Pool {
	if n < 1 {
		panic(fmt.Sprintf("pool needs at least one worker, got %d", n))
	}
	o := buildOptions(opts)
	p := &Pool{
		workers: make([]*Worker, n),
		log:     o.log,
	}
	for i := range p.workers {
		w := newWorker(options{log: o.log.With(zap.Int("worker", i))})
		p.workers[i] = w
		p.group.Go(w.work)
	}
	p.log.Debug("pool started", zap.Int("workers", n))
	return p
}

// Worker returns the i-th worker.
func (p *Pool) Worker(i int) *Worker {
	return p.workers[i]
}

// Len returns the number of workers.
func (p *Pool) Len() int {
	return len(p.workers)
}

// Wait blocks until every worker is idle.
func (p *Pool) Wait() {
	for _, w := range p.workers {
		w.Wait()
	}
}

// Close stops every worker and waits for their goroutines to exit.
func (p *Pool) Close() {
	for _, w := range p.workers {
		w.signalClose()
	}
	_ = p.group.Wait()

	stats := p.Stats()
	p.log.Debug("pool stopped",
		zap.Uint64("executed", stats.Executed),
		zap.Uint64("dropped", stats.Dropped))
}

// Stats sums the counters of every worker.
func (p *Pool) Stats() Stats {
	s := Stats{Workers: len(p.workers)}
	for _, w := range p.workers {
		s.Pending += w.Pending()
		s.Executed += w.executed.Load()
		s.Dropped += w.dropped.Load()
	}
	return s
}

// Stats reports the worker's own counters.
func (w *Worker) Stats() Stats {
	return Stats{
		Workers:  1,
		Pending:  w.Pending(),
		Executed: w.executed.Load(),
		Dropped:  w.dropped.Load(),
	}
}
