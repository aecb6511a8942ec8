// Package engine drives the frame loop: poll input, join the render worker, tick the
// scene, then hand the frame to the worker.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/render"
	"github.com/ReeCocho/Snek/task"
	"go.uber.org/zap"
)

// Engine owns the scene, the renderer and the worker pool of a running program.
type Engine struct {
	cfg      config.EngineConfig
	log      *zap.Logger
	now      func() time.Time
	registry *ecs.ComponentRegistry

	scene    *ecs.Scene
	renderer *render.Renderer
	input    *input.Input
	backend  render.Backend
	pool     *task.Pool

	last    time.Time
	frames  uint64
	stopped atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger handed to every subsystem.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithClock replaces time.Now for delta time computation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRegistry shares an existing component registry instead of creating one.
func WithRegistry(r *ecs.ComponentRegistry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// New wires a scene, renderer and worker pool around backend and in. The renderer, the
// input and the engine itself are available to components as scene resources.
func New(cfg config.EngineConfig, backend render.Backend, in *input.Input, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		log:     zap.NewNop(),
		now:     time.Now,
		input:   in,
		backend: backend,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = ecs.NewComponentRegistry()
	}

	e.pool = task.NewPool(max(cfg.Workers, 1), task.WithLogger(e.log.Named("task")))
	e.renderer = render.NewRenderer(backend, render.WithLogger(e.log.Named("render")))
	e.scene = ecs.NewScene(e.registry, ecs.WithLogger(e.log.Named("scene")))

	ecs.SetResource(e.scene, e.renderer)
	ecs.SetResource(e.scene, e.input)
	ecs.SetResource(e.scene, e)
	return e
}

func (e *Engine) Scene() *ecs.Scene                { return e.scene }
func (e *Engine) Renderer() *render.Renderer       { return e.renderer }
func (e *Engine) Input() *input.Input              { return e.input }
func (e *Engine) Registry() *ecs.ComponentRegistry { return e.registry }
func (e *Engine) Pool() *task.Pool                 { return e.pool }
func (e *Engine) Logger() *zap.Logger              { return e.log }

// Frames returns the number of completed steps.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Stop makes Run return after the current frame. Safe to call from components.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Stopped reports whether Stop was called.
func (e *Engine) Stopped() bool {
	return e.stopped.Load()
}

// Step runs one frame with the given delta time in seconds.
func (e *Engine) Step(deltaTime float32) {
	e.input.Poll()
	e.pool.Wait()
	e.backend.BindMainContext()
	e.scene.Tick(deltaTime)
	e.pool.Worker(0).AddJob(e.renderer.Render)
	e.frames++
}

// Delta returns the seconds since the previous call, clamped to the configured maximum.
// The first call returns zero.
func (e *Engine) Delta() float32 {
	now := e.now()
	if e.last.IsZero() {
		e.last = now
		return 0
	}
	dt := now.Sub(e.last)
	e.last = now
	if e.cfg.MaxDelta > 0 && dt > e.cfg.MaxDelta {
		dt = e.cfg.MaxDelta
	}
	return float32(dt.Seconds())
}

// Run steps until the input source asks to close, Stop is called or ctx is cancelled.
// With a positive tick rate frames are paced by a ticker. The render worker is joined
// before Run returns.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("engine started", zap.Duration("tick_rate", e.cfg.TickRate))
	defer func() {
		e.pool.Wait()
		e.log.Info("engine stopped", zap.Uint64("frames", e.frames))
	}()

	var tick <-chan time.Time
	if e.cfg.TickRate > 0 {
		ticker := time.NewTicker(e.cfg.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	for !e.input.ShouldClose() && !e.stopped.Load() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		e.Step(e.Delta())
	}
	return nil
}

// Close runs OnEnd for the remaining components and stops the worker pool.
func (e *Engine) Close() {
	e.pool.Wait()
	e.scene.Close()
	e.pool.Close()
}
