package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/engine"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu    sync.Mutex
	calls []string
}

func (b *backend) record(s string) {
	b.mu.Lock()
	b.calls = append(b.calls, s)
	b.mu.Unlock()
}

func (b *backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *backend) BindRenderContext()                                  { b.record("render") }
func (b *backend) BindMainContext()                                    { b.record("main") }
func (b *backend) Clear()                                              {}
func (b *backend) DrawMesh(mgl32.Mat4, *render.Mesh, *render.Material) { b.record("draw") }
func (b *backend) Present()                                            { b.record("present") }
func (b *backend) Size() (int, int)                                    { return 100, 100 }

// stopper ends the run after a fixed number of ticks.
type stopper struct {
	ecs.ComponentBase
	After int
	Ticks int
	Ended bool
	Dts   []float32
}

func (s *stopper) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseTick, ecs.PhaseEnd)
}

func (s *stopper) OnTick(dt float32) {
	s.Ticks++
	s.Dts = append(s.Dts, dt)
	if s.Ticks >= s.After {
		ecs.MustResource[*engine.Engine](s.Scene()).Stop()
	}
}

func (s *stopper) OnEnd() { s.Ended = true }

func testConfig() config.EngineConfig {
	cfg := config.Default().Engine
	cfg.TickRate = 0
	return cfg
}

func TestStepOrder(t *testing.T) {
	b := &backend{}
	src := input.NewFakeSource()
	e := engine.New(testConfig(), b, input.New(src))
	defer e.Close()

	scene := e.Scene()
	cam := ecs.Add[*render.Camera](scene.Create())
	e.Renderer().SetMainCamera(cam)
	sprite := ecs.Add[*render.SpriteRenderer](scene.Create())
	sprite.Mesh = render.QuadMesh()
	sprite.Material = render.NewMaterial("s", mgl32.Vec4{1, 1, 1, 1})

	e.Step(0.016)
	e.Step(0.016)
	e.Pool().Wait()

	assert.Equal(t, []string{
		"main", "render", "draw", "present",
		"main", "render", "draw", "present",
	}, b.Calls())
	assert.Equal(t, 2, src.Polls())
	assert.Equal(t, uint64(2), e.Frames())
	assert.Equal(t, uint64(2), e.Renderer().Frames())
}

func TestRunUntilStopped(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(100 * time.Millisecond)
		return now
	}
	cfg := testConfig()
	cfg.MaxDelta = 50 * time.Millisecond

	e := engine.New(cfg, &backend{}, input.New(input.NewFakeSource()), engine.WithClock(clock))
	s := ecs.Add[*stopper](e.Scene().Create())
	s.After = 3

	assert.False(t, e.Stopped())
	require.NoError(t, e.Run(context.Background()))
	assert.True(t, e.Stopped())
	assert.Equal(t, 3, s.Ticks)
	assert.Equal(t, []float32{0, 0.05, 0.05}, s.Dts)

	e.Close()
	assert.True(t, s.Ended)
}

func TestRunUntilInputCloses(t *testing.T) {
	src := input.NewFakeSource()
	e := engine.New(testConfig(), &backend{}, input.New(src))
	defer e.Close()

	s := ecs.Add[*stopper](e.Scene().Create())
	s.After = 1 << 30
	src.Close()

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 0, s.Ticks)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = time.Millisecond
	e := engine.New(cfg, &backend{}, input.New(input.NewFakeSource()))
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, e.Frames(), uint64(0))
}

func TestResources(t *testing.T) {
	e := engine.New(testConfig(), &backend{}, input.New(input.NewFakeSource()))
	defer e.Close()

	assert.Same(t, e, ecs.MustResource[*engine.Engine](e.Scene()))
	assert.Same(t, e.Renderer(), ecs.MustResource[*render.Renderer](e.Scene()))
	assert.Same(t, e.Input(), ecs.MustResource[*input.Input](e.Scene()))
}
