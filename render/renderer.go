package render

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Renderer collects submissions on the main goroutine and draws them in Render, which is
// meant to run as a job on the render worker. The engine joins the worker before ticking,
// so the queue is never written and drained at the same time.
type Renderer struct {
	backend Backend
	queue   Queue
	main    *Camera
	log     *zap.Logger

	frames  atomic.Uint64
	skipped atomic.Uint64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// NewRenderer creates a renderer drawing through b.
func NewRenderer(b Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend: b,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Backend returns the backend the renderer draws through.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// DrawTo submits a camera for this frame.
func (r *Renderer) DrawTo(c CameraData) {
	r.queue.DrawTo(c)
}

// Draw submits a mesh for this frame.
func (r *Renderer) Draw(m MeshData) {
	r.queue.Draw(m)
}

// SetMainCamera selects the camera whose submissions are marked main.
func (r *Renderer) SetMainCamera(c *Camera) {
	r.main = c
}

// MainCamera returns the selected camera, or nil.
func (r *Renderer) MainCamera() *Camera {
	return r.main
}

// Render draws the queued meshes through the first main camera and presents the frame.
// Without a main camera nothing is drawn or presented. The queue is emptied either way.
func (r *Renderer) Render() {
	defer r.queue.Reset()

	r.backend.BindRenderContext()
	r.backend.Clear()

	var camera *CameraData
	for i := range r.queue.cameras {
		if r.queue.cameras[i].Main {
			camera = &r.queue.cameras[i]
			break
		}
	}
	if camera == nil {
		if r.skipped.Add(1) == 1 {
			r.log.Warn("no main camera submitted, skipping frame")
		}
		return
	}

	vp := camera.Projection.Mul4(camera.View)
	for i := len(r.queue.meshes) - 1; i >= 0; i-- {
		m := &r.queue.meshes[i]
		r.backend.DrawMesh(vp.Mul4(m.Model), m.Mesh, m.Material)
	}
	r.backend.Present()
	r.frames.Add(1)
}

// Frames returns the number of presented frames.
func (r *Renderer) Frames() uint64 {
	return r.frames.Load()
}

// Skipped returns the number of frames dropped for lack of a main camera.
func (r *Renderer) Skipped() uint64 {
	return r.skipped.Load()
}
