package render

import (
	"github.com/ReeCocho/Snek/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCameraSize is the vertical extent a new camera shows, in world units.
const DefaultCameraSize = 5

// Camera submits an orthographic view from its entity's transform every frame. The
// Renderer is looked up as a scene resource when the camera is attached.
type Camera struct {
	ecs.ComponentBase

	// Size is the visible height in world units. The width follows the backend's aspect.
	Size float32

	renderer *Renderer
}

func (c *Camera) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhasePreRender)
}

func (c *Camera) OnBegin() {
	c.Size = DefaultCameraSize
	c.renderer, _ = ecs.Resource[*Renderer](c.Scene())
}

func (c *Camera) OnPreRender(float32) {
	if c.renderer == nil {
		return
	}
	c.renderer.DrawTo(CameraData{
		View:       c.View(),
		Projection: c.Projection(),
		Main:       c.renderer.MainCamera() == c,
	})
}

// View looks down -Z from the transform's position, with the transform's up vector.
func (c *Camera) View() mgl32.Mat4 {
	t := c.Transform()
	pos := t.Position()
	up := t.Up()
	return mgl32.LookAtV(pos, pos.Add(mgl32.Vec3{0, 0, -1}), up.Vec3(0))
}

// Projection maps Size world units onto the backend's height.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.renderer != nil {
		if w, h := c.renderer.Backend().Size(); w > 0 && h > 0 {
			aspect = float32(w) / float32(h)
		}
	}
	half := c.Size / 2
	return mgl32.Ortho2D(-aspect*half, aspect*half, -half, half)
}

// ScreenToWorld converts normalized device coordinates to a world position on the
// camera's plane.
func (c *Camera) ScreenToWorld(ndc mgl32.Vec2) mgl32.Vec3 {
	inv := c.Projection().Mul4(c.View()).Inv()
	return inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 0, 1}).Vec3()
}
