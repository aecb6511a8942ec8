// Package render queues cameras and meshes during the pre-render phase and draws them on
// a Backend from the render worker.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Backend is the graphics context a Renderer draws through.
//
// BindRenderContext is called from the render worker before drawing and
// BindMainContext from the main goroutine before the scene ticks, so a backend that
// needs thread affinity can hand its context over between the two.
type Backend interface {
	BindRenderContext()
	BindMainContext()
	Clear()
	DrawMesh(mvp mgl32.Mat4, mesh *Mesh, mat *Material)
	Present()
	Size() (width, height int)
}

// Mesh is 2D geometry in model space.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec2
	UVs      []mgl32.Vec2
	Indices  []uint32
}

// QuadMesh returns a unit quad centered on the origin.
func QuadMesh() *Mesh {
	return &Mesh{
		Name: "quad",
		Vertices: []mgl32.Vec2{
			{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5},
		},
		UVs: []mgl32.Vec2{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// ScreenBounds projects the mesh with mvp and returns its bounding box in screen
// coordinates of a width x height target, with y growing downwards.
func ScreenBounds(mvp mgl32.Mat4, mesh *Mesh, width, height float32) (lo, hi mgl32.Vec2) {
	lo = mgl32.Vec2{float32(math.Inf(1)), float32(math.Inf(1))}
	hi = mgl32.Vec2{float32(math.Inf(-1)), float32(math.Inf(-1))}
	for _, v := range mesh.Vertices {
		p := mvp.Mul4x1(mgl32.Vec4{v.X(), v.Y(), 0, 1})
		x := (p.X() + 1) / 2 * width
		y := (1 - p.Y()) / 2 * height
		lo = mgl32.Vec2{min(lo.X(), x), min(lo.Y(), y)}
		hi = mgl32.Vec2{max(hi.X(), x), max(hi.Y(), y)}
	}
	return lo, hi
}

// Material describes how a mesh is filled. Glyph is used by character-cell backends.
type Material struct {
	Name  string
	Color mgl32.Vec4
	Glyph rune
}

// NewMaterial returns a solid-colored material.
func NewMaterial(name string, color mgl32.Vec4) *Material {
	return &Material{Name: name, Color: color, Glyph: '█'}
}

// CameraData is a camera submitted for the current frame.
type CameraData struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Main       bool
}

// MeshData is a mesh submitted for the current frame.
type MeshData struct {
	Mesh     *Mesh
	Material *Material
	Model    mgl32.Mat4
	Depth    uint32
}
