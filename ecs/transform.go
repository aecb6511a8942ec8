package ecs

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an entity in 2D space and links it into the scene's parent/child
// hierarchy. Every entity owns exactly one.
//
// Rotation is in degrees around +Z. World values are cached and pushed down the subtree
// on every change, so reads are always current. Scale applies to the entity itself and is
// never inherited.
type Transform struct {
	ComponentBase

	position      mgl32.Vec3
	localPosition mgl32.Vec3
	rotation      float32
	localRotation float32
	localScale    mgl32.Vec2

	model    mgl32.Mat4
	unscaled mgl32.Mat4

	// parent and children hold entity indices resolved through the scene.
	parent    uint32
	hasParent bool
	children  []uint32
}

func newTransform() *Transform {
	return &Transform{
		localScale: mgl32.Vec2{1, 1},
		model:      mgl32.Ident4(),
		unscaled:   mgl32.Ident4(),
	}
}

func (t *Transform) Position() mgl32.Vec3      { return t.position }
func (t *Transform) LocalPosition() mgl32.Vec3 { return t.localPosition }
func (t *Transform) Rotation() float32         { return t.rotation }
func (t *Transform) LocalRotation() float32    { return t.localRotation }
func (t *Transform) LocalScale() mgl32.Vec2    { return t.localScale }

// ModelMatrix returns the world matrix including the local scale.
func (t *Transform) ModelMatrix() mgl32.Mat4 { return t.model }

// UnscaledModelMatrix returns the world matrix without the local scale. Children are
// placed relative to it.
func (t *Transform) UnscaledModelMatrix() mgl32.Mat4 { return t.unscaled }

// Up returns the world-space unit vector the local +Y axis points along.
func (t *Transform) Up() mgl32.Vec2 {
	s, c := sincos(t.rotation)
	return mgl32.Vec2{-s, c}
}

// Right returns the world-space unit vector the local +X axis points along.
func (t *Transform) Right() mgl32.Vec2 {
	s, c := sincos(t.rotation)
	return mgl32.Vec2{c, s}
}

func sincos(degrees float32) (float32, float32) {
	s, c := math.Sincos(float64(mgl32.DegToRad(degrees)))
	return float32(s), float32(c)
}

// Parent returns the parent transform, if any.
func (t *Transform) Parent() (*Transform, bool) {
	if !t.hasParent {
		return nil, false
	}
	p, ok := t.scene.transforms.Get(t.parent)
	return p, ok
}

func (t *Transform) parentTransform() *Transform {
	p, _ := t.Parent()
	return p
}

// ChildCount returns the number of direct children.
func (t *Transform) ChildCount() int {
	return len(t.children)
}

// Child returns the n-th direct child in attach order.
func (t *Transform) Child(n int) *Transform {
	if n < 0 || n >= len(t.children) {
		panic(fmt.Sprintf("child index %d out of range [0, %d)", n, len(t.children)))
	}
	return t.scene.transformOf(t.children[n])
}

// Children iterates the direct children in attach order.
func (t *Transform) Children() iter.Seq[*Transform] {
	return func(yield func(*Transform) bool) {
		for _, index := range t.children {
			c := t.scene.transformOf(index)
			if c == nil {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// SetPosition moves the transform to world position v.
func (t *Transform) SetPosition(v mgl32.Vec3) mgl32.Vec3 {
	t.position = v
	if p := t.parentTransform(); p != nil {
		t.localPosition = p.unscaled.Inv().Mul4x1(v.Vec4(1)).Vec3()
	} else {
		t.localPosition = v
	}
	t.regenerate()
	t.updateChildren()
	return t.position
}

// SetLocalPosition moves the transform to v relative to its parent.
func (t *Transform) SetLocalPosition(v mgl32.Vec3) mgl32.Vec3 {
	t.localPosition = v
	if p := t.parentTransform(); p != nil {
		t.position = p.unscaled.Mul4x1(v.Vec4(1)).Vec3()
	} else {
		t.position = v
	}
	t.regenerate()
	t.updateChildren()
	return t.localPosition
}

// SetRotation sets the world rotation in degrees.
func (t *Transform) SetRotation(degrees float32) float32 {
	t.rotation = degrees
	if p := t.parentTransform(); p != nil {
		t.localRotation = degrees - p.rotation
	} else {
		t.localRotation = degrees
	}
	t.regenerate()
	t.updateChildren()
	return t.rotation
}

// SetLocalRotation sets the rotation relative to the parent in degrees.
func (t *Transform) SetLocalRotation(degrees float32) float32 {
	t.localRotation = degrees
	if p := t.parentTransform(); p != nil {
		t.rotation = p.rotation + degrees
	} else {
		t.rotation = degrees
	}
	t.regenerate()
	t.updateChildren()
	return t.localRotation
}

// SetLocalScale sets the scale of this transform only.
func (t *Transform) SetLocalScale(v mgl32.Vec2) mgl32.Vec2 {
	t.localScale = v
	t.regenerate()
	t.updateChildren()
	return t.localScale
}

// ModPosition moves t by d in world space.
func (t *Transform) ModPosition(d mgl32.Vec3) mgl32.Vec3 {
	return t.SetPosition(t.position.Add(d))
}

// ModLocalPosition moves t by d in its parent's space.
func (t *Transform) ModLocalPosition(d mgl32.Vec3) mgl32.Vec3 {
	return t.SetLocalPosition(t.localPosition.Add(d))
}

// ModRotation adds degrees to the world rotation.
func (t *Transform) ModRotation(degrees float32) float32 {
	return t.SetRotation(t.rotation + degrees)
}

// ModLocalRotation adds degrees to the local rotation.
func (t *Transform) ModLocalRotation(degrees float32) float32 {
	return t.SetLocalRotation(t.localRotation + degrees)
}

// ModLocalScale adds d to the local scale.
func (t *Transform) ModLocalScale(d mgl32.Vec2) mgl32.Vec2 {
	return t.SetLocalScale(t.localScale.Add(d))
}

// SetParent moves t under p while keeping its world position and rotation. A nil p makes
// t a root. It panics if p is t itself, one of its descendants, or part of another scene.
func (t *Transform) SetParent(p *Transform) *Transform {
	if p != nil {
		if p.scene != t.scene {
			panic(fmt.Sprintf("cannot parent %s to a transform of another scene", t.entity))
		}
		for a := p; a != nil; a = a.parentTransform() {
			if a == t {
				panic(fmt.Sprintf("parenting %s to %s would create a cycle", t.entity, p.entity))
			}
		}
	}

	if old := t.parentTransform(); old != nil {
		old.removeChild(t.entity.index)
	}
	t.hasParent = false
	if p != nil {
		t.parent = p.entity.index
		t.hasParent = true
		p.children = append(p.children, t.entity.index)
	}

	t.SetPosition(t.position)
	t.SetRotation(t.rotation)
	return p
}

// AddChild is SetParent seen from the parent.
func (t *Transform) AddChild(c *Transform) *Transform {
	c.SetParent(t)
	return c
}

func (t *Transform) removeChild(index uint32) {
	if i := slices.Index(t.children, index); i >= 0 {
		t.children = slices.Delete(t.children, i, i+1)
	}
}

// regenerate rebuilds both world matrices from the local values and the parent.
func (t *Transform) regenerate() {
	local := mgl32.Translate3D(t.localPosition.X(), t.localPosition.Y(), t.localPosition.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.localRotation)))
	if p := t.parentTransform(); p != nil {
		t.unscaled = p.unscaled.Mul4(local)
	} else {
		t.unscaled = local
	}
	t.model = t.unscaled.Mul4(mgl32.Scale3D(t.localScale.X(), t.localScale.Y(), 1))
}

// updateChildren re-derives the world values of the whole subtree below t.
func (t *Transform) updateChildren() {
	for c := range t.Children() {
		c.position = t.unscaled.Mul4x1(c.localPosition.Vec4(1)).Vec3()
		c.rotation = t.rotation + c.localRotation
		c.regenerate()
		c.updateChildren()
	}
}

// detach unlinks t before it is erased. Its children become roots at their current world
// placement.
func (t *Transform) detach() {
	if p := t.parentTransform(); p != nil {
		p.removeChild(t.entity.index)
	}
	t.hasParent = false

	for c := range t.Children() {
		c.hasParent = false
		c.localPosition = c.position
		c.localRotation = c.rotation
		c.regenerate()
		c.updateChildren()
	}
	t.children = nil
}
