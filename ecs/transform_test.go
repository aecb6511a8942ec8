package ecs_test

import (
	"testing"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], epsilon, "component %d of %v", i, got)
	}
}

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, epsilon), "want %v\ngot  %v", want, got)
}

func newTransforms(t *testing.T, n int) (*ecs.Scene, []*ecs.Transform) {
	t.Helper()
	scene := ecs.NewScene(ecs.NewComponentRegistry())
	out := make([]*ecs.Transform, n)
	for i := range out {
		out[i] = scene.Create().Transform()
	}
	return scene, out
}

func TestTransformRoot(t *testing.T) {
	_, tr := newTransforms(t, 1)
	root := tr[0]

	root.SetPosition(mgl32.Vec3{1, 2, 3})
	root.SetRotation(45)

	assert.Equal(t, root.Position(), root.LocalPosition())
	assert.Equal(t, root.Rotation(), root.LocalRotation())
	_, ok := root.Parent()
	assert.False(t, ok)
}

func TestTransformModelMatrix(t *testing.T) {
	_, tr := newTransforms(t, 2)
	parent, child := tr[0], tr[1]

	parent.SetPosition(mgl32.Vec3{3, 1, 0})
	parent.SetRotation(30)
	parent.SetLocalScale(mgl32.Vec2{2, 4})
	child.SetParent(parent)
	child.SetLocalPosition(mgl32.Vec3{1, 1, 0})
	child.SetLocalRotation(15)
	child.SetLocalScale(mgl32.Vec2{3, 3})

	parentUnscaled := mgl32.Translate3D(3, 1, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30)))
	assertMat4(t, parentUnscaled, parent.UnscaledModelMatrix())
	assertMat4(t, parentUnscaled.Mul4(mgl32.Scale3D(2, 4, 1)), parent.ModelMatrix())

	childUnscaled := parentUnscaled.
		Mul4(mgl32.Translate3D(1, 1, 0)).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(15)))
	assertMat4(t, childUnscaled, child.UnscaledModelMatrix())
	assertMat4(t, childUnscaled.Mul4(mgl32.Scale3D(3, 3, 1)), child.ModelMatrix())
	assert.InDelta(t, 45, child.Rotation(), epsilon)
}

func TestTransformLocalToWorld(t *testing.T) {
	_, tr := newTransforms(t, 2)
	parent, child := tr[0], tr[1]

	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	parent.SetRotation(90)
	parent.AddChild(child)
	child.SetLocalPosition(mgl32.Vec3{1, 0, 0})

	assertVec3(t, mgl32.Vec3{10, 1, 0}, child.Position())
	assert.InDelta(t, 90, child.Rotation(), epsilon)
	assert.InDelta(t, 0, child.LocalRotation(), epsilon)

	child.SetPosition(mgl32.Vec3{10, 2, 0})
	assertVec3(t, mgl32.Vec3{2, 0, 0}, child.LocalPosition())
}

func TestTransformScaleNotInherited(t *testing.T) {
	_, tr := newTransforms(t, 2)
	parent, child := tr[0], tr[1]

	parent.SetLocalScale(mgl32.Vec2{3, 3})
	child.SetParent(parent)
	child.SetLocalPosition(mgl32.Vec3{1, 0, 0})

	assertVec3(t, mgl32.Vec3{1, 0, 0}, child.Position())
	assertMat4(t, mgl32.Translate3D(1, 0, 0), child.ModelMatrix())
}

func TestSetParentPreservesWorld(t *testing.T) {
	_, tr := newTransforms(t, 3)
	parent, other, child := tr[0], tr[1], tr[2]

	parent.SetPosition(mgl32.Vec3{1, 2, 0})
	parent.SetRotation(45)
	parent.SetLocalScale(mgl32.Vec2{2, 2})
	other.SetPosition(mgl32.Vec3{-7, 3, 0})
	other.SetRotation(-120)
	child.SetPosition(mgl32.Vec3{5, 5, 0})
	child.SetRotation(30)

	t.Run("attach", func(t *testing.T) {
		child.SetParent(parent)
		assertVec3(t, mgl32.Vec3{5, 5, 0}, child.Position())
		assert.InDelta(t, 30, child.Rotation(), epsilon)
		assert.InDelta(t, -15, child.LocalRotation(), epsilon)
		assert.Equal(t, 1, parent.ChildCount())
	})

	t.Run("move between parents", func(t *testing.T) {
		child.SetParent(other)
		assertVec3(t, mgl32.Vec3{5, 5, 0}, child.Position())
		assert.InDelta(t, 30, child.Rotation(), epsilon)
		assert.Equal(t, 0, parent.ChildCount())
		assert.Same(t, child, other.Child(0))
	})

	t.Run("detach", func(t *testing.T) {
		child.SetParent(nil)
		assertVec3(t, mgl32.Vec3{5, 5, 0}, child.Position())
		assertVec3(t, child.Position(), child.LocalPosition())
		assert.InDelta(t, 30, child.LocalRotation(), epsilon)
		assert.Equal(t, 0, other.ChildCount())
	})
}

func TestTransformCascade(t *testing.T) {
	_, tr := newTransforms(t, 3)
	root, mid, leaf := tr[0], tr[1], tr[2]

	mid.SetParent(root)
	leaf.SetParent(mid)
	mid.SetLocalPosition(mgl32.Vec3{0, 1, 0})
	leaf.SetLocalPosition(mgl32.Vec3{0, 1, 0})

	root.SetPosition(mgl32.Vec3{5, 0, 0})
	assertVec3(t, mgl32.Vec3{5, 2, 0}, leaf.Position())

	root.SetRotation(-90)
	assertVec3(t, mgl32.Vec3{7, 0, 0}, leaf.Position())
	assert.InDelta(t, -90, leaf.Rotation(), epsilon)

	root.ModPosition(mgl32.Vec3{0, 1, 0})
	assertVec3(t, mgl32.Vec3{7, 1, 0}, leaf.Position())
}

func TestTransformCyclePanics(t *testing.T) {
	_, tr := newTransforms(t, 3)
	a, b, c := tr[0], tr[1], tr[2]
	b.SetParent(a)
	c.SetParent(b)

	assert.Panics(t, func() { a.SetParent(c) })
	assert.Panics(t, func() { a.SetParent(a) })

	other, _ := newTransforms(t, 1)
	assert.Panics(t, func() { a.SetParent(other.Create().Transform()) })
}

func TestDestroyParentKeepsChildren(t *testing.T) {
	scene, tr := newTransforms(t, 3)
	root, parent, child := tr[0], tr[1], tr[2]

	parent.SetParent(root)
	child.SetParent(parent)
	root.SetPosition(mgl32.Vec3{1, 0, 0})
	parent.SetLocalRotation(90)
	child.SetLocalPosition(mgl32.Vec3{2, 0, 0})
	world := child.Position()
	rotation := child.Rotation()

	parent.Entity().Destroy()
	scene.Tick(0)

	_, ok := child.Parent()
	assert.False(t, ok)
	assertVec3(t, world, child.Position())
	assertVec3(t, world, child.LocalPosition())
	assert.InDelta(t, rotation, child.Rotation(), epsilon)
	assert.Equal(t, 0, root.ChildCount())

	reused := scene.Create()
	assert.Equal(t, parent.Entity().Index(), reused.Index())
	assert.Equal(t, 0, reused.Transform().ChildCount())
	_, ok = child.Parent()
	assert.False(t, ok)
}

func TestTransformAxes(t *testing.T) {
	_, tr := newTransforms(t, 1)
	n := tr[0]

	n.SetRotation(90)
	up := n.Up()
	right := n.Right()
	assert.InDelta(t, -1, up.X(), epsilon)
	assert.InDelta(t, 0, up.Y(), epsilon)
	assert.InDelta(t, 0, right.X(), epsilon)
	assert.InDelta(t, 1, right.Y(), epsilon)

	// axes agree with the model matrix
	x := n.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, right.X(), x.X(), epsilon)
	assert.InDelta(t, right.Y(), x.Y(), epsilon)
}

func TestTransformChildren(t *testing.T) {
	_, tr := newTransforms(t, 4)
	root := tr[0]
	for _, c := range tr[1:] {
		root.AddChild(c)
	}

	var got []*ecs.Transform
	for c := range root.Children() {
		got = append(got, c)
	}
	require.Len(t, got, 3)
	assert.Same(t, tr[1], got[0])
	assert.Same(t, tr[3], got[2])
	assert.Same(t, tr[2], root.Child(1))
	assert.Panics(t, func() { root.Child(3) })

	p, ok := tr[2].Parent()
	require.True(t, ok)
	assert.Same(t, root, p)
}

func TestTransformModHelpers(t *testing.T) {
	_, ts := newTransforms(t, 2)
	parent, child := ts[0], ts[1]
	child.SetParent(parent)
	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	parent.SetRotation(90)

	child.ModLocalPosition(mgl32.Vec3{1, 0, 0})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, child.LocalPosition())
	assertVec3(t, mgl32.Vec3{10, 1, 0}, child.Position())

	child.ModPosition(mgl32.Vec3{0, 1, 0})
	assertVec3(t, mgl32.Vec3{10, 2, 0}, child.Position())
	assertVec3(t, mgl32.Vec3{2, 0, 0}, child.LocalPosition())

	child.ModLocalRotation(15)
	assert.InDelta(t, 105, child.Rotation(), epsilon)
	child.ModRotation(-5)
	assert.InDelta(t, 10, child.LocalRotation(), epsilon)

	assert.Equal(t, mgl32.Vec2{2, 0.5}, child.ModLocalScale(mgl32.Vec2{1, -0.5}))
}
