package ecs_test

import (
	"testing"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// mover opts into PhaseTick and nudges its transform.
type mover struct {
	ecs.ComponentBase
}

func (m *mover) DefaultPhases() ecs.Phases { return ecs.PhasesOf(ecs.PhaseTick) }

func (m *mover) OnTick(dt float32) {
	m.Transform().ModLocalPosition(mgl32.Vec3{dt, 0, 0})
}

func BenchmarkCreate(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.Create()
	}
}

func BenchmarkCreateWithComponents(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := scene.Create()
		ecs.Add[*Position](e)
		ecs.Add[*Health](e)
		ecs.Add[*Leaf](e)
	}
}

func BenchmarkDestroy(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = scene.Create()
		ecs.Add[*Position](entities[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entities[i].Destroy()
	}
	scene.Tick(0)
}

func BenchmarkCreateDestroyReuse(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := scene.Create()
		ecs.Add[*Position](e)
		e.Destroy()
		scene.Tick(0)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	e := scene.Create()
	ecs.Add[*Position](e)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[*Position](e)
	}
}

func BenchmarkGetPolymorphic(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	e := scene.Create()
	ecs.Add[*Branch](e)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Base](e)
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	e := scene.Create()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Add[*Health](e)
		ecs.Remove[*Health](e)
		scene.Tick(0)
	}
}

func BenchmarkTick(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	for range 1000 {
		ecs.Add[*mover](scene.Create())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.Tick(0.016)
	}
}

func BenchmarkTickLarge(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	for range 100000 {
		ecs.Add[*mover](scene.Create())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scene.Tick(0.016)
	}
}

func BenchmarkEach(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	for range 10000 {
		ecs.Add[*Position](scene.Create()).X = 1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum float32
		for p := range ecs.Each[*Position](scene) {
			sum += p.X
		}
		_ = sum
	}
}

func BenchmarkTransformCascade(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	root := scene.Create().Transform()
	parent := root
	for range 100 {
		child := scene.Create().Transform()
		child.SetParent(parent)
		child.SetLocalPosition(mgl32.Vec3{1, 0, 0})
		parent = child
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root.ModLocalRotation(1)
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	scene := ecs.NewScene(newTestRegistry())
	parent := scene.Create()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := scene.Create()
		ecs.Add[*Position](e)
		e.Transform().SetParent(parent.Transform())
		_, _ = ecs.Get[*Position](e)
		ecs.Add[*Health](e)
		e.Destroy()
		scene.Tick(0)
	}
}
