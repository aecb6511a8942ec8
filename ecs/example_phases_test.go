package ecs_test

import (
	"fmt"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

type Speed struct {
	ecs.ComponentBase
	DX, DY float32
}

func (s *Speed) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseTick)
}

func (s *Speed) OnTick(dt float32) {
	s.Transform().ModPosition(mgl32.Vec3{s.DX * dt, s.DY * dt, 0})
}

type Hitpoints struct {
	ecs.ComponentBase
	Current, Max int
	RegenRate    float32
}

func (h *Hitpoints) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseLateTick)
}

func (h *Hitpoints) OnLateTick(dt float32) {
	h.Current = min(h.Current+int(h.RegenRate*dt), h.Max)
}

// ExampleScene_Tick demonstrates a frame: every component opted into PhaseTick runs,
// then every component opted into PhaseLateTick, then PhasePreRender. Within a phase
// components run in ascending type identity order.
func ExampleScene_Tick() {
	scene := ecs.NewScene(ecs.NewComponentRegistry())

	spawn := func(x, y, dx, dy float32, hp int) {
		e := scene.Create()
		e.Transform().SetPosition(mgl32.Vec3{x, y, 0})
		s := ecs.Add[*Speed](e)
		s.DX, s.DY = dx, dy
		h := ecs.Add[*Hitpoints](e)
		h.Current, h.Max, h.RegenRate = hp, 100, 10
	}
	spawn(0, 0, 10, 5, 80)
	spawn(100, 100, -5, -5, 50)

	scene.Tick(1.0)

	fmt.Println("After one frame:")
	for e, h := range ecs.NewQuery[*Hitpoints](scene).Iter() {
		pos := e.Transform().Position()
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n", pos.X(), pos.Y(), h.Current, h.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleComponentBase_SetPhase shows a component leaving and rejoining a phase.
func ExampleComponentBase_SetPhase() {
	scene := ecs.NewScene(ecs.NewComponentRegistry())
	e := scene.Create()
	speed := ecs.Add[*Speed](e)
	speed.DX = 1

	scene.Tick(1)
	speed.SetPhase(ecs.PhaseTick, false)
	scene.Tick(1)
	speed.SetPhase(ecs.PhaseTick, true)
	scene.Tick(1)

	fmt.Printf("X: %.0f\n", e.Transform().Position().X())
	for _, stats := range scene.PhaseStats() {
		if stats.Phase == ecs.PhaseTick {
			fmt.Printf("%s ran %d times\n", stats.Phase, stats.ExecutionCount)
		}
	}

	// Output:
	// X: 2
	// Tick ran 3 times
}
