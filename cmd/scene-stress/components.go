package main

import (
	"math/rand/v2"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/render"
	"github.com/go-gl/mathgl/mgl32"
)

// spinner rotates its entity every tick, which cascades through its subtree.
type spinner struct {
	ecs.ComponentBase
	Speed float32
}

func (s *spinner) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseTick)
}

func (s *spinner) OnTick(dt float32) {
	s.Transform().ModLocalRotation(s.Speed * dt)
}

// drifter nudges its entity after every spinner ran.
type drifter struct {
	ecs.ComponentBase
	Velocity mgl32.Vec3
}

func (d *drifter) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseLateTick)
}

func (d *drifter) OnLateTick(dt float32) {
	d.Transform().ModLocalPosition(d.Velocity.Mul(dt))
}

// churner destroys, spawns and re-parents entities each tick so the free list, the
// deferred destruction pass and the hierarchy are exercised together.
type churner struct {
	ecs.ComponentBase
	Rate float64
	Rand *rand.Rand

	mesh     *render.Mesh
	material *render.Material
	entities []ecs.Entity

	created    int
	destroyed  int
	reparented int
}

func (c *churner) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseTick)
}

func (c *churner) OnTick(float32) {
	n := int(float64(len(c.entities)) * c.Rate)
	for range n {
		if len(c.entities) == 0 {
			break
		}
		i := c.Rand.IntN(len(c.entities))
		c.entities[i].Destroy()
		c.entities[i] = c.entities[len(c.entities)-1]
		c.entities = c.entities[:len(c.entities)-1]
		c.destroyed++
	}
	for range n {
		c.spawn()
	}
	for range n {
		if len(c.entities) < 2 {
			break
		}
		child := c.entities[c.Rand.IntN(len(c.entities))]
		parent := c.entities[c.Rand.IntN(len(c.entities))]
		if reparent(child.Transform(), parent.Transform()) {
			c.reparented++
		}
	}
}

func (c *churner) spawn() ecs.Entity {
	e := c.Scene().Create()
	e.Transform().SetPosition(mgl32.Vec3{c.Rand.Float32()*100 - 50, c.Rand.Float32()*100 - 50, 0})

	s := ecs.Add[*spinner](e)
	s.Speed = c.Rand.Float32()*180 - 90
	if c.Rand.IntN(2) == 0 {
		d := ecs.Add[*drifter](e)
		d.Velocity = mgl32.Vec3{c.Rand.Float32() - 0.5, c.Rand.Float32() - 0.5, 0}
	}
	sr := ecs.Add[*render.SpriteRenderer](e)
	sr.Mesh = c.mesh
	sr.Material = c.material
	sr.Depth = uint32(c.Rand.IntN(8))

	c.entities = append(c.entities, e)
	c.created++
	return e
}

// reparent attaches child under parent unless that would form a cycle.
func reparent(child, parent *ecs.Transform) bool {
	for p := parent; ; {
		if p == child {
			return false
		}
		next, ok := p.Parent()
		if !ok {
			break
		}
		p = next
	}
	child.SetParent(parent)
	return true
}
