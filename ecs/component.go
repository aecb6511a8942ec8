package ecs

// Component is implemented by every type stored in a Scene. Types satisfy it by embedding
// ComponentBase.
type Component interface {
	Entity() Entity
	Scene() *Scene
	TypeID() TypeID
	SetPhase(p Phase, on bool)
	Runs(p Phase) bool
	MarkedForRemoval() bool

	base() *ComponentBase
}

// ComponentBase carries the bookkeeping the scene needs for a component: its identity,
// owner and the phases it takes part in. Embed it by value in component structs.
type ComponentBase struct {
	scene  *Scene
	entity Entity
	id     TypeID
	phases Phases
	marked bool
}

func (c *ComponentBase) base() *ComponentBase {
	return c
}

// Entity returns the entity the component is attached to.
func (c *ComponentBase) Entity() Entity {
	return c.entity
}

// Scene returns the scene owning the component.
func (c *ComponentBase) Scene() *Scene {
	return c.scene
}

// TypeID returns the identity the component was created under.
func (c *ComponentBase) TypeID() TypeID {
	return c.id
}

// Transform returns the transform of the owning entity.
func (c *ComponentBase) Transform() *Transform {
	return c.scene.transformOf(c.entity.index)
}

// SetPhase turns participation in p on or off. Takes effect the next time the phase is
// dispatched.
func (c *ComponentBase) SetPhase(p Phase, on bool) {
	if on {
		c.phases = c.phases.With(p)
	} else {
		c.phases = c.phases.Without(p)
	}
}

// Runs reports whether the component takes part in p.
func (c *ComponentBase) Runs(p Phase) bool {
	return c.phases.Has(p)
}

// Phases returns the full participation set.
func (c *ComponentBase) Phases() Phases {
	return c.phases
}

// MarkedForRemoval reports whether the component will be erased by the next flush.
func (c *ComponentBase) MarkedForRemoval() bool {
	return c.marked
}
