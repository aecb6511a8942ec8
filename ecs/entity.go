package ecs

import "fmt"

// Entity is a handle to an entity of a Scene. The zero Entity belongs to no scene.
//
// Handles are plain values. Once an entity is destroyed its index may be handed out again
// by the scene, so holding on to a handle past Destroy is a caller error.
type Entity struct {
	scene *Scene
	index uint32
}

// Index returns the entity's index within its scene.
func (e Entity) Index() uint32 {
	return e.index
}

// Scene returns the scene the entity belongs to.
func (e Entity) Scene() *Scene {
	return e.scene
}

// Destroy marks the entity for destruction at the start of the next tick.
func (e Entity) Destroy() {
	e.scene.Destroy(e)
}

// Transform returns the entity's transform, or nil if the entity is no longer alive.
func (e Entity) Transform() *Transform {
	return e.scene.transformOf(e.index)
}

// IsAlive reports whether the index is currently allocated.
func (e Entity) IsAlive() bool {
	return e.scene != nil && e.scene.IsAlive(e)
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d)", e.index)
}

// Has reports whether e has a component assignable to T.
func Has[T any](e Entity) bool {
	_, ok := Get[T](e)
	return ok
}

// Get returns the first component of e assignable to T. Polymorphic children of T are
// searched after T itself.
func Get[T any](e Entity) (T, bool) {
	var zero T
	c, ok := e.scene.GetComponent(e, IdentityOf[T](e.scene.registry))
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Add attaches a new T to e, or returns the component already satisfying T.
func Add[T any](e Entity) T {
	return e.scene.AddComponent(e, IdentityOf[T](e.scene.registry)).(T)
}

// Remove marks the component satisfying T for removal. Missing components are ignored.
func Remove[T any](e Entity) {
	e.scene.RemoveComponent(e, IdentityOf[T](e.scene.registry))
}
