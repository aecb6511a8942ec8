package ecs

import "iter"

// Query iterates the components of a scene satisfying T, including the instances of
// every polymorphic child of T.
type Query[T any] struct {
	scene *Scene
	id    TypeID
	ids   []TypeID
	// registry generation the ids were resolved against
	seen uint64
}

// NewQuery creates a query over scene for T.
func NewQuery[T any](scene *Scene) *Query[T] {
	return &Query[T]{
		scene: scene,
		id:    IdentityOf[T](scene.registry),
	}
}

// ensureIds resolves the identity list, refreshing it after polymorphic registrations.
func (q *Query[T]) ensureIds() {
	if gen := q.scene.registry.currentGeneration(); q.ids == nil || gen != q.seen {
		q.ids = append([]TypeID{q.id}, q.scene.registry.descendants(q.id)...)
		q.seen = gen
	}
}

// Iter yields each matching component with its entity, T's own instances first, then the
// children's in lookup order. Components added during iteration are not visited.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		q.ensureIds()
		for _, id := range q.ids {
			if int(id) >= len(q.scene.components) {
				continue
			}
			list := q.scene.components[id]
			for i, n := 0, len(list); i < n; i++ {
				t, ok := list[i].(T)
				if !ok {
					continue
				}
				if !yield(list[i].base().entity, t) {
					return
				}
			}
		}
	}
}

// Values yields each matching component.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range q.Iter() {
			if !yield(t) {
				return
			}
		}
	}
}

// Count returns the number of matching components.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

// Each iterates every component of scene satisfying T.
func Each[T any](scene *Scene) iter.Seq[T] {
	return NewQuery[T](scene).Values()
}
