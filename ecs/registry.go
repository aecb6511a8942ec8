package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sync"
)

// TypeID identifies a component type within a ComponentRegistry. Identities are dense,
// start at zero and never change for the lifetime of the registry.
type TypeID int

// TypeInfo describes a registered identity.
type TypeInfo struct {
	ID       TypeID
	Type     reflect.Type
	Name     string
	Abstract bool
	Children []TypeID
}

type typeMeta struct {
	typ      reflect.Type
	factory  func() Component
	children []TypeID
}

var componentType = reflect.TypeFor[Component]()

// ComponentRegistry assigns identities to component types and builds default instances.
// One registry is shared by every Scene of a process, so identities agree across scenes.
type ComponentRegistry struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]TypeID
	metas []typeMeta
	// bumped on every new identity or polymorphic edge
	generation uint64
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]TypeID),
	}
}

// IdentityOf returns the identity of T, registering it on first use.
//
// Pointer-to-struct types embedding ComponentBase get a factory returning a zero value.
// Interface types are abstract: they have an identity that can be queried and registered
// as a polymorphic base, but no instance of them can be created.
func IdentityOf[T any](r *ComponentRegistry) TypeID {
	return r.identity(reflect.TypeFor[T]())
}

// RegisterFactory replaces the factory used to build new instances of T.
func RegisterFactory[T any](r *ComponentRegistry, factory func() T) TypeID {
	t := reflect.TypeFor[T]()
	if !t.Implements(componentType) {
		panic(fmt.Sprintf("%s does not embed ecs.ComponentBase", t))
	}
	id := r.identity(t)

	r.mu.Lock()
	r.metas[id].factory = func() Component {
		return any(factory()).(Component)
	}
	r.mu.Unlock()
	return id
}

// RegisterPolymorphic records Derived as a child of Base, so lookups for Base also find
// Derived instances. Derived must be assignable to Base.
func RegisterPolymorphic[Base, Derived any](r *ComponentRegistry) {
	base := reflect.TypeFor[Base]()
	derived := reflect.TypeFor[Derived]()
	if !derived.AssignableTo(base) {
		panic(fmt.Sprintf("%s is not assignable to %s", derived, base))
	}

	b := r.identity(base)
	d := r.identity(derived)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.metas[b].children, d) {
		r.metas[b].children = append(r.metas[b].children, d)
		r.generation++
	}
}

func (r *ComponentRegistry) identity(t reflect.Type) TypeID {
	r.mu.RLock()
	id, ok := r.ids[t]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id
	}
	id = TypeID(len(r.metas))
	r.metas = append(r.metas, typeMeta{typ: t, factory: defaultFactory(t)})
	r.ids[t] = id
	r.generation++
	return id
}

func defaultFactory(t reflect.Type) func() Component {
	switch {
	case t.Kind() == reflect.Interface:
		return nil
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		if !t.Implements(componentType) {
			panic(fmt.Sprintf("%s does not embed ecs.ComponentBase", t))
		}
		elem := t.Elem()
		return func() Component {
			return reflect.New(elem).Interface().(Component)
		}
	default:
		panic(fmt.Sprintf("component types must be struct pointers or interfaces, got %s", t))
	}
}

// Count returns the number of registered identities.
func (r *ComponentRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metas)
}

func (r *ComponentRegistry) currentGeneration() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Create builds a new default instance of id. It panics for abstract and unknown
// identities.
func (r *ComponentRegistry) Create(id TypeID) Component {
	r.mu.RLock()
	if id < 0 || int(id) >= len(r.metas) {
		r.mu.RUnlock()
		panic(fmt.Sprintf("unknown type id %d", id))
	}
	meta := r.metas[id]
	r.mu.RUnlock()

	if meta.factory == nil {
		panic(fmt.Sprintf("cannot create abstract component type %s", meta.typ))
	}
	return meta.factory()
}

// Info describes id.
func (r *ComponentRegistry) Info(id TypeID) TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.info(id)
}

func (r *ComponentRegistry) info(id TypeID) TypeInfo {
	meta := r.metas[id]
	return TypeInfo{
		ID:       id,
		Type:     meta.typ,
		Name:     meta.typ.String(),
		Abstract: meta.factory == nil,
		Children: slices.Clone(meta.children),
	}
}

// Children returns the identities registered directly under id, in registration order.
func (r *ComponentRegistry) Children(id TypeID) []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.metas[id].children)
}

// Types iterates every identity in ascending order.
func (r *ComponentRegistry) Types() iter.Seq[TypeInfo] {
	return func(yield func(TypeInfo) bool) {
		for id := range TypeID(r.Count()) {
			if !yield(r.Info(id)) {
				return
			}
		}
	}
}

// descendants returns every identity reachable from id through polymorphic registrations,
// depth first in registration order, excluding id itself. Each identity appears once even
// when the registrations form a cycle.
func (r *ComponentRegistry) descendants(id TypeID) []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.metas[id].children) == 0 {
		return nil
	}

	var out []TypeID
	visited := map[TypeID]bool{id: true}
	var walk func(TypeID)
	walk = func(cur TypeID) {
		for _, child := range r.metas[cur].children {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(id)
	return out
}
