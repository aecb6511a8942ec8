package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Scene owns a set of entities and their components and dispatches the per-tick phases.
//
// A Scene is not safe for concurrent use. All calls, including the phase callbacks it
// makes, happen on the goroutine driving Tick.
type Scene struct {
	registry    *ComponentRegistry
	log         *zap.Logger
	transformID TypeID

	// components holds one slice per identity, in storage order.
	components [][]Component
	transforms *intmap.Map[uint32, *Transform]

	alive   []bool
	live    int
	counter uint32
	free    []uint32

	pending   *pendingDestruction
	flushing  bool
	resources map[reflect.Type]any
	timings   [numPhases]phaseTimer
	ticks     uint64
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithLogger sets the logger used for structural events. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) SceneOption {
	return func(s *Scene) {
		s.log = log
	}
}

// NewScene creates an empty scene whose component identities come from registry.
func NewScene(registry *ComponentRegistry, opts ...SceneOption) *Scene {
	s := &Scene{
		registry:   registry,
		log:        zap.NewNop(),
		transforms: intmap.New[uint32, *Transform](256),
		pending:    newPendingDestruction(),
		resources:  make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.transformID = RegisterFactory(registry, newTransform)
	s.components = make([][]Component, registry.Count())
	return s
}

// Registry returns the registry the scene resolves identities with.
func (s *Scene) Registry() *ComponentRegistry {
	return s.registry
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.log
}

// Create allocates an entity with a default Transform. The oldest freed index is reused
// before a new one is taken from the counter.
func (s *Scene) Create() Entity {
	var index uint32
	if len(s.free) > 0 {
		index = s.free[0]
		s.free = s.free[:copy(s.free, s.free[1:])]
	} else {
		index = s.counter
		s.counter++
		s.alive = append(s.alive, false)
	}
	s.alive[index] = true
	s.live++

	e := Entity{scene: s, index: index}
	s.AddComponent(e, s.transformID)
	return e
}

// Destroy marks e for destruction. The entity and all of its components stay reachable
// until the start of the next Tick. Destroying a dead or already marked entity does
// nothing.
func (s *Scene) Destroy(e Entity) {
	s.checkEntity(e)
	if !s.alive[e.index] {
		return
	}
	s.pending.markEntity(e.index)
}

// IsAlive reports whether e refers to an allocated index of this scene.
func (s *Scene) IsAlive(e Entity) bool {
	return e.scene == s && e.index < s.counter && s.alive[e.index]
}

// EntityAt returns the live entity with the given index.
func (s *Scene) EntityAt(index uint32) (Entity, bool) {
	e := Entity{scene: s, index: index}
	if !s.IsAlive(e) {
		return Entity{}, false
	}
	return e, true
}

// EntityCount returns the number of live entities.
func (s *Scene) EntityCount() int {
	return s.live
}

// Entities iterates live entities in index order.
func (s *Scene) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := range s.counter {
			if !s.alive[i] {
				continue
			}
			if !yield(Entity{scene: s, index: i}) {
				return
			}
		}
	}
}

// Components iterates the components attached to e by ascending identity, including
// those marked for removal.
func (s *Scene) Components(e Entity) iter.Seq[Component] {
	s.checkEntity(e)
	return func(yield func(Component) bool) {
		for _, list := range s.components {
			for _, c := range list {
				if c.base().entity.index != e.index {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// AddComponent attaches a new instance of id to e and returns it. If e already has a
// component satisfying id, that component is returned and nothing else happens.
func (s *Scene) AddComponent(e Entity, id TypeID) Component {
	s.checkEntity(e)
	if !s.alive[e.index] || (s.flushing && s.pending.entityMarked(e.index)) {
		panic(fmt.Sprintf("cannot add component to destroyed %s", e))
	}
	if c, ok := s.GetComponent(e, id); ok {
		return c
	}

	c := s.registry.Create(id)
	b := c.base()
	b.scene = s
	b.entity = e
	b.id = id
	if d, ok := c.(PhaseDefaulter); ok {
		b.phases = d.DefaultPhases()
	}

	s.grow(id)
	s.components[id] = append(s.components[id], c)
	if t, ok := c.(*Transform); ok {
		s.transforms.Put(e.index, t)
	}

	if b.Runs(PhaseBegin) {
		if bc, ok := c.(Beginner); ok {
			bc.OnBegin()
		}
	}
	return c
}

// GetComponent returns the component of e stored under id. When there is none, the
// polymorphic children of id are searched depth first.
func (s *Scene) GetComponent(e Entity, id TypeID) (Component, bool) {
	s.checkEntity(e)
	if id == s.transformID {
		t, ok := s.transforms.Get(e.index)
		if !ok {
			return nil, false
		}
		return t, true
	}
	if c := s.find(id, e.index); c != nil {
		return c, true
	}
	for _, child := range s.registry.descendants(id) {
		if c := s.find(child, e.index); c != nil {
			return c, true
		}
	}
	return nil, false
}

// RemoveComponent marks the component of e satisfying id for removal at the start of the
// next Tick. Nothing happens if there is no such component. Transforms cannot be removed.
func (s *Scene) RemoveComponent(e Entity, id TypeID) {
	if id == s.transformID {
		panic(fmt.Sprintf("cannot remove the Transform of %s", e))
	}
	c, ok := s.GetComponent(e, id)
	if !ok {
		return
	}
	if _, ok := c.(*Transform); ok {
		panic(fmt.Sprintf("cannot remove the Transform of %s", e))
	}
	s.pending.markComponent(c)
}

// Tick flushes pending destructions and then runs OnTick, OnLateTick and OnPreRender.
// Within a phase components are visited by ascending identity, then in storage order.
func (s *Scene) Tick(deltaTime float32) {
	s.flush()
	s.dispatch(PhaseTick, deltaTime)
	s.dispatch(PhaseLateTick, deltaTime)
	s.dispatch(PhasePreRender, deltaTime)
	s.ticks++
}

// Ticks returns the number of completed ticks.
func (s *Scene) Ticks() uint64 {
	return s.ticks
}

// Close runs OnEnd for every component that asked for it and empties the scene. Pending
// destructions are dropped along with everything else.
func (s *Scene) Close() {
	for _, list := range s.components {
		for i, n := 0, len(list); i < n; i++ {
			runEnd(list[i])
		}
	}

	clear(s.components)
	s.transforms.Clear()
	s.alive = nil
	s.free = nil
	s.live = 0
	s.counter = 0
	s.pending = newPendingDestruction()
	s.log.Debug("scene closed", zap.Uint64("ticks", s.ticks))
}

func (s *Scene) dispatch(phase Phase, deltaTime float32) {
	start := time.Now()
	for id := range s.components {
		list := s.components[id]
		for i, n := 0, len(list); i < n; i++ {
			c := list[i]
			if !c.base().Runs(phase) {
				continue
			}
			switch phase {
			case PhaseTick:
				if t, ok := c.(Ticker); ok {
					t.OnTick(deltaTime)
				}
			case PhaseLateTick:
				if t, ok := c.(LateTicker); ok {
					t.OnLateTick(deltaTime)
				}
			case PhasePreRender:
				if t, ok := c.(PreRenderer); ok {
					t.OnPreRender(deltaTime)
				}
			}
		}
	}
	s.timings[phase].record(time.Since(start))
}

// flush destroys the entities marked before this tick, then removes the marked components.
// Requests made by OnEnd callbacks while flushing wait for the next tick.
func (s *Scene) flush() {
	start := time.Now()
	s.flushing = true
	defer func() { s.flushing = false }()

	entities := len(s.pending.entities)
	if entities > 0 {
		for _, list := range s.components {
			for _, c := range list {
				if s.pending.entityMarked(c.base().entity.index) {
					s.pending.markComponent(c)
				}
			}
		}
	}

	removed := s.flushComponents()

	if entities > 0 {
		for _, index := range s.pending.entities[:entities] {
			s.alive[index] = false
			s.live--
			s.free = append(s.free, index)
			s.pending.marked.Del(index)
		}
		rest := copy(s.pending.entities, s.pending.entities[entities:])
		s.pending.entities = s.pending.entities[:rest]
	}

	if entities > 0 || removed > 0 {
		s.timings[PhaseEnd].record(time.Since(start))
		s.log.Debug("flushed pending destruction",
			zap.Int("entities", entities),
			zap.Int("components", removed),
			zap.Int("free", len(s.free)))
	}
}

func (s *Scene) flushComponents() int {
	n := len(s.pending.components)
	if n == 0 {
		return 0
	}
	batch := slices.Clone(s.pending.components[:n])
	for _, c := range batch {
		runEnd(c)
	}

	erase := make(map[Component]struct{}, n)
	for _, c := range batch {
		erase[c] = struct{}{}
		if t, ok := c.(*Transform); ok {
			t.detach()
			index := t.entity.index
			if cur, ok := s.transforms.Get(index); ok && cur == t {
				s.transforms.Del(index)
			}
		}
	}
	for _, c := range batch {
		id := c.base().id
		if _, ok := erase[c]; !ok {
			continue
		}
		s.components[id] = slices.DeleteFunc(s.components[id], func(c Component) bool {
			_, ok := erase[c]
			if ok {
				delete(erase, c)
			}
			return ok
		})
	}

	rest := copy(s.pending.components, s.pending.components[n:])
	clear(s.pending.components[rest:])
	s.pending.components = s.pending.components[:rest]
	return n
}

func runEnd(c Component) {
	if !c.base().Runs(PhaseEnd) {
		return
	}
	if e, ok := c.(Ender); ok {
		e.OnEnd()
	}
}

func (s *Scene) find(id TypeID, index uint32) Component {
	if int(id) >= len(s.components) {
		return nil
	}
	for _, c := range s.components[id] {
		if c.base().entity.index == index {
			return c
		}
	}
	return nil
}

func (s *Scene) grow(id TypeID) {
	if n := int(id) + 1; n > len(s.components) {
		s.components = append(s.components, make([][]Component, n-len(s.components))...)
	}
}

func (s *Scene) transformOf(index uint32) *Transform {
	t, _ := s.transforms.Get(index)
	return t
}

func (s *Scene) checkEntity(e Entity) {
	if e.scene != s {
		panic(fmt.Sprintf("%s does not belong to this scene", e))
	}
	if e.index >= s.counter {
		panic(fmt.Sprintf("entity index %d out of range [0, %d)", e.index, s.counter))
	}
}
