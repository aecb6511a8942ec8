package ecs_test

import (
	"fmt"

	"github.com/ReeCocho/Snek/ecs"
)

// Journal records phase callbacks in call order.
type Journal struct {
	Entries []string
}

func (j *Journal) add(format string, args ...any) {
	j.Entries = append(j.Entries, fmt.Sprintf(format, args...))
}

// Common test component types
type Position struct {
	ecs.ComponentBase
	X, Y float32
}

type Health struct {
	ecs.ComponentBase
	Current int
}

// Base is an abstract component type, satisfied by Leaf and Branch.
type Base interface {
	ecs.Component
	Kind() string
}

type Leaf struct {
	ecs.ComponentBase
}

func (*Leaf) Kind() string { return "leaf" }

type Branch struct {
	ecs.ComponentBase
}

func (*Branch) Kind() string { return "branch" }

// Lifecycle takes part in every phase and writes each call to its journal.
type Lifecycle struct {
	ecs.ComponentBase
	Name    string
	Journal *Journal
	Begins  int
	Ends    int
}

func (l *Lifecycle) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick, ecs.PhaseLateTick, ecs.PhasePreRender, ecs.PhaseEnd)
}

func (l *Lifecycle) OnBegin() { l.Begins++ }
func (l *Lifecycle) OnEnd() {
	l.Ends++
	if l.Journal != nil {
		l.Journal.add("%s.end", l.Name)
	}
}

func (l *Lifecycle) OnTick(float32) {
	if l.Journal != nil {
		l.Journal.add("%s.tick", l.Name)
	}
}

func (l *Lifecycle) OnLateTick(float32) {
	if l.Journal != nil {
		l.Journal.add("%s.late", l.Name)
	}
}

func (l *Lifecycle) OnPreRender(float32) {
	if l.Journal != nil {
		l.Journal.add("%s.prerender", l.Name)
	}
}

// Other is a second lifecycle type with a higher identity than Lifecycle.
type Other struct {
	Lifecycle
}

// Silent implements Ticker but never opts in.
type Silent struct {
	ecs.ComponentBase
	Ticks int
}

func (s *Silent) OnTick(float32) { s.Ticks++ }

// Spawner adds a Silent component to its own entity the first time it ticks.
type Spawner struct {
	ecs.ComponentBase
	Spawned *Silent
}

func (s *Spawner) DefaultPhases() ecs.Phases { return ecs.PhasesOf(ecs.PhaseTick) }

func (s *Spawner) OnTick(float32) {
	if s.Spawned == nil {
		s.Spawned = ecs.Add[*Silent](s.Entity())
		s.Spawned.SetPhase(ecs.PhaseTick, true)
	}
}

func newTestRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.IdentityOf[*Position](r)
	ecs.IdentityOf[*Health](r)
	ecs.RegisterPolymorphic[Base, *Leaf](r)
	ecs.RegisterPolymorphic[Base, *Branch](r)
	ecs.IdentityOf[*Lifecycle](r)
	ecs.IdentityOf[*Other](r)
	return r
}
