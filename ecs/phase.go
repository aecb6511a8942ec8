package ecs

//go:generate stringer -type=Phase -trimprefix=Phase

// Phase is one of the dispatch points a component can take part in.
type Phase uint8

const (
	PhaseBegin Phase = iota
	PhaseTick
	PhaseLateTick
	PhasePreRender
	PhaseEnd
)

const numPhases = 5

// Phases is a set of phases a component participates in.
type Phases uint8

// PhasesOf builds a phase set from the given phases.
func PhasesOf(phases ...Phase) Phases {
	var set Phases
	for _, p := range phases {
		set |= p.mask()
	}
	return set
}

func (p Phase) mask() Phases {
	return 1 << p
}

// Has reports whether p is part of the set.
func (s Phases) Has(p Phase) bool {
	return s&p.mask() != 0
}

// With returns the set with p added.
func (s Phases) With(p Phase) Phases {
	return s | p.mask()
}

// Without returns the set with p removed.
func (s Phases) Without(p Phase) Phases {
	return s &^ p.mask()
}

// Beginner is implemented by components that run code when attached.
type Beginner interface {
	OnBegin()
}

// Ticker is implemented by components that run once per tick.
type Ticker interface {
	OnTick(deltaTime float32)
}

// LateTicker is implemented by components that run after every OnTick of the tick.
type LateTicker interface {
	OnLateTick(deltaTime float32)
}

// PreRenderer is implemented by components that run after OnLateTick, before the frame
// is handed to the renderer.
type PreRenderer interface {
	OnPreRender(deltaTime float32)
}

// Ender is implemented by components that release resources when removed.
type Ender interface {
	OnEnd()
}

// PhaseDefaulter lets a component type declare the phases new instances start with.
type PhaseDefaulter interface {
	DefaultPhases() Phases
}
