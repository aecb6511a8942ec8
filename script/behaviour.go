package script

import (
	"github.com/ReeCocho/Snek/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Behaviour forwards its entity's lifecycle to Lua functions named after it:
// <name>_begin(entity), <name>_tick(entity, dt) and <name>_end(entity). Each is optional.
// Script errors are logged and never stop the scene.
type Behaviour struct {
	ecs.ComponentBase

	Name   string
	engine *Engine
	failed int
}

func (b *Behaviour) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick, ecs.PhaseEnd)
}

func (b *Behaviour) OnBegin() {
	b.engine, _ = ecs.Resource[*Engine](b.Scene())
}

// Bind attaches the behaviour to the script functions prefixed with name and runs
// <name>_begin. A nil engine keeps the one found on the scene.
func (b *Behaviour) Bind(engine *Engine, name string) {
	if engine != nil {
		b.engine = engine
	}
	b.Name = name
	b.call("_begin")
}

// Failures returns how many script calls returned an error.
func (b *Behaviour) Failures() int {
	return b.failed
}

func (b *Behaviour) OnTick(dt float32) {
	b.call("_tick", lua.LNumber(dt))
}

func (b *Behaviour) OnEnd() {
	b.call("_end")
}

func (b *Behaviour) call(suffix string, extra ...lua.LValue) {
	if b.engine == nil || b.Name == "" {
		return
	}
	args := append([]lua.LValue{lua.LNumber(b.Entity().Index())}, extra...)
	if _, err := b.engine.Call(b.Name+suffix, args...); err != nil {
		b.failed++
		b.engine.log.Warn("script call failed",
			zap.String("behaviour", b.Name),
			zap.Stringer("entity", b.Entity()),
			zap.Error(err))
	}
}
