package debugui

import (
	"github.com/ReeCocho/Snek/ecs"
)

// Inspector draws every debug window for its scene during the pre-render phase. A click
// in the type viewer filters the entity browser and a click in the query results selects
// that entity.
type Inspector struct {
	ecs.ComponentBase

	Visible bool

	Browser    *EntityBrowser
	Components *ComponentInspector
	Types      *TypeViewer
	Stats      *PerformanceStats
	Queries    *QueryDebugger

	input *InputState
}

func (in *Inspector) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhasePreRender)
}

func (in *Inspector) OnBegin() {
	in.Visible = true
	in.Browser = NewEntityBrowser(100)
	in.Components = NewComponentInspector()
	in.Types = NewTypeViewer()
	in.Stats = NewPerformanceStats(120)
	in.Queries = NewQueryDebugger()
	in.input, _ = ecs.Resource[*InputState](in.Scene())
}

func (in *Inspector) OnPreRender(dt float32) {
	if in.input != nil {
		in.input.update()
	}
	in.Stats.Record(dt)
	if !in.Visible {
		return
	}

	scene := in.Scene()
	in.Browser.Render(scene)
	selected, ok := in.Browser.Selected()
	in.Components.Render(scene, selected, ok)
	if id := in.Types.Render(scene); id != nil {
		in.Browser.FilterType(*id)
	}
	if e, ok := in.Queries.Render(scene); ok {
		in.Browser.Select(e)
	}
	in.Stats.Render(scene)
}
