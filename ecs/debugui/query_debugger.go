package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
)

// QueryDebugger finds the entities holding a component for every selected identity.
// Lookups are polymorphic, so selecting an abstract type matches its children.
type QueryDebugger struct {
	selected   map[ecs.TypeID]bool
	maxResults int
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selected:   make(map[ecs.TypeID]bool),
		maxResults: 100,
	}
}

// Render returns an entity the user clicked in the result list.
func (qd *QueryDebugger) Render(scene *ecs.Scene) (ecs.Entity, bool) {
	var clicked ecs.Entity
	var ok bool

	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return clicked, ok
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for info := range scene.Registry().Types() {
		selected := qd.selected[info.ID]
		if imgui.Checkbox(info.Name, &selected) {
			qd.Toggle(info.ID, selected)
		}
	}

	imgui.Separator()

	ids := qd.Selected()
	if len(ids) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return clicked, ok
	}

	matches := matchEntities(scene, ids)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		for i, e := range matches {
			if i == qd.maxResults {
				imgui.Text(fmt.Sprintf("... %d more", len(matches)-i))
				break
			}
			if imgui.SelectableBool(e.String()) {
				clicked, ok = e, true
			}
		}
		imgui.TreePop()
	}

	imgui.End()
	return clicked, ok
}

func (qd *QueryDebugger) Toggle(id ecs.TypeID, on bool) {
	if on {
		qd.selected[id] = true
	} else {
		delete(qd.selected, id)
	}
}

// Selected returns the selected identities in ascending order.
func (qd *QueryDebugger) Selected() []ecs.TypeID {
	var ids []ecs.TypeID
	for id := range qd.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// matchEntities returns the live entities that have a component satisfying every id.
func matchEntities(scene *ecs.Scene, ids []ecs.TypeID) []ecs.Entity {
	var out []ecs.Entity
	for e := range scene.Entities() {
		all := true
		for _, id := range ids {
			if _, ok := scene.GetComponent(e, id); !ok {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
