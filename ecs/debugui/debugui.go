// Package debugui draws Dear ImGui windows for inspecting a running scene: an entity
// browser, a component inspector, a type registry viewer, a type query tool and phase
// timings. Everything renders from the pre-render phase, so the host must begin an imgui
// frame before ticking the scene and end it afterwards.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	ecs.ComponentBase

	Render func()
}

func (i *ImguiItem) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhasePreRender)
}

func (i *ImguiItem) OnPreRender(float32) {
	if i.Render != nil {
		i.Render()
	}
}

// InputState tracks Dear ImGui's input capture state. Spawn stores one as a scene
// resource; game components can check it before reacting to the mouse or keyboard.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func (s *InputState) update() {
	io := imgui.CurrentIO()
	s.WantCaptureMouse = io.WantCaptureMouse()
	s.WantCaptureKeyboard = io.WantCaptureKeyboard()
}
