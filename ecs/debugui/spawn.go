package debugui

import "github.com/ReeCocho/Snek/ecs"

// Spawn adds an entity carrying an Inspector to scene and stores an InputState resource
// the inspector keeps up to date.
func Spawn(scene *ecs.Scene) *Inspector {
	if _, ok := ecs.Resource[*InputState](scene); !ok {
		ecs.SetResource(scene, &InputState{})
	}
	return ecs.Add[*Inspector](scene.Create())
}
