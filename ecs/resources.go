package ecs

import (
	"fmt"
	"reflect"
)

// SetResource stores value as the scene-wide instance of T, replacing any previous one.
// Resources give components access to shared services such as the renderer without a
// process-wide singleton.
func SetResource[T any](scene *Scene, value T) {
	scene.resources[reflect.TypeFor[T]()] = value
}

// Resource returns the scene-wide instance of T.
func Resource[T any](scene *Scene) (T, bool) {
	v, ok := scene.resources[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustResource is like Resource but panics when T was never set.
func MustResource[T any](scene *Scene) T {
	v, ok := Resource[T](scene)
	if !ok {
		panic(fmt.Sprintf("resource %s not set", reflect.TypeFor[T]()))
	}
	return v
}

// RemoveResource deletes the scene-wide instance of T.
func RemoveResource[T any](scene *Scene) {
	delete(scene.resources, reflect.TypeFor[T]())
}
