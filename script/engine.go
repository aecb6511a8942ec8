// Package script lets components delegate their behaviour to Lua functions.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/input"
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM bound to one scene.
// Single-goroutine access only (the goroutine ticking the scene).
type Engine struct {
	vm    *lua.LState
	scene *ecs.Scene
	log   *zap.Logger
}

// NewEngine creates a VM exposing the scene API and registers itself as a scene resource.
func NewEngine(scene *ecs.Scene, log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, scene: scene, log: log}
	vm.SetGlobal("transform_get", vm.NewFunction(e.transformGet))
	vm.SetGlobal("transform_set_position", vm.NewFunction(e.transformSetPosition))
	vm.SetGlobal("transform_set_rotation", vm.NewFunction(e.transformSetRotation))
	vm.SetGlobal("input_axis", vm.NewFunction(e.inputAxis))
	vm.SetGlobal("log", vm.NewFunction(e.logMessage))

	ecs.SetResource(scene, e)
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadDir runs every .lua file in dir. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return fmt.Errorf("read script dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// Has reports whether a global function named name is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Call invokes the global function name. Missing functions are skipped and report false.
func (e *Engine) Call(name string, args ...lua.LValue) (bool, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return false, nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return true, fmt.Errorf("call %s: %w", name, err)
	}
	return true, nil
}

func (e *Engine) entity(L *lua.LState, n int) ecs.Entity {
	index := L.CheckInt(n)
	ent, ok := e.scene.EntityAt(uint32(index))
	if index < 0 || !ok {
		L.ArgError(n, fmt.Sprintf("entity %d is not alive", index))
	}
	return ent
}

// transform_get(entity) -> {x, y, z, rotation}
func (e *Engine) transformGet(L *lua.LState) int {
	t := e.entity(L, 1).Transform()
	pos := t.Position()

	tbl := L.NewTable()
	tbl.RawSetString("x", lua.LNumber(pos.X()))
	tbl.RawSetString("y", lua.LNumber(pos.Y()))
	tbl.RawSetString("z", lua.LNumber(pos.Z()))
	tbl.RawSetString("rotation", lua.LNumber(t.Rotation()))
	L.Push(tbl)
	return 1
}

// transform_set_position(entity, x, y, z)
func (e *Engine) transformSetPosition(L *lua.LState) int {
	t := e.entity(L, 1).Transform()
	t.SetPosition(mgl32.Vec3{
		float32(L.CheckNumber(2)),
		float32(L.CheckNumber(3)),
		float32(L.OptNumber(4, 0)),
	})
	return 0
}

// transform_set_rotation(entity, degrees)
func (e *Engine) transformSetRotation(L *lua.LState) int {
	e.entity(L, 1).Transform().SetRotation(float32(L.CheckNumber(2)))
	return 0
}

// input_axis(name) -> number, zero when the scene has no input
func (e *Engine) inputAxis(L *lua.LState) int {
	name := L.CheckString(1)
	in, ok := ecs.Resource[*input.Input](e.scene)
	if !ok {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(in.Axis(name)))
	return 1
}

// log(message)
func (e *Engine) logMessage(L *lua.LState) int {
	e.log.Info(L.CheckString(1), zap.String("source", "lua"))
	return 0
}
