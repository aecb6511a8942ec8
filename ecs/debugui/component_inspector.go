package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// ComponentInspector shows and edits the components of one entity. Exported fields are
// edited in place through reflection; the Transform is edited through its setters so the
// hierarchy stays consistent.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(scene *ecs.Scene, entity ecs.Entity, selected bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !selected {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", entity.Index()))
	imgui.Separator()

	registry := scene.Registry()
	for c := range scene.Components(entity) {
		name := registry.Info(c.TypeID()).Name
		if c.MarkedForRemoval() {
			name += " (removing)"
		}
		if !imgui.TreeNodeStr(name) {
			continue
		}
		if t, ok := c.(*ecs.Transform); ok {
			ci.renderTransform(t)
		} else {
			ci.renderPhases(c)
			ci.renderComponent(c)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ci *ComponentInspector) renderTransform(t *ecs.Transform) {
	pos := t.LocalPosition()
	if inputFloats("Local Position", pos[:]) {
		t.SetLocalPosition(pos)
	}
	rot := t.LocalRotation()
	imgui.Text("Local Rotation:")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("##rotation", &rot) {
		t.SetLocalRotation(rot)
	}
	scale := t.LocalScale()
	if inputFloats("Local Scale", scale[:]) {
		t.SetLocalScale(scale)
	}

	world := t.Position()
	imgui.Text(fmt.Sprintf("World: (%.2f, %.2f, %.2f) %.1f°", world.X(), world.Y(), world.Z(), t.Rotation()))
	if p, ok := t.Parent(); ok {
		imgui.Text(fmt.Sprintf("Parent: %d", p.Entity().Index()))
		imgui.SameLine()
		if imgui.Button("Detach") {
			t.SetParent(nil)
		}
	}
	imgui.Text(fmt.Sprintf("Children: %d", t.ChildCount()))
}

func (ci *ComponentInspector) renderPhases(c ecs.Component) {
	for p := range ecs.PhaseEnd + 1 {
		on := c.Runs(p)
		if imgui.Checkbox(p.String(), &on) {
			c.SetPhase(p, on)
		}
		if p != ecs.PhaseEnd {
			imgui.SameLine()
		}
	}
}

func (ci *ComponentInspector) renderComponent(component ecs.Component) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	fields := globalReflectionCache.Fields(val.Type())

	for _, field := range fields {
		ci.renderFieldOf(val, field)
	}
}

// renderFieldOf draws field of the struct value owner, disabled when it is read only.
func (ci *ComponentInspector) renderFieldOf(owner reflect.Value, field FieldInfo) {
	fieldVal := owner.Field(field.Index)
	if field.Pointer && !fieldVal.IsNil() {
		fieldVal = fieldVal.Elem()
	}
	if field.ReadOnly {
		imgui.BeginDisabled()
		defer imgui.EndDisabled()
	}
	ci.renderField(field.Name, fieldVal, field)
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Pointer && val.Kind() == reflect.Pointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Array:
		if val.Type() == reflect.TypeFor[mgl32.Vec4]() || val.Type() == reflect.TypeFor[mgl32.Vec3]() || val.Type() == reflect.TypeFor[mgl32.Vec2]() {
			vec := make([]float32, val.Len())
			for i := range vec {
				vec[i] = float32(val.Index(i).Float())
			}
			if inputFloats(name, vec) {
				for i, f := range vec {
					setFloat(val.Index(i), float64(f))
				}
			}
			return
		}
		imgui.Text(fmt.Sprintf("%s: [%d]", name, val.Len()))

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.Fields(val.Type()) {
				ci.renderFieldOf(val, nf)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val))
	}
}

// inputFloats draws one float input per element of v and reports whether any changed.
func inputFloats(name string, v []float32) bool {
	imgui.Text(name + ":")
	changed := false
	for i := range v {
		imgui.SameLine()
		imgui.SetNextItemWidth(80)
		if imgui.InputFloat(fmt.Sprintf("##%s%d", name, i), &v[i]) {
			changed = true
		}
	}
	return changed
}

func setInt(field reflect.Value, value int64) bool {
	if !field.CanSet() || field.OverflowInt(value) {
		return false
	}
	field.SetInt(value)
	return true
}

func setUint(field reflect.Value, value uint64) bool {
	if !field.CanSet() || field.OverflowUint(value) {
		return false
	}
	field.SetUint(value)
	return true
}

func setFloat(field reflect.Value, value float64) bool {
	if !field.CanSet() || field.OverflowFloat(value) {
		return false
	}
	field.SetFloat(value)
	return true
}
