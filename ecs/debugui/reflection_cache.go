package debugui

import (
	"reflect"
	"strings"
	"sync"

	"github.com/ReeCocho/Snek/ecs"
)

// FieldInfo describes one inspectable field of a component struct.
type FieldInfo struct {
	Name     string
	Index    int
	Type     reflect.Type // element type when Pointer is set
	Pointer  bool
	ReadOnly bool
}

// Kind returns the kind of the field, looking through pointers.
func (f FieldInfo) Kind() reflect.Kind {
	return f.Type.Kind()
}

// ReflectionCache remembers the inspectable fields of component structs.
//
// Unexported fields and the embedded ecs.ComponentBase are skipped. An `inspect` struct
// tag renames a field, hides it with "-" or marks it ",readonly":
//
//	Hits  int    `inspect:"Hit count,readonly"`
//	cache []byte `inspect:"-"`
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

var componentBaseType = reflect.TypeFor[ecs.ComponentBase]()

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// Fields returns the inspectable fields of t. Pointer types are resolved to their element.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.fields.LoadOrStore(t, scanFields(t))
	return actual.([]FieldInfo)
}

func scanFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type == componentBaseType {
			continue
		}
		info := FieldInfo{Name: sf.Name, Index: i, Type: sf.Type}
		if tag, ok := sf.Tag.Lookup("inspect"); ok {
			if tag == "-" {
				continue
			}
			label, opts, _ := strings.Cut(tag, ",")
			if label != "" {
				info.Name = label
			}
			info.ReadOnly = opts == "readonly"
		}
		if info.Type.Kind() == reflect.Pointer {
			info.Type = info.Type.Elem()
			info.Pointer = true
		}
		out = append(out, info)
	}
	return out
}

var globalReflectionCache = NewReflectionCache()
