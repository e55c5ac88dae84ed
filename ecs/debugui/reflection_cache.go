package debugui

import (
	"reflect"
	"sync"
)

// widget is the control the inspector draws for a field.
type widget uint8

const (
	widgetText widget = iota // printed with %v
	widgetInt
	widgetUint
	widgetFloat
	widgetBool
	widgetString
	widgetStruct
	widgetLen  // slices, arrays and maps show their length
	widgetFunc // callbacks such as ImguiItem.Render show whether they are set
)

func widgetFor(t reflect.Type) widget {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return widgetInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return widgetUint
	case reflect.Float32, reflect.Float64:
		return widgetFloat
	case reflect.Bool:
		return widgetBool
	case reflect.String:
		return widgetString
	case reflect.Struct:
		return widgetStruct
	case reflect.Slice, reflect.Array, reflect.Map:
		return widgetLen
	case reflect.Func:
		return widgetFunc
	default:
		return widgetText
	}
}

// FieldInfo describes one exported field of a component type. A component
// whose type is not a struct is described by a single field named "value"
// with Index -1.
type FieldInfo struct {
	Name    string
	Type    reflect.Type // the pointed-to type when Pointer is set
	Index   int
	Pointer bool
	Widget  widget
}

// Editable reports whether the inspector offers an input for the field.
func (f FieldInfo) Editable() bool {
	return f.Widget >= widgetInt && f.Widget <= widgetString
}

// value returns the field inside v, following a non-nil pointer.
func (f FieldInfo) value(v reflect.Value) reflect.Value {
	if f.Index >= 0 {
		v = v.Field(f.Index)
	}
	if f.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// ReflectionCache memoizes component layouts by type so the inspector does
// not walk reflect.Type every frame.
type ReflectionCache struct {
	mu      sync.RWMutex
	layouts map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		layouts: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields returns the layout of t, computing it on first use.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	fields, ok := rc.layouts[t]
	rc.mu.RUnlock()
	if ok {
		return fields
	}

	fields = layoutOf(t)
	rc.mu.Lock()
	if existing, ok := rc.layouts[t]; ok {
		fields = existing
	} else {
		rc.layouts[t] = fields
	}
	rc.mu.Unlock()
	return fields
}

func layoutOf(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return []FieldInfo{describe("value", -1, t)}
	}
	fields := make([]FieldInfo, 0, t.NumField())
	for i := range t.NumField() {
		if sf := t.Field(i); sf.IsExported() {
			fields = append(fields, describe(sf.Name, i, sf.Type))
		}
	}
	return fields
}

func describe(name string, index int, t reflect.Type) FieldInfo {
	info := FieldInfo{Name: name, Index: index, Type: t}
	if t.Kind() == reflect.Pointer {
		info.Pointer = true
		info.Type = t.Elem()
	}
	info.Widget = widgetFor(info.Type)
	return info
}

var globalReflectionCache = NewReflectionCache()
