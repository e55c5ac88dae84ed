package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

func NewComponentInspectorWindow() ComponentInspectorWindow {
	return ComponentInspectorWindow{}
}

func (ci *ComponentInspectorWindow) Render(w *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	mask, ok := w.Mask(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d is not alive", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Mask: %s", mask))
	imgui.Separator()

	mask.Each(func(cid ecs.ComponentId) {
		name := w.ComponentName(cid)
		component := w.ComponentValue(ci.selectedEntityId, cid)
		if component == nil {
			imgui.BulletText(name + " (tag)")
			return
		}

		if imgui.TreeNodeStr(name) {
			ci.renderComponent(component)
			imgui.TreePop()
		}
	})

	imgui.End()
}

// renderComponent draws an editor for the value behind the pointer component.
// Edits write straight through to the stored value.
func (ci *ComponentInspectorWindow) renderComponent(component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	for _, field := range globalReflectionCache.Fields(val.Type()) {
		ci.renderField(field.Name, field.value(val), field)
	}
}

func (ci *ComponentInspectorWindow) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Pointer && val.Kind() == reflect.Pointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	if field.Editable() {
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
	}
	label := fmt.Sprintf("##%s", name)

	switch field.Widget {
	case widgetInt:
		v := int32(val.Int())
		if imgui.InputInt(label, &v) {
			setField(val, int64(v))
		}

	case widgetUint:
		v := int32(val.Uint())
		if imgui.InputInt(label, &v) && v >= 0 {
			setField(val, uint64(v))
		}

	case widgetFloat:
		v := float32(val.Float())
		if imgui.InputFloat(label, &v) {
			setField(val, float64(v))
		}

	case widgetBool:
		v := val.Bool()
		if imgui.Checkbox(label, &v) {
			setField(val, v)
		}

	case widgetString:
		v := val.String()
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case widgetStruct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.Fields(field.Type) {
				ci.renderField(nf.Name, nf.value(val), nf)
			}
			imgui.TreePop()
		}

	case widgetLen:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case widgetFunc:
		imgui.Text(fmt.Sprintf("%s: %s", name, funcLabel(val)))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func funcLabel(val reflect.Value) string {
	if val.IsNil() {
		return "func (unset)"
	}
	return "func"
}

// setField stores value into field, converting between the widths of one
// kind. Unaddressable or unexported fields are left alone.
func setField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		if field.OverflowInt(v) {
			return false
		}
		field.SetInt(v)
	case uint64:
		if field.OverflowUint(v) {
			return false
		}
		field.SetUint(v)
	case float64:
		field.SetFloat(v)
	case bool:
		field.SetBool(v)
	case string:
		field.SetString(v)
	default:
		return false
	}
	return true
}
