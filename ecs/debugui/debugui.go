// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the end of the
// tick. It also updates the ImguiInputState singleton with current input
// capture state.
type ImguiSystem struct {
	Items      ecs.Component[ImguiItem]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{i.Items}
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	items := ecs.FieldOf(frame, i.Items)
	for _, id := range frame.Entities {
		if item := items.Get(id); item.Render != nil {
			frame.Defer(item.Render)
		}
	}
}
