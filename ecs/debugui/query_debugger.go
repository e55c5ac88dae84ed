package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

func NewQueryDebuggerWindow() QueryDebuggerWindow {
	return QueryDebuggerWindow{
		modes: make(map[ecs.ComponentId]ecs.Modifier),
	}
}

// Masks turns the picked components into a query predicate. Optional picks
// are listed for reference and do not filter.
func (qd *QueryDebuggerWindow) Masks() (require, exclude ecs.Mask) {
	for id, mode := range qd.modes {
		switch mode {
		case ecs.Required:
			require |= ecs.Bit(id)
		case ecs.Excluded:
			exclude |= ecs.Bit(id)
		}
	}
	return require, exclude
}

// SetMode picks component id with the given modifier.
func (qd *QueryDebuggerWindow) SetMode(id ecs.ComponentId, mode ecs.Modifier) {
	qd.modes[id] = mode
}

// Clear drops every pick.
func (qd *QueryDebuggerWindow) Clear() {
	clear(qd.modes)
}

// Run executes the picked query against w.
func (qd *QueryDebuggerWindow) Run(w *ecs.World) []ecs.EntityId {
	require, exclude := qd.Masks()
	return w.QueryMask(require, exclude)
}

func (qd *QueryDebuggerWindow) Render(w *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Pick components:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.Clear()
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryPickTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Require")
		imgui.TableSetupColumn("Maybe")
		imgui.TableSetupColumn("Not")
		imgui.TableHeadersRow()

		for _, info := range w.Components() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(info.Name)

			mode, picked := qd.modes[info.Id]
			for _, m := range []ecs.Modifier{ecs.Required, ecs.Optional, ecs.Excluded} {
				imgui.TableNextColumn()
				on := picked && mode == m
				if imgui.Checkbox(fmt.Sprintf("##%s-%s", info.Name, m), &on) {
					if on {
						qd.modes[info.Id] = m
					} else {
						delete(qd.modes, info.Id)
					}
				}
			}
		}

		imgui.EndTable()
	}

	imgui.Separator()

	if len(qd.modes) == 0 {
		imgui.Text("No components picked")
		imgui.End()
		return
	}

	require, exclude := qd.Masks()
	matches := qd.Run(w)

	imgui.Text(fmt.Sprintf("Require: %s", joinOrDash(componentNames(w, require))))
	imgui.Text(fmt.Sprintf("Exclude: %s", joinOrDash(componentNames(w, exclude))))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		const limit = 200
		shown := matches[:min(len(matches), limit)]
		ids := make([]string, len(shown))
		for i, id := range shown {
			ids[i] = fmt.Sprintf("%d", id)
		}
		imgui.Text(strings.Join(ids, " "))
		if len(matches) > limit {
			imgui.Text(fmt.Sprintf("... and %d more", len(matches)-limit))
		}
		imgui.TreePop()
	}

	imgui.End()
}
