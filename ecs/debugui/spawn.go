package debugui

import "github.com/plus3/maskecs/ecs"

func RegisterDebugUIComponents(w *ecs.World) Handles {
	return Handles{
		Item:          ecs.RegisterComponent[ImguiItem](w, "imgui_item"),
		EntityBrowser: ecs.RegisterComponent[EntityBrowserWindow](w, "debug_entity_browser"),
		Inspector:     ecs.RegisterComponent[ComponentInspectorWindow](w, "debug_component_inspector"),
		QueryCache:    ecs.RegisterComponent[QueryCacheWindow](w, "debug_query_cache"),
		Performance:   ecs.RegisterComponent[PerformanceStatsWindow](w, "debug_performance"),
		QueryDebugger: ecs.RegisterComponent[QueryDebuggerWindow](w, "debug_query_debugger"),
	}
}

// SpawnDebugUI creates one entity per debug window. Each carries its window
// state and an ImguiItem that draws it, so ImguiSystem picks them up like any
// other item. Selecting a row in the query cache viewer filters the entity
// browser, and the inspector follows the browser's selection.
func SpawnDebugUI(w *ecs.World, h Handles) {
	browser := spawnWindow(w, h, h.EntityBrowser, NewEntityBrowserWindow(100), func(win *EntityBrowserWindow) {
		win.Render(w)
	})

	spawnWindow(w, h, h.Inspector, NewComponentInspectorWindow(), func(win *ComponentInspectorWindow) {
		selected := ecs.NoEntity
		if b := ecs.ReadComponent(w, h.EntityBrowser, browser); b != nil {
			selected = b.GetSelectedEntity()
		}
		win.Render(w, selected)
	})

	spawnWindow(w, h, h.QueryCache, NewQueryCacheWindow(), func(win *QueryCacheWindow) {
		clicked := win.Render(w)
		if clicked == nil {
			return
		}
		if b := ecs.ReadComponent(w, h.EntityBrowser, browser); b != nil {
			b.SetQueryFilter(clicked)
		}
	})

	spawnWindow(w, h, h.Performance, NewPerformanceStatsWindow(120), func(win *PerformanceStatsWindow) {
		win.Render(w, win.timer.GetDeltaTime())
	})

	spawnWindow(w, h, h.QueryDebugger, NewQueryDebuggerWindow(), func(win *QueryDebuggerWindow) {
		win.Render(w)
	})
}

func spawnWindow[T any](w *ecs.World, h Handles, c ecs.Component[T], state T, render func(*T)) ecs.EntityId {
	var id ecs.EntityId
	b := w.BeginEntity()
	ecs.With(b, c, state)
	ecs.With(b, h.Item, ImguiItem{Render: func() {
		if win := ecs.ReadComponent(w, c, id); win != nil {
			render(win)
		}
	}})
	id = b.Create()
	return id
}
