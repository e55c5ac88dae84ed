package debugui

import (
	"github.com/plus3/maskecs/ecs"
)

type EntityBrowserWindow struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterQuery        *ecs.QueryStats
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorWindow struct {
	selectedEntityId ecs.EntityId
}

type QueryCacheWindow struct {
	cache         *QueryCacheViewerCache
	selected      *ecs.QueryStats
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	timer         *FrameTimer
}

type QueryDebuggerWindow struct {
	modes map[ecs.ComponentId]ecs.Modifier
}

// Handles are the components registered by RegisterDebugUIComponents.
type Handles struct {
	Item          ecs.Component[ImguiItem]
	EntityBrowser ecs.Component[EntityBrowserWindow]
	Inspector     ecs.Component[ComponentInspectorWindow]
	QueryCache    ecs.Component[QueryCacheWindow]
	Performance   ecs.Component[PerformanceStatsWindow]
	QueryDebugger ecs.Component[QueryDebuggerWindow]
}
