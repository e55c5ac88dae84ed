package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Mask           ecs.Mask
	ComponentNames []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastTick      uint64
	lastCount     int
	lastHighestId ecs.EntityId
	built         bool
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserWindow(maxEntitiesPerPage int) EntityBrowserWindow {
	return EntityBrowserWindow{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserWindow) Render(w *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterQuery = nil
		eb.currentPage = 0
	}
	if eb.filterQuery != nil {
		imgui.Text(fmt.Sprintf("Query: require %s exclude %s", eb.filterQuery.Require, eb.filterQuery.Exclude))
	}

	filteredEntities := eb.getFilteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			filteredEntities = eb.getFilteredEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx, endIdx := eb.pageBounds(len(filteredEntities))
		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Mask.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowserWindow) pageBounds(total int) (int, int) {
	if eb.maxEntitiesPerPage <= 0 {
		return 0, total
	}
	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	if startIdx > total {
		eb.currentPage = 0
		startIdx = 0
	}
	endIdx := min(startIdx+eb.maxEntitiesPerPage, total)
	return startIdx, endIdx
}

// rebuildCacheIfNeeded rebuilds once per tick, and again within a tick when
// entities were created or purged.
func (eb *EntityBrowserWindow) rebuildCacheIfNeeded(w *ecs.World) {
	stats := w.CollectStats()
	if eb.cache.built &&
		eb.cache.lastTick == stats.Tick &&
		eb.cache.lastCount == stats.EntityCount &&
		eb.cache.lastHighestId == stats.HighestEntityId {
		return
	}
	eb.cache.lastTick = stats.Tick
	eb.cache.lastCount = stats.EntityCount
	eb.cache.lastHighestId = stats.HighestEntityId
	eb.rebuildCache(w)
}

func (eb *EntityBrowserWindow) rebuildCache(w *ecs.World) {
	eb.cache.entities = eb.cache.entities[:0]
	names := make(map[ecs.Mask][]string)

	w.Entities(func(id ecs.EntityId, mask ecs.Mask) bool {
		list, ok := names[mask]
		if !ok {
			list = componentNames(w, mask)
			names[mask] = list
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             id,
			Mask:           mask,
			ComponentNames: list,
			ComponentCount: len(list),
		})
		return true
	})
	eb.cache.built = true

	eb.sortEntities()
}

func (eb *EntityBrowserWindow) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		if !eb.cache.sortAscending {
			a, b = b, a
		}

		switch eb.cache.sortColumn {
		case 1:
			return a.Mask < b.Mask
		case 2:
			return strings.Join(a.ComponentNames, ",") < strings.Join(b.ComponentNames, ",")
		case 3:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID < b.ID
		}
	})
}

func (eb *EntityBrowserWindow) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterQuery == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterQuery != nil && !entity.Mask.Matches(eb.filterQuery.Require, eb.filterQuery.Exclude) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentNames, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// SetQueryFilter limits the browser to entities matching q. A nil q clears
// the filter.
func (eb *EntityBrowserWindow) SetQueryFilter(q *ecs.QueryStats) {
	eb.filterQuery = q
	eb.currentPage = 0
}

func (eb *EntityBrowserWindow) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
