package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/maskecs/ecs"
)

type QueryCacheInfo struct {
	Stats   ecs.QueryStats
	Require []string
	Exclude []string
}

type QueryCacheViewerCache struct {
	queries        []QueryCacheInfo
	lastQueryCount int
	sortColumn     int
	sortAscending  bool
}

func NewQueryCacheWindow() QueryCacheWindow {
	return QueryCacheWindow{
		cache: &QueryCacheViewerCache{
			sortColumn:     2,
			sortAscending:  false,
			lastQueryCount: -1,
		},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render draws one row per cached mask pair and returns the row clicked this
// frame, if any.
func (qv *QueryCacheWindow) Render(w *ecs.World) *ecs.QueryStats {
	if !imgui.BeginV("Query Cache", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	qv.refresh(w)

	maxMatches := 0
	for _, q := range qv.cache.queries {
		if q.Stats.Matches > maxMatches {
			maxMatches = q.Stats.Matches
		}
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("QueryCacheTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Require")
		imgui.TableSetupColumn("Exclude")
		imgui.TableSetupColumn("Matches")
		imgui.TableSetupColumn("Hits")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			qv.cache.sortColumn = int(spec.ColumnIndex())
			qv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			qv.sortColumn = qv.cache.sortColumn
			qv.sortAscending = qv.cache.sortAscending
			qv.sortQueries()
			sortSpecs.SetSpecsDirty(false)
		}

		var clicked *ecs.QueryStats

		for _, q := range qv.cache.queries {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := qv.selected != nil && qv.selected.Require == q.Stats.Require && qv.selected.Exclude == q.Stats.Exclude
			label := fmt.Sprintf("%s##%v%v", joinOrDash(q.Require), q.Stats.Require, q.Stats.Exclude)
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				stats := q.Stats
				clicked = &stats
				qv.selected = &stats
			}

			imgui.TableNextColumn()
			imgui.Text(joinOrDash(q.Exclude))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", q.Stats.Matches))

			if maxMatches > 0 {
				barWidth := float32(q.Stats.Matches) / float32(maxMatches) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", q.Stats.Hits))
		}

		imgui.EndTable()

		imgui.End()
		return clicked
	}

	imgui.End()
	return nil
}

// refresh rebuilds the rows when a new mask pair was cached and otherwise
// only updates the counters.
func (qv *QueryCacheWindow) refresh(w *ecs.World) {
	stats := w.QueryStats()
	if len(stats) != qv.cache.lastQueryCount {
		qv.cache.lastQueryCount = len(stats)
		qv.cache.queries = make([]QueryCacheInfo, len(stats))
		for i, s := range stats {
			qv.cache.queries[i] = QueryCacheInfo{
				Stats:   s,
				Require: componentNames(w, s.Require),
				Exclude: componentNames(w, s.Exclude),
			}
		}
		qv.sortQueries()
		return
	}

	byKey := make(map[[2]ecs.Mask]ecs.QueryStats, len(stats))
	for _, s := range stats {
		byKey[[2]ecs.Mask{s.Require, s.Exclude}] = s
	}
	for i := range qv.cache.queries {
		q := &qv.cache.queries[i]
		q.Stats = byKey[[2]ecs.Mask{q.Stats.Require, q.Stats.Exclude}]
	}
	if qv.cache.sortColumn >= 2 {
		qv.sortQueries()
	}
}

func (qv *QueryCacheWindow) sortQueries() {
	sort.SliceStable(qv.cache.queries, func(i, j int) bool {
		a, b := qv.cache.queries[i], qv.cache.queries[j]
		if !qv.cache.sortAscending {
			a, b = b, a
		}

		switch qv.cache.sortColumn {
		case 0:
			return strings.Join(a.Require, ",") < strings.Join(b.Require, ",")
		case 1:
			return strings.Join(a.Exclude, ",") < strings.Join(b.Exclude, ",")
		case 3:
			return a.Stats.Hits < b.Stats.Hits
		default:
			return a.Stats.Matches < b.Stats.Matches
		}
	})
}

// componentNames lists the registered names of the bits in m.
func componentNames(w *ecs.World, m ecs.Mask) []string {
	names := make([]string, 0, m.Count())
	m.Each(func(id ecs.ComponentId) {
		names = append(names, w.ComponentName(id))
	})
	return names
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
