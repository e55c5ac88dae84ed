package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Enabled        bool
	Require        Mask
	Exclude        Mask
	LastEntities   int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	lastEntities   int
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type registeredSystem struct {
	name     string
	require  Mask
	exclude  Mask
	update   UpdateFunc
	frame    *UpdateFrame
	disabled bool
	stats    systemStatsInternal
}

// RegisterSystem adds a system that runs fn once per tick over the entities
// matching reqs. Systems run in registration order. The requirement list is
// resolved here, once.
func (w *World) RegisterSystem(name string, reqs []Requirement, fn UpdateFunc) SystemId {
	res := w.registry.resolve(reqs)

	frame := &UpdateFrame{World: w, System: name}
	for _, rq := range res.components {
		if rq.modifier == Excluded {
			continue
		}
		storage := w.registry.entries[rq.id].storage
		if storage == nil {
			continue
		}
		frame.fields = append(frame.fields, frameField{
			id:       rq.id,
			modifier: rq.modifier,
			storage:  storage,
		})
	}

	w.systems = append(w.systems, &registeredSystem{
		name:    name,
		require: res.require,
		exclude: res.exclude,
		update:  fn,
		frame:   frame,
		stats: systemStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	})

	w.log.Debug("registered system",
		zap.String("system", name),
		zap.Stringer("require", res.require),
		zap.Stringer("exclude", res.exclude),
		zap.Int("fields", len(frame.fields)),
	)
	return SystemId(len(w.systems) - 1)
}

// Register adds a System value. Its name is its struct type name and its
// Singleton fields are bound to w.
func (w *World) Register(system System) SystemId {
	w.bindSingletons(system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return w.RegisterSystem(systemType.Name(), system.Requirements(), system.Execute)
}

func (w *World) bindSingletons(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if !strings.HasPrefix(field.Type().Name(), "Singleton[") {
			continue
		}

		bind := field.Addr().MethodByName("Bind")
		if !bind.IsValid() {
			panic("Bind method not found on Singleton field: " + systemValue.Type().Field(i).Name)
		}
		bind.Call([]reflect.Value{reflect.ValueOf(w)})
	}
}

// SetSystemEnabled pauses or resumes a system. Disabled systems are skipped
// by AdvanceTick.
func (w *World) SetSystemEnabled(id SystemId, enabled bool) {
	if int(id) < 0 || int(id) >= len(w.systems) {
		return
	}
	w.systems[id].disabled = !enabled
}

// AdvanceTick runs one tick: destructions queued during the previous tick are
// purged, then every enabled system runs to completion in registration order,
// then deferred callbacks run.
func (w *World) AdvanceTick() {
	w.purge()

	for _, sys := range w.systems {
		if sys.disabled {
			continue
		}

		frame := sys.frame
		frame.Entities = w.queries.filter(w.entities, sys.require, sys.exclude).entities
		frame.Tick = w.tick

		start := time.Now()
		sys.update(frame)
		duration := time.Since(start)

		stats := &sys.stats
		stats.executionCount++
		stats.lastEntities = len(frame.Entities)
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
		frame.Entities = nil
	}

	w.runDefers()
	w.tick++
}

// Run advances w repeatedly at the given interval until the context is
// cancelled. onTick, if set, receives the elapsed seconds before each tick and
// is where a driver updates timing and input singletons.
func (w *World) Run(ctx context.Context, interval time.Duration, onTick func(dt float64)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if onTick != nil {
				onTick(dt)
			}
			w.AdvanceTick()
		}
	}
}

// Stats returns statistics about system execution.
func (w *World) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(w.systems),
		Systems:     make([]SystemStats, len(w.systems)),
	}

	var totalExecs int64
	for i, sys := range w.systems {
		internal := sys.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           sys.name,
			Enabled:        !sys.disabled,
			Require:        sys.require,
			Exclude:        sys.exclude,
			LastEntities:   internal.lastEntities,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
