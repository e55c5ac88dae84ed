package ecs

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// World owns every entity, component storage, cached query and system of one
// simulation. Worlds are independent of each other and are not safe for
// concurrent use.
type World struct {
	registry   *ComponentRegistry
	entities   *entityStore
	queries    *queryCache
	commands   *commands
	systems    []*registeredSystem
	singletons map[reflect.Type]any
	tick       uint64
	log        *zap.Logger
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger routes the World's diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithCapacity preallocates room for n entities.
func WithCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.entities = newEntityStore(n)
		}
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		registry:   newComponentRegistry(),
		entities:   newEntityStore(256),
		queries:    newQueryCache(),
		commands:   newCommands(),
		singletons: make(map[reflect.Type]any),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) registerComponent(entry componentEntry) ComponentId {
	if w.tick > 0 {
		w.log.Warn("component registered after the first tick",
			zap.String("component", entry.name),
			zap.Uint64("tick", w.tick),
		)
	}
	id := w.registry.add(entry)
	w.log.Debug("registered component",
		zap.String("component", entry.name),
		zap.Uint8("bit", uint8(id)),
		zap.Bool("tag", entry.storage == nil),
	)
	return id
}

// commit turns builder output into a live entity.
func (w *World) commit(mask Mask, staged []stagedComponent) EntityId {
	id := w.entities.allocate(mask)
	for _, sc := range staged {
		if sc.write != nil {
			sc.write(id)
		}
	}
	w.queries.insert(id, mask)
	return id
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// Logger returns the World's logger.
func (w *World) Logger() *zap.Logger {
	return w.log
}

// WorldStats is a snapshot of a World's size.
type WorldStats struct {
	Tick             uint64
	EntityCount      int
	HighestEntityId  EntityId
	ComponentCount   int
	SystemCount      int
	QueryCount       int
	PendingDestroy   int
	SingletonCount   int
	SingletonTypes   []string
	ComponentDetails []ComponentInfo
	QueryDetails     []QueryStats
}

// CollectStats gathers a WorldStats snapshot.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		Tick:             w.tick,
		EntityCount:      w.entities.live,
		HighestEntityId:  EntityId(len(w.entities.slots) - 1),
		ComponentCount:   len(w.registry.entries),
		SystemCount:      len(w.systems),
		QueryCount:       len(w.queries.indexes),
		PendingDestroy:   len(w.commands.destroys),
		SingletonCount:   len(w.singletons),
		ComponentDetails: w.Components(),
		QueryDetails:     w.QueryStats(),
	}
	for t := range w.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	slices.Sort(stats.SingletonTypes)
	return stats
}
