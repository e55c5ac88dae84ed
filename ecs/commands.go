package ecs

import (
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// commands buffers the deferred work of a World: entity destructions, applied
// when the next tick begins, and callbacks, run when the current tick ends.
// Nothing a system does through it is visible to the systems still running in
// the same tick.
type commands struct {
	destroys []EntityId
	defers   []func()
	dead     *intmap.Map[EntityId, struct{}]
}

func newCommands() *commands {
	return &commands{
		dead: intmap.New[EntityId, struct{}](64),
	}
}

// Destroy queues id for removal at the start of the next tick. Until then the
// entity stays alive and keeps matching every query it matched before.
// Destroying a dead, unknown or already queued entity does nothing.
func (w *World) Destroy(id EntityId) {
	slot, ok := w.entities.get(id)
	if !ok {
		w.log.Debug("destroy ignored, entity not alive", zap.Uint32("entity", uint32(id)))
		return
	}
	if slot.queued {
		return
	}
	slot.queued = true
	w.commands.destroys = append(w.commands.destroys, id)
}

// PendingDestroy returns the number of entities waiting to be purged.
func (w *World) PendingDestroy() int {
	return len(w.commands.destroys)
}

// purge applies queued destructions: storage entries go first, then cache
// memberships, then the slots themselves.
func (w *World) purge() {
	queue := w.commands.destroys
	if len(queue) == 0 {
		return
	}

	dead := w.commands.dead
	dead.Clear()

	var deadMasks Mask
	for _, id := range queue {
		mask := w.entities.slots[id].mask
		deadMasks |= mask
		dead.Put(id, struct{}{})

		mask.Each(func(cid ComponentId) {
			if storage := w.registry.entries[cid].storage; storage != nil {
				storage.remove(id)
			}
		})
	}

	w.queries.prune(deadMasks, func(id EntityId) bool {
		_, ok := dead.Get(id)
		return ok
	})

	for _, id := range queue {
		w.entities.free(id)
	}

	w.log.Debug("purged destroyed entities",
		zap.Int("count", len(queue)),
		zap.Uint64("tick", w.tick),
		zap.Int("live", w.entities.live),
	)

	w.commands.destroys = queue[:0]
}

// runDefers runs callbacks queued during the tick. Callbacks queued by a
// callback run in the same pass.
func (w *World) runDefers() {
	for i := 0; i < len(w.commands.defers); i++ {
		w.commands.defers[i]()
	}
	clear(w.commands.defers)
	w.commands.defers = w.commands.defers[:0]
}
