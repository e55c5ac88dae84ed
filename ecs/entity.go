package ecs

// EntityId identifies an entity within one World. Ids are handed out
// monotonically starting at 1 and are never reused.
type EntityId uint32

// NoEntity is the zero EntityId. It is never issued.
const NoEntity EntityId = 0

// entitySlot is the entity table row for one id. Destroyed entities keep their
// slot forever with alive=false.
type entitySlot struct {
	mask   Mask
	alive  bool
	queued bool
}

// entityStore owns the slot table. Slot 0 backs NoEntity and is never alive.
type entityStore struct {
	slots []entitySlot
	live  int
}

func newEntityStore(capacity int) *entityStore {
	slots := make([]entitySlot, 1, capacity+1)
	return &entityStore{slots: slots}
}

// allocate appends a live slot with the given mask and returns its id.
func (s *entityStore) allocate(mask Mask) EntityId {
	id := EntityId(len(s.slots))
	s.slots = append(s.slots, entitySlot{mask: mask, alive: true})
	s.live++
	return id
}

func (s *entityStore) get(id EntityId) (*entitySlot, bool) {
	if id == NoEntity || int(id) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[id]
	return slot, slot.alive
}

// free turns id's slot into a permanent hole.
func (s *entityStore) free(id EntityId) {
	slot := &s.slots[id]
	if !slot.alive {
		return
	}
	slot.alive = false
	slot.queued = false
	slot.mask = 0
	s.live--
}

// each visits live entities in id order.
func (s *entityStore) each(fn func(EntityId, Mask) bool) {
	for i := 1; i < len(s.slots); i++ {
		if !s.slots[i].alive {
			continue
		}
		if !fn(EntityId(i), s.slots[i].mask) {
			return
		}
	}
}

// Alive reports whether id refers to a live entity. Entities queued for
// destruction stay alive until the next tick begins.
func (w *World) Alive(id EntityId) bool {
	_, ok := w.entities.get(id)
	return ok
}

// Mask returns the component mask of a live entity.
func (w *World) Mask(id EntityId) (Mask, bool) {
	slot, ok := w.entities.get(id)
	if !ok {
		return 0, false
	}
	return slot.mask, true
}

// Has reports whether the live entity id carries component h.
func (w *World) Has(id EntityId, h Handle) bool {
	w.registry.check(h)
	slot, ok := w.entities.get(id)
	return ok && slot.mask.Has(h.Id())
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.live
}

// Entities visits every live entity with its mask in id order.
func (w *World) Entities(fn func(EntityId, Mask) bool) {
	w.entities.each(fn)
}

func (w *World) countCarriers(id ComponentId) int {
	count := 0
	w.entities.each(func(_ EntityId, mask Mask) bool {
		if mask.Has(id) {
			count++
		}
		return true
	})
	return count
}
