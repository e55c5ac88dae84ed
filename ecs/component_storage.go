package ecs

import "github.com/kamstrup/intmap"

const (
	genericBlockSize = 64
)

// componentStorage stores values of type T keyed by entity id. Values live in
// fixed-size blocks that are never moved, so a *T handed out by get stays
// valid until the entry is removed.
type componentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	owners    []*[genericBlockSize]EntityId
	freeSlots []int
	nextIndex int
	index     *intmap.Map[EntityId, int]
}

func newComponentStorage[T any]() *componentStorage[T] {
	return &componentStorage[T]{
		index: intmap.New[EntityId, int](256),
	}
}

func (cs *componentStorage[T]) slot(index int) *T {
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// set writes value for id, reusing the entity's slot when it already has one.
func (cs *componentStorage[T]) set(id EntityId, value T) *T {
	if index, ok := cs.index.Get(id); ok {
		ptr := cs.slot(index)
		*ptr = value
		return ptr
	}

	var index int
	if len(cs.freeSlots) > 0 {
		index = cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.owners = append(cs.owners, new([genericBlockSize]EntityId))
		}
	}

	ptr := cs.slot(index)
	*ptr = value
	cs.owners[index/genericBlockSize][index%genericBlockSize] = id
	cs.index.Put(id, index)
	return ptr
}

// get returns a pointer to id's value, or nil when id has no entry.
func (cs *componentStorage[T]) get(id EntityId) *T {
	index, ok := cs.index.Get(id)
	if !ok {
		return nil
	}
	return cs.slot(index)
}

func (cs *componentStorage[T]) has(id EntityId) bool {
	_, ok := cs.index.Get(id)
	return ok
}

func (cs *componentStorage[T]) getAny(id EntityId) any {
	ptr := cs.get(id)
	if ptr == nil {
		return nil
	}
	return ptr
}

// writer returns an entityWriter that stores value.
func (cs *componentStorage[T]) writer(value T) entityWriter {
	return func(id EntityId) { cs.set(id, value) }
}

// remove zeroes id's slot and returns it to the free list.
func (cs *componentStorage[T]) remove(id EntityId) {
	index, ok := cs.index.Get(id)
	if !ok {
		return
	}
	var zero T
	*cs.slot(index) = zero
	cs.owners[index/genericBlockSize][index%genericBlockSize] = NoEntity
	cs.index.Del(id)
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *componentStorage[T]) len() int {
	return cs.index.Len()
}

// each visits every stored value in slot order.
func (cs *componentStorage[T]) each(fn func(EntityId, *T) bool) {
	for i := 0; i < cs.nextIndex; i++ {
		owner := cs.owners[i/genericBlockSize][i%genericBlockSize]
		if owner == NoEntity {
			continue
		}
		if !fn(owner, cs.slot(i)) {
			return
		}
	}
}
