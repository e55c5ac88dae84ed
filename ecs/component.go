package ecs

import (
	"fmt"
	"reflect"
)

// ComponentId is the registration index of a component kind inside one World.
// It doubles as the component's bit position in a Mask.
type ComponentId uint8

// Handle identifies a registered component kind. Component[T] and Tag are the
// only implementations; both are plain requirements when used in a query or
// system requirement list.
type Handle interface {
	Requirement
	Id() ComponentId
	Bit() Mask
	registry() *ComponentRegistry
}

// Component is the handle of a data component carrying a T per entity.
type Component[T any] struct {
	id  ComponentId
	reg *ComponentRegistry
}

func (c Component[T]) Id() ComponentId { return c.id }
func (c Component[T]) Bit() Mask { return Bit(c.id) }
func (c Component[T]) registry() *ComponentRegistry { return c.reg }
func (c Component[T]) requirement() requirement { return requirement{id: c.id, reg: c.reg} }

// Tag is the handle of a membership-only component. Tags have no storage.
type Tag struct {
	id  ComponentId
	reg *ComponentRegistry
}

func (t Tag) Id() ComponentId { return t.id }
func (t Tag) Bit() Mask { return Bit(t.id) }
func (t Tag) registry() *ComponentRegistry { return t.reg }
func (t Tag) requirement() requirement { return requirement{id: t.id, reg: t.reg} }

type componentEntry struct {
	name    string
	typ     reflect.Type
	storage iComponentStorage
	// defaults builds a component's default value and returns the writer that
	// stores it; nil for tags
	defaults func() entityWriter
}

// entityWriter stores one staged value for a newly created entity.
type entityWriter func(id EntityId)

// ComponentRegistry manages component registration for one World. Entries are
// indexed by ComponentId, so iteration order is registration order.
type ComponentRegistry struct {
	entries []componentEntry
}

func newComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		entries: make([]componentEntry, 0, MaxComponents),
	}
}

func (r *ComponentRegistry) add(entry componentEntry) ComponentId {
	if len(r.entries) >= MaxComponents {
		panic(fmt.Errorf("%w: cannot register component %q, all %d bits are in use",
			ErrTooManyComponents, entry.name, MaxComponents))
	}
	r.entries = append(r.entries, entry)
	return ComponentId(len(r.entries) - 1)
}

// check panics unless h was issued by this registry.
func (r *ComponentRegistry) check(h Handle) {
	if h == nil || h.registry() != r || int(h.Id()) >= len(r.entries) {
		panic(unregistered(h))
	}
}

func (r *ComponentRegistry) entry(id ComponentId) *componentEntry {
	return &r.entries[id]
}

// RegisterComponent registers a data component of type T and returns its
// handle. The optional defaults function builds the value staged by
// EntityBuilder.Add; without it the zero T is used.
//
// Several components may share a Go type; each registration gets its own bit
// and its own storage.
func RegisterComponent[T any](w *World, name string, defaults ...func() T) Component[T] {
	build := func() T {
		var zero T
		return zero
	}
	if len(defaults) > 0 && defaults[0] != nil {
		build = defaults[0]
	}

	storage := newComponentStorage[T]()
	id := w.registerComponent(componentEntry{
		name:    name,
		typ:     reflect.TypeFor[T](),
		storage: storage,
		defaults: func() entityWriter {
			return storage.writer(build())
		},
	})
	return Component[T]{id: id, reg: w.registry}
}

// RegisterTag registers a membership-only component.
func RegisterTag(w *World, name string) Tag {
	id := w.registerComponent(componentEntry{name: name})
	return Tag{id: id, reg: w.registry}
}

// storageOf returns the typed storage behind c, panicking if c does not belong
// to the registry.
func storageOf[T any](r *ComponentRegistry, c Component[T]) *componentStorage[T] {
	r.check(c)
	storage, ok := r.entry(c.id).storage.(*componentStorage[T])
	if !ok {
		panic(fmt.Errorf("%w: component %q does not store %s",
			ErrFieldType, r.entry(c.id).name, reflect.TypeFor[T]()))
	}
	return storage
}

// ReadComponent returns id's value for c, or nil if the entity does not carry
// it. The pointer may be written through.
func ReadComponent[T any](w *World, c Component[T], id EntityId) *T {
	return storageOf(w.registry, c).get(id)
}

// ComponentInfo describes one registered component kind.
type ComponentInfo struct {
	Id    ComponentId
	Name  string
	Bit   Mask
	Tag   bool
	Type  reflect.Type
	Count int
}

// Components lists every registered component in registration order. Count
// is the number of stored values for data components and the number of live
// carriers for tags.
func (w *World) Components() []ComponentInfo {
	infos := make([]ComponentInfo, len(w.registry.entries))
	for i := range w.registry.entries {
		entry := &w.registry.entries[i]
		id := ComponentId(i)
		info := ComponentInfo{
			Id:   id,
			Name: entry.name,
			Bit:  Bit(id),
			Tag:  entry.storage == nil,
			Type: entry.typ,
		}
		if entry.storage != nil {
			info.Count = entry.storage.len()
		} else {
			info.Count = w.countCarriers(id)
		}
		infos[i] = info
	}
	return infos
}

// ComponentName returns the registered name of id.
func (w *World) ComponentName(id ComponentId) string {
	if int(id) >= len(w.registry.entries) {
		return fmt.Sprintf("component(%d)", id)
	}
	return w.registry.entries[id].name
}

// ComponentValue returns a pointer to the stored value of component cid for
// entity id, or nil for tags and absent entries. Intended for tooling.
func (w *World) ComponentValue(id EntityId, cid ComponentId) any {
	if int(cid) >= len(w.registry.entries) {
		return nil
	}
	storage := w.registry.entries[cid].storage
	if storage == nil {
		return nil
	}
	return storage.getAny(id)
}
