package ecs

import "fmt"

type stagedComponent struct {
	id    ComponentId
	write entityWriter // nil for tags
}

// EntityBuilder stages the components of one new entity. Nothing touches the
// World until Create, which is the only place an EntityId is produced. A
// builder is single use.
//
// Example usage:
//
//	b := world.BeginEntity().Add(player)
//	ecs.With(b, position, Position{X: 10})
//	id := b.Create()
type EntityBuilder struct {
	world  *World
	mask   Mask
	staged []stagedComponent
	built  bool
}

// BeginEntity returns a fresh builder bound to w. Add resolves defaults when
// it is called, so a builder should be finished before w registers anything
// else.
func (w *World) BeginEntity() *EntityBuilder {
	return &EntityBuilder{world: w}
}

func (b *EntityBuilder) ensureOpen(op string) {
	if b.built {
		panic(fmt.Errorf("%w: %s called after Create", ErrBuilderUsed, op))
	}
}

func (b *EntityBuilder) stage(id ComponentId, write entityWriter) {
	if b.mask.Has(id) {
		for i := range b.staged {
			if b.staged[i].id == id {
				b.staged[i].write = write
				return
			}
		}
	}
	b.mask |= Bit(id)
	b.staged = append(b.staged, stagedComponent{id: id, write: write})
}

// With stages value for data component c. Staging the same component again
// replaces the earlier value.
func With[T any](b *EntityBuilder, c Component[T], value T) *EntityBuilder {
	b.ensureOpen("With")
	b.stage(c.id, storageOf(b.world.registry, c).writer(value))
	return b
}

// Add stages h without an explicit value: tags record membership, data
// components get the value from their registered defaults function.
func (b *EntityBuilder) Add(h Handle) *EntityBuilder {
	b.ensureOpen("Add")
	b.world.registry.check(h)
	entry := b.world.registry.entry(h.Id())
	var write entityWriter
	if entry.defaults != nil {
		write = entry.defaults()
	}
	b.stage(h.Id(), write)
	return b
}

// Mask returns the mask the entity will be created with.
func (b *EntityBuilder) Mask() Mask {
	return b.mask
}

// Create commits the staged components and returns the new entity's id. Every
// cached query whose predicate the entity satisfies sees it immediately.
func (b *EntityBuilder) Create() EntityId {
	b.ensureOpen("Create")
	b.built = true
	return b.world.commit(b.mask, b.staged)
}
