package ecs

import (
	"fmt"
	"reflect"
)

// UpdateFrame is what a system sees while it runs: the World, the entities
// matching its requirements, and one accessor per data requirement.
//
// Accessors are numbered in requirement declaration order, skipping tags and
// excluded components. For requirements {A, Maybe(B), Not(C), T} where T is a
// tag, Field 0 reads A and Field 1 reads B.
type UpdateFrame struct {
	World    *World
	Entities []EntityId
	Tick     uint64
	System   string
	fields   []frameField
}

type frameField struct {
	id       ComponentId
	modifier Modifier
	storage  iComponentStorage
}

// NumFields returns the number of accessors available.
func (f *UpdateFrame) NumFields() int {
	return len(f.fields)
}

// Destroy queues id for removal at the start of the next tick.
func (f *UpdateFrame) Destroy(id EntityId) {
	f.World.Destroy(id)
}

// Defer queues fn to run after the last system of the current tick.
func (f *UpdateFrame) Defer(fn func()) {
	f.World.commands.defers = append(f.World.commands.defers, fn)
}

// Accessor reads and writes one data component by entity id.
type Accessor[T any] struct {
	id       ComponentId
	modifier Modifier
	storage  *componentStorage[T]
}

// Field returns the accessor at position i.
func Field[T any](frame *UpdateFrame, i int) Accessor[T] {
	if i < 0 || i >= len(frame.fields) {
		panic(fmt.Errorf("%w: system %q has %d fields, asked for %d",
			ErrFieldType, frame.System, len(frame.fields), i))
	}
	return newAccessor[T](frame, frame.fields[i])
}

// FieldOf returns the accessor for component c, which must be a non-excluded
// requirement of the running system.
func FieldOf[T any](frame *UpdateFrame, c Component[T]) Accessor[T] {
	for _, field := range frame.fields {
		if field.id == c.id && c.reg == frame.World.registry {
			return newAccessor[T](frame, field)
		}
	}
	panic(fmt.Errorf("%w: system %q does not read %v", ErrFieldType, frame.System, c))
}

func newAccessor[T any](frame *UpdateFrame, field frameField) Accessor[T] {
	storage, ok := field.storage.(*componentStorage[T])
	if !ok {
		panic(fmt.Errorf("%w: field %q of system %q does not store %s",
			ErrFieldType, frame.World.ComponentName(field.id), frame.System, reflect.TypeFor[T]()))
	}
	return Accessor[T]{id: field.id, modifier: field.modifier, storage: storage}
}

// Get returns id's value, or nil when id does not carry the component. Only
// optional accessors can observe nil for entities of the frame.
func (a Accessor[T]) Get(id EntityId) *T {
	return a.storage.get(id)
}

// Lookup is Get with an explicit presence flag.
func (a Accessor[T]) Lookup(id EntityId) (*T, bool) {
	ptr := a.storage.get(id)
	return ptr, ptr != nil
}

// Set overwrites id's value. It never adds the component to an entity that
// lacks it and reports whether a value was written.
func (a Accessor[T]) Set(id EntityId, value T) bool {
	ptr := a.storage.get(id)
	if ptr == nil {
		return false
	}
	*ptr = value
	return true
}

// Optional reports whether the accessor comes from a Maybe requirement.
func (a Accessor[T]) Optional() bool {
	return a.modifier == Optional
}

// Component returns the id of the component the accessor reads.
func (a Accessor[T]) Component() ComponentId {
	return a.id
}
