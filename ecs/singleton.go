package ecs

import "reflect"

// Singletons are values attached to the World rather than to an entity: frame
// timing, input state, render targets and other shared context. They are the
// channel through which a driver hands per-tick values to systems. Any system
// may read or write them; the World keeps no invariants about their contents.

// NewSingleton attaches a T to w and returns a pointer to it. If a T is
// already attached, it is returned unchanged; otherwise the initializer (or
// the zero value) is stored.
func NewSingleton[T any](w *World, initializer ...T) *T {
	t := reflect.TypeFor[T]()
	if existing, ok := w.singletons[t]; ok {
		return existing.(*T)
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	w.singletons[t] = value
	return value
}

// GetSingleton returns w's T, or nil if none has been attached.
func GetSingleton[T any](w *World) *T {
	existing, ok := w.singletons[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return existing.(*T)
}

// HasSingleton reports whether w has a T attached.
func HasSingleton[T any](w *World) bool {
	_, ok := w.singletons[reflect.TypeFor[T]()]
	return ok
}

// RemoveSingleton detaches w's T.
func RemoveSingleton[T any](w *World) {
	delete(w.singletons, reflect.TypeFor[T]())
}

// Singleton is an accessor for w's T, convenient as a field of a System
// struct. It looks the value up on every call, so it follows RemoveSingleton
// and a later NewSingleton.
type Singleton[T any] struct {
	world *World
}

// Bind points the accessor at w.
func (s *Singleton[T]) Bind(w *World) {
	s.world = w
}

// Get returns the bound World's T, or nil if none is attached.
func (s *Singleton[T]) Get() *T {
	if s.world == nil {
		return nil
	}
	return GetSingleton[T](s.world)
}

// Exists reports whether the bound World has a T attached.
func (s *Singleton[T]) Exists() bool {
	return s.world != nil && HasSingleton[T](s.world)
}
