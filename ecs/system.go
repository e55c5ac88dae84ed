package ecs

// UpdateFunc is a system's per-tick routine.
type UpdateFunc func(frame *UpdateFrame)

// System represents a behavior that operates on entities with specific components.
// User-defined systems can implement this interface and be added with
// World.Register; custom state fields persist between ticks, and Singleton
// fields are bound to the World automatically.
type System interface {
	Requirements() []Requirement
	Execute(frame *UpdateFrame)
}

// SystemId is the registration index of a system.
type SystemId int
