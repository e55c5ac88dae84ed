package ecs

// iComponentStorage is the type-erased view of a data component's storage.
// The World only needs these operations to keep storages in step with entity
// lifecycles; typed access goes through componentStorage[T] directly.
type iComponentStorage interface {
	has(id EntityId) bool
	getAny(id EntityId) any
	remove(id EntityId)
	len() int
}
