package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type Score int32

// testWorld bundles a world with the handles registered by newTestWorld.
type testWorld struct {
	*ecs.World
	Position ecs.Component[Position]
	Velocity ecs.Component[Velocity]
	Health   ecs.Component[Health]
	Name     ecs.Component[Name]
	Score    ecs.Component[Score]
	Player   ecs.Tag
	Frozen   ecs.Tag
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		World:    w,
		Position: ecs.RegisterComponent[Position](w, "position"),
		Velocity: ecs.RegisterComponent[Velocity](w, "velocity"),
		Health: ecs.RegisterComponent(w, "health", func() Health {
			return Health{Current: 100, Max: 100}
		}),
		Name:   ecs.RegisterComponent[Name](w, "name"),
		Score:  ecs.RegisterComponent[Score](w, "score"),
		Player: ecs.RegisterTag(w, "player"),
		Frozen: ecs.RegisterTag(w, "frozen"),
	}
}

// spawn creates an entity with a position and whatever handles are given.
func (tw *testWorld) spawn(x, y float32, extra ...ecs.Handle) ecs.EntityId {
	b := tw.BeginEntity()
	ecs.With(b, tw.Position, Position{X: x, Y: y})
	for _, h := range extra {
		b.Add(h)
	}
	return b.Create()
}

// requirePanicIs runs fn and checks that it panics with an error wrapping target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}

// scan filters every live entity by the predicate without touching the cache.
func scan(w *ecs.World, require, exclude ecs.Mask) []ecs.EntityId {
	var ids []ecs.EntityId
	w.Entities(func(id ecs.EntityId, mask ecs.Mask) bool {
		if mask.Matches(require, exclude) {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}
