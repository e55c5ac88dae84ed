package ecs_test

import (
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityBuilder(t *testing.T) {
	t.Run("create computes mask and populates storages", func(t *testing.T) {
		tw := newTestWorld()

		b := tw.BeginEntity().Add(tw.Player)
		ecs.With(b, tw.Position, Position{X: 1, Y: 2})
		ecs.With(b, tw.Velocity, Velocity{DX: 3, DY: 4})
		assert.Equal(t, tw.Player.Bit()|tw.Position.Bit()|tw.Velocity.Bit(), b.Mask())

		id := b.Create()
		assert.NotEqual(t, ecs.NoEntity, id)

		mask, ok := tw.Mask(id)
		require.True(t, ok)
		assert.Equal(t, tw.Player.Bit()|tw.Position.Bit()|tw.Velocity.Bit(), mask)
		assert.Equal(t, Velocity{DX: 3, DY: 4}, *ecs.ReadComponent(tw.World, tw.Velocity, id))
		assert.True(t, tw.Has(id, tw.Player))
		assert.False(t, tw.Has(id, tw.Frozen))
	})

	t.Run("ids are monotonic and start at one", func(t *testing.T) {
		tw := newTestWorld()
		first := tw.spawn(0, 0)
		second := tw.spawn(0, 0)
		assert.Equal(t, ecs.EntityId(1), first)
		assert.Equal(t, ecs.EntityId(2), second)

		tw.Destroy(first)
		tw.AdvanceTick()
		third := tw.spawn(0, 0)
		assert.Equal(t, ecs.EntityId(3), third, "destroyed ids are never reused")
	})

	t.Run("staging twice overwrites", func(t *testing.T) {
		tw := newTestWorld()
		b := tw.BeginEntity()
		ecs.With(b, tw.Name, Name{Value: "first"})
		ecs.With(b, tw.Name, Name{Value: "second"})
		id := b.Create()

		assert.Equal(t, "second", ecs.ReadComponent(tw.World, tw.Name, id).Value)
		infos := tw.Components()
		assert.Equal(t, 1, infos[tw.Name.Id()].Count)
	})

	t.Run("add uses registered defaults", func(t *testing.T) {
		tw := newTestWorld()
		id := tw.BeginEntity().Add(tw.Health).Add(tw.Score).Create()

		assert.Equal(t, Health{Current: 100, Max: 100}, *ecs.ReadComponent(tw.World, tw.Health, id))
		assert.Equal(t, Score(0), *ecs.ReadComponent(tw.World, tw.Score, id))
	})

	t.Run("tags write nothing", func(t *testing.T) {
		tw := newTestWorld()
		id := tw.BeginEntity().Add(tw.Player).Add(tw.Frozen).Create()

		mask, _ := tw.Mask(id)
		assert.Equal(t, 2, mask.Count())
		for _, info := range tw.Components() {
			if !info.Tag {
				assert.Zero(t, info.Count, info.Name)
			}
		}
	})

	t.Run("empty entity", func(t *testing.T) {
		tw := newTestWorld()
		id := tw.BeginEntity().Create()

		mask, ok := tw.Mask(id)
		assert.True(t, ok)
		assert.Equal(t, ecs.Mask(0), mask)
		assert.Contains(t, tw.Query(), id)
		assert.NotContains(t, tw.Query(tw.Position), id)
	})

	t.Run("create twice fails", func(t *testing.T) {
		tw := newTestWorld()
		b := tw.BeginEntity().Add(tw.Player)
		b.Create()

		requirePanicIs(t, ecs.ErrBuilderUsed, func() { b.Create() })
		assert.Equal(t, 1, tw.EntityCount())
	})

	t.Run("with after create fails", func(t *testing.T) {
		tw := newTestWorld()
		b := tw.BeginEntity()
		b.Create()

		requirePanicIs(t, ecs.ErrBuilderUsed, func() {
			ecs.With(b, tw.Position, Position{})
		})
		requirePanicIs(t, ecs.ErrBuilderUsed, func() { b.Add(tw.Player) })
	})

	t.Run("builder never touches the world before create", func(t *testing.T) {
		tw := newTestWorld()
		query := tw.Query(tw.Position)
		require.Empty(t, query)

		b := tw.BeginEntity()
		ecs.With(b, tw.Position, Position{})
		assert.Zero(t, tw.EntityCount())
		assert.Empty(t, tw.Query(tw.Position))

		b.Create()
		assert.Len(t, tw.Query(tw.Position), 1)
	})

	t.Run("interface components keep nil values", func(t *testing.T) {
		w := ecs.NewWorld()
		failure := ecs.RegisterComponent[error](w, "failure")

		staged := ecs.With(w.BeginEntity(), failure, nil).Create()
		added := w.BeginEntity().Add(failure).Create()

		for _, id := range []ecs.EntityId{staged, added} {
			assert.True(t, w.Has(id, failure))
			value := ecs.ReadComponent(w, failure, id)
			require.NotNil(t, value, "entity %d carries the bit but no value", id)
			assert.NoError(t, *value)
		}
		infos := w.Components()
		assert.Equal(t, 2, infos[failure.Id()].Count)

		var missing []ecs.EntityId
		w.RegisterSystem("failures", []ecs.Requirement{failure}, func(frame *ecs.UpdateFrame) {
			acc := ecs.FieldOf(frame, failure)
			for _, id := range frame.Entities {
				if acc.Get(id) == nil {
					missing = append(missing, id)
				}
			}
		})
		w.AdvanceTick()
		assert.Empty(t, missing)
	})
}
