package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testVec struct {
	X, Y float64
}

func TestComponentStoragePointersSurviveGrowth(t *testing.T) {
	cs := newComponentStorage[testVec]()

	first := cs.set(1, testVec{X: 1})
	for id := EntityId(2); id < 10*genericBlockSize; id++ {
		cs.set(id, testVec{X: float64(id)})
	}

	assert.Same(t, first, cs.get(1))
	assert.Equal(t, 1.0, first.X)
	assert.Len(t, cs.blocks, 10)
	assert.Equal(t, 10*genericBlockSize-1, cs.len())
}

func TestComponentStorageSetOverwrites(t *testing.T) {
	cs := newComponentStorage[testVec]()
	a := cs.set(7, testVec{X: 1})
	b := cs.set(7, testVec{X: 2})

	assert.Same(t, a, b)
	assert.Equal(t, 2.0, cs.get(7).X)
	assert.Equal(t, 1, cs.len())
}

func TestComponentStorageRemoveRecyclesSlots(t *testing.T) {
	cs := newComponentStorage[testVec]()
	cs.set(1, testVec{X: 1})
	cs.set(2, testVec{X: 2})
	cs.set(3, testVec{X: 3})

	cs.remove(2)
	cs.remove(2)
	assert.False(t, cs.has(2))
	assert.Nil(t, cs.get(2))
	assert.Nil(t, cs.getAny(2))
	assert.Equal(t, 2, cs.len())

	cs.set(4, testVec{X: 4})
	assert.Equal(t, 3, cs.nextIndex, "freed slot is reused")

	var visited []EntityId
	cs.each(func(id EntityId, v *testVec) bool {
		visited = append(visited, id)
		assert.Equal(t, float64(id), v.X)
		return true
	})
	assert.ElementsMatch(t, []EntityId{1, 3, 4}, visited)
}

func TestComponentStorageWriter(t *testing.T) {
	cs := newComponentStorage[error]()

	cs.writer(nil)(1)
	require.True(t, cs.has(1))
	require.NotNil(t, cs.get(1))
	assert.NoError(t, *cs.get(1))
	assert.Equal(t, cs.get(1), cs.getAny(1))
	assert.Nil(t, cs.getAny(2))
}

func TestMask(t *testing.T) {
	m := Bit(0) | Bit(3) | Bit(63)

	assert.True(t, m.Has(63))
	assert.False(t, m.Has(1))
	assert.Equal(t, 3, m.Count())
	assert.True(t, m.Contains(Bit(0)|Bit(3)))
	assert.False(t, m.Contains(Bit(0)|Bit(1)))
	assert.True(t, m.Intersects(Bit(3)|Bit(4)))
	assert.Equal(t, "{0,3,63}", m.String())
	assert.Equal(t, "{}", Mask(0).String())

	assert.True(t, m.Matches(Bit(0), Bit(1)))
	assert.False(t, m.Matches(Bit(0), Bit(3)))
	assert.True(t, m.Matches(0, 0))

	var ids []ComponentId
	m.Each(func(id ComponentId) { ids = append(ids, id) })
	assert.Equal(t, []ComponentId{0, 3, 63}, ids)
}

func TestCouldHold(t *testing.T) {
	assert.True(t, couldHold(queryKey{}, Bit(2)))
	assert.True(t, couldHold(queryKey{require: Bit(1) | Bit(2)}, Bit(2)))
	assert.False(t, couldHold(queryKey{require: Bit(1)}, Bit(2)|Bit(3)))
	assert.True(t, couldHold(queryKey{exclude: Bit(1)}, 0))
}

func TestCollectStats(t *testing.T) {
	w := NewWorld()
	pos := RegisterComponent[testVec](w, "pos")
	tag := RegisterTag(w, "tag")
	NewSingleton(w, testVec{X: 1})
	NewSingleton(w, 3)

	b := w.BeginEntity().Add(tag)
	With(b, pos, testVec{})
	id := b.Create()
	w.BeginEntity().Add(tag).Create()
	w.Query(pos)
	w.RegisterSystem("noop", []Requirement{tag}, func(*UpdateFrame) {})
	w.Destroy(id)

	stats := w.CollectStats()
	assert.Equal(t, uint64(0), stats.Tick)
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, EntityId(2), stats.HighestEntityId)
	assert.Equal(t, 2, stats.ComponentCount)
	assert.Equal(t, 1, stats.SystemCount)
	assert.Equal(t, 1, stats.QueryCount)
	assert.Equal(t, 1, stats.PendingDestroy)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs.testVec", "int"}, stats.SingletonTypes)
	require.Len(t, stats.ComponentDetails, 2)
	assert.Equal(t, 2, stats.ComponentDetails[1].Count)

	w.AdvanceTick()
	stats = w.CollectStats()
	assert.Equal(t, 1, stats.EntityCount)
	assert.Equal(t, 0, stats.ComponentDetails[0].Count)
	assert.Equal(t, 1, stats.ComponentDetails[1].Count)
	require.Len(t, stats.QueryDetails, 2)
	assert.Equal(t, 0, stats.QueryDetails[0].Matches)
}
