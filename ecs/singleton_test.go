package ecs_test

import (
	"testing"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameClock struct {
	Delta float64
	Count int
}

func TestSingletonLifecycle(t *testing.T) {
	w := ecs.NewWorld()

	assert.False(t, ecs.HasSingleton[frameClock](w))
	assert.Nil(t, ecs.GetSingleton[frameClock](w))

	clock := ecs.NewSingleton[frameClock](w)
	require.NotNil(t, clock)
	assert.Zero(t, *clock)

	clock.Count = 3
	assert.Same(t, clock, ecs.GetSingleton[frameClock](w))
	assert.Same(t, clock, ecs.NewSingleton(w, frameClock{Count: 99}))
	assert.Equal(t, 3, clock.Count)

	ecs.RemoveSingleton[frameClock](w)
	assert.False(t, ecs.HasSingleton[frameClock](w))
}

func TestSingletonAccessor(t *testing.T) {
	w := ecs.NewWorld()

	var unbound ecs.Singleton[frameClock]
	assert.Nil(t, unbound.Get())
	assert.False(t, unbound.Exists())

	var acc ecs.Singleton[frameClock]
	acc.Bind(w)
	assert.False(t, acc.Exists())

	ecs.NewSingleton(w, frameClock{Delta: 0.016})
	require.True(t, acc.Exists())
	assert.Equal(t, 0.016, acc.Get().Delta)

	other := ecs.NewWorld()
	ecs.NewSingleton(other, frameClock{Delta: 1})
	acc.Bind(other)
	assert.Equal(t, 1.0, acc.Get().Delta)

	ecs.RemoveSingleton[frameClock](other)
	assert.False(t, acc.Exists())
	assert.Nil(t, acc.Get())

	replacement := ecs.NewSingleton(other, frameClock{Delta: 2})
	require.True(t, acc.Exists())
	assert.Same(t, replacement, acc.Get())
	assert.Equal(t, 2.0, acc.Get().Delta)
}

func TestSingletonsArePerWorld(t *testing.T) {
	a := ecs.NewWorld()
	b := ecs.NewWorld()

	ecs.NewSingleton(a, frameClock{Count: 1})
	assert.False(t, ecs.HasSingleton[frameClock](b))
}
