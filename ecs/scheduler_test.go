package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/maskecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(0, 0)

	var order []string
	for _, name := range []string{"input", "physics", "render"} {
		tw.RegisterSystem(name, []ecs.Requirement{tw.Position}, func(frame *ecs.UpdateFrame) {
			order = append(order, frame.System)
		})
	}

	tw.AdvanceTick()
	tw.AdvanceTick()
	assert.Equal(t, []string{"input", "physics", "render", "input", "physics", "render"}, order)
	assert.Equal(t, uint64(2), tw.Tick())
}

func TestSystemWithNoMatchesStillRuns(t *testing.T) {
	tw := newTestWorld()
	calls := 0
	tw.RegisterSystem("empty", []ecs.Requirement{tw.Player}, func(frame *ecs.UpdateFrame) {
		calls++
		assert.Empty(t, frame.Entities)
	})

	tw.AdvanceTick()
	assert.Equal(t, 1, calls)
}

func TestFieldsFollowDeclarationOrder(t *testing.T) {
	tw := newTestWorld()
	withVel := tw.BeginEntity()
	ecs.With(withVel, tw.Position, Position{X: 1})
	ecs.With(withVel, tw.Velocity, Velocity{DX: 2})
	moving := withVel.Create()
	still := tw.spawn(5, 5)
	tw.spawn(9, 9, tw.Frozen)

	ran := false
	reqs := []ecs.Requirement{tw.Position, ecs.Maybe(tw.Velocity), ecs.Not(tw.Frozen), tw.Player}
	tw.RegisterSystem("move", reqs[:3], func(frame *ecs.UpdateFrame) {
		ran = true
		require.Equal(t, 2, frame.NumFields())
		assert.Equal(t, []ecs.EntityId{moving, still}, frame.Entities)

		pos := ecs.Field[Position](frame, 0)
		vel := ecs.Field[Velocity](frame, 1)
		assert.False(t, pos.Optional())
		assert.True(t, vel.Optional())
		assert.Equal(t, tw.Velocity.Id(), vel.Component())

		for _, id := range frame.Entities {
			p := pos.Get(id)
			require.NotNil(t, p)
			if v, ok := vel.Lookup(id); ok {
				p.X += v.DX
			}
		}

		assert.Nil(t, vel.Get(still))
		assert.False(t, vel.Set(still, Velocity{DX: 1}), "Set never adds a component")
	})

	tw.AdvanceTick()
	require.True(t, ran)
	assert.Equal(t, float32(3), ecs.ReadComponent(tw.World, tw.Position, moving).X)
	assert.Equal(t, float32(5), ecs.ReadComponent(tw.World, tw.Position, still).X)
	assert.False(t, tw.Has(still, tw.Velocity))

	// tags take no field slot
	tw.RegisterSystem("tagged", reqs, func(frame *ecs.UpdateFrame) {
		assert.Equal(t, 2, frame.NumFields())
	})
	tw.AdvanceTick()
}

func TestFieldMisuse(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(0, 0)

	var checks []func(frame *ecs.UpdateFrame)
	checks = append(checks,
		func(frame *ecs.UpdateFrame) { ecs.Field[Position](frame, 5) },
		func(frame *ecs.UpdateFrame) { ecs.Field[Velocity](frame, 0) },
		func(frame *ecs.UpdateFrame) { ecs.FieldOf(frame, tw.Health) },
	)

	tw.RegisterSystem("misuse", []ecs.Requirement{tw.Position}, func(frame *ecs.UpdateFrame) {
		for _, check := range checks {
			requirePanicIs(t, ecs.ErrFieldType, func() { check(frame) })
		}
	})
	tw.AdvanceTick()
}

func TestFieldOfExcludedComponent(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(0, 0)

	tw.RegisterSystem("not-health", []ecs.Requirement{tw.Position, ecs.Not(tw.Health)}, func(frame *ecs.UpdateFrame) {
		requirePanicIs(t, ecs.ErrFieldType, func() { ecs.FieldOf(frame, tw.Health) })
		pos := ecs.FieldOf(frame, tw.Position)
		pos.Set(frame.Entities[0], Position{X: 7})
	})
	tw.AdvanceTick()

	assert.Equal(t, float32(7), ecs.ReadComponent(tw.World, tw.Position, 1).X)
}

type Gravity struct {
	Strength float32
}

type gravitySystem struct {
	Gravity ecs.Singleton[Gravity]
	pos     ecs.Component[Position]
	vel     ecs.Component[Velocity]
	runs    int
}

func (s *gravitySystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.pos, s.vel}
}

func (s *gravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	g := s.Gravity.Get()
	if g == nil {
		return
	}
	vel := ecs.FieldOf(frame, s.vel)
	for _, id := range frame.Entities {
		vel.Get(id).DY -= g.Strength
	}
}

func TestRegisterSystemValue(t *testing.T) {
	tw := newTestWorld()
	b := tw.BeginEntity()
	ecs.With(b, tw.Position, Position{})
	ecs.With(b, tw.Velocity, Velocity{})
	id := b.Create()

	sys := &gravitySystem{pos: tw.Position, vel: tw.Velocity}
	sid := tw.Register(sys)

	tw.AdvanceTick()
	assert.Equal(t, 1, sys.runs)
	assert.Zero(t, ecs.ReadComponent(tw.World, tw.Velocity, id).DY)

	ecs.NewSingleton(tw.World, Gravity{Strength: 2})
	tw.AdvanceTick()
	assert.Equal(t, float32(-2), ecs.ReadComponent(tw.World, tw.Velocity, id).DY)

	stats := tw.Stats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "gravitySystem", stats.Systems[sid].Name)
}

func TestSchedulerStats(t *testing.T) {
	tw := newTestWorld()
	tw.spawn(0, 0)
	tw.spawn(1, 1, tw.Frozen)

	first := tw.RegisterSystem("counted", []ecs.Requirement{tw.Position, ecs.Not(tw.Frozen)}, func(*ecs.UpdateFrame) {})
	second := tw.RegisterSystem("paused", []ecs.Requirement{tw.Position}, func(*ecs.UpdateFrame) {})
	tw.SetSystemEnabled(second, false)
	tw.SetSystemEnabled(42, false)

	for i := 0; i < 3; i++ {
		tw.AdvanceTick()
	}

	stats := tw.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(3), stats.TotalExecutions)

	counted := stats.Systems[first]
	assert.Equal(t, "counted", counted.Name)
	assert.True(t, counted.Enabled)
	assert.Equal(t, tw.Position.Bit(), counted.Require)
	assert.Equal(t, tw.Frozen.Bit(), counted.Exclude)
	assert.Equal(t, 1, counted.LastEntities)
	assert.Equal(t, int64(3), counted.ExecutionCount)
	assert.LessOrEqual(t, counted.MinDuration, counted.MaxDuration)
	assert.Equal(t, counted.TotalDuration/3, counted.AvgDuration)

	paused := stats.Systems[second]
	assert.False(t, paused.Enabled)
	assert.Zero(t, paused.ExecutionCount)
	assert.Zero(t, paused.MinDuration)
	assert.Zero(t, paused.AvgDuration)
}

func TestRunStopsOnCancel(t *testing.T) {
	tw := newTestWorld()
	ticks := 0
	tw.RegisterSystem("count", nil, func(*ecs.UpdateFrame) { ticks++ })

	ctx, cancel := context.WithCancel(context.Background())
	var dts []float64
	done := make(chan struct{})
	go func() {
		defer close(done)
		tw.Run(ctx, time.Millisecond, func(dt float64) {
			dts = append(dts, dt)
			if len(dts) == 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.GreaterOrEqual(t, ticks, 3)
	assert.Equal(t, ticks, len(dts))
	for _, dt := range dts {
		assert.Greater(t, dt, 0.0)
	}
}
