package main

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/internal/config"
)

// stressWorld is a world filled with generated float components and systems
// that mix required, optional and excluded terms.
type stressWorld struct {
	world      *ecs.World
	components []ecs.Component[float64]
	rng        *rand.Rand
	churn      float64

	live      []ecs.EntityId
	spawned   int64
	destroyed int64
}

func newStressWorld(cfg config.StressConfig, log *zap.Logger) *stressWorld {
	s := &stressWorld{
		world: ecs.NewWorld(ecs.WithLogger(log), ecs.WithCapacity(cfg.Entities)),
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
		churn: cfg.Churn,
	}
	for i := 0; i < cfg.Components; i++ {
		s.components = append(s.components, ecs.RegisterComponent[float64](s.world, fmt.Sprintf("c%02d", i)))
	}

	// churn runs first so its destructions land at the start of the next tick
	s.world.RegisterSystem("churn", nil, s.churnTick)
	for i := 0; i < cfg.Systems; i++ {
		s.registerRandomSystem(i)
	}

	for i := 0; i < cfg.Entities; i++ {
		s.live = append(s.live, s.spawnRandom())
	}
	return s
}

// spawnRandom creates an entity with one to five random components.
func (s *stressWorld) spawnRandom() ecs.EntityId {
	b := s.world.BeginEntity()
	n := min(s.rng.IntN(5)+1, len(s.components))
	for _, i := range s.rng.Perm(len(s.components))[:n] {
		ecs.With(b, s.components[i], s.rng.Float64())
	}
	s.spawned++
	return b.Create()
}

// registerRandomSystem adds a system requiring one to three components, with
// an optional Maybe term and an optional Not term on top.
func (s *stressWorld) registerRandomSystem(index int) {
	perm := s.rng.Perm(len(s.components))
	required := min(s.rng.IntN(3)+1, len(perm))

	var reqs []ecs.Requirement
	for _, i := range perm[:required] {
		reqs = append(reqs, s.components[i])
	}
	rest := perm[required:]
	if len(rest) > 0 && s.rng.IntN(2) == 0 {
		reqs = append(reqs, ecs.Maybe(s.components[rest[0]]))
		rest = rest[1:]
	}
	if len(rest) > 0 && s.rng.IntN(2) == 0 {
		reqs = append(reqs, ecs.Not(s.components[rest[0]]))
	}

	s.world.RegisterSystem(fmt.Sprintf("system-%02d", index), reqs, blendFields)
}

// blendFields folds every present field into the first one.
func blendFields(frame *ecs.UpdateFrame) {
	fields := make([]ecs.Accessor[float64], frame.NumFields())
	for i := range fields {
		fields[i] = ecs.Field[float64](frame, i)
	}
	for _, id := range frame.Entities {
		var sum float64
		for _, f := range fields {
			if v, ok := f.Lookup(id); ok {
				sum += *v
			}
		}
		target := fields[0].Get(id)
		*target = *target*0.99 + sum*0.001
	}
}

// churnTick replaces a fraction of the live entities. The fractional part of
// the count is spent as a probability so small worlds still churn.
func (s *stressWorld) churnTick(frame *ecs.UpdateFrame) {
	want := float64(len(s.live)) * s.churn
	n := int(want)
	if s.rng.Float64() < want-float64(n) {
		n++
	}

	for ; n > 0 && len(s.live) > 0; n-- {
		i := s.rng.IntN(len(s.live))
		frame.Destroy(s.live[i])
		s.destroyed++
		s.live[i] = s.spawnRandom()
	}
}
