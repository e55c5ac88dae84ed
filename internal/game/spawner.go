package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/maskecs/ecs"
)

type rockSize struct {
	radius float64
	points int
}

// rockSizes is indexed by Rock.Size-1.
var rockSizes = []rockSize{
	{radius: 12, points: 100},
	{radius: 22, points: 50},
	{radius: 40, points: 20},
}

const (
	shipRadius   = 12
	bulletRadius = 2
	safeDistance = 160
)

var shipOutline = []Vec{{0, -14}, {10, 11}, {0, 6}, {-10, 11}}

var bulletOutline = []Vec{{-1.5, -1.5}, {1.5, -1.5}, {1.5, 1.5}, {-1.5, 1.5}}

// Spawner creates the game's entities.
type Spawner struct {
	world *ecs.World
	c     Components
	rng   *rand.Rand
}

func (s *Spawner) Ship(arena Arena, tuning Tuning) ecs.EntityId {
	b := s.world.BeginEntity().Add(s.c.Ship).Add(s.c.Wraps)
	ecs.With(b, s.c.Transform, Transform{Pos: arena.Center()})
	ecs.With(b, s.c.Motion, Motion{})
	ecs.With(b, s.c.Collider, Collider{Radius: shipRadius})
	ecs.With(b, s.c.Outline, Outline{Points: shipOutline})
	ecs.With(b, s.c.ShipControl, ShipControl{Invulnerable: tuning.Invulnerable})
	return b.Create()
}

func (s *Spawner) Bullet(from Transform, inherit Vec, tuning Tuning) ecs.EntityId {
	dir := Heading(from.Angle)
	b := s.world.BeginEntity().Add(s.c.Bullet).Add(s.c.Wraps)
	ecs.With(b, s.c.Transform, Transform{Pos: from.Pos.Add(dir.Scale(shipRadius + 2))})
	ecs.With(b, s.c.Motion, Motion{Vel: inherit.Add(dir.Scale(tuning.BulletSpeed))})
	ecs.With(b, s.c.Collider, Collider{Radius: bulletRadius})
	ecs.With(b, s.c.Lifetime, Lifetime{Remaining: tuning.BulletLife})
	ecs.With(b, s.c.Outline, Outline{Points: bulletOutline})
	return b.Create()
}

// Rock creates an asteroid of the given size class moving in a random
// direction at a speed drawn from speed.
func (s *Spawner) Rock(pos Vec, size int, speed [2]float64) ecs.EntityId {
	class := rockSizes[size-1]
	angle := s.rng.Float64() * 2 * math.Pi
	v := speed[0] + s.rng.Float64()*(speed[1]-speed[0])

	b := s.world.BeginEntity().Add(s.c.Asteroid).Add(s.c.Wraps)
	ecs.With(b, s.c.Transform, Transform{Pos: pos, Angle: angle})
	ecs.With(b, s.c.Motion, Motion{
		Vel:  Heading(angle).Scale(v),
		Spin: (s.rng.Float64() - 0.5) * 2,
	})
	ecs.With(b, s.c.Collider, Collider{Radius: class.radius})
	ecs.With(b, s.c.Rock, Rock{Size: size})
	ecs.With(b, s.c.Outline, Outline{Points: s.jagged(class.radius)})
	return b.Create()
}

// jagged builds an irregular polygon roughly radius wide.
func (s *Spawner) jagged(radius float64) []Vec {
	const corners = 11
	points := make([]Vec, corners)
	for i := range points {
		angle := float64(i) / corners * 2 * math.Pi
		r := radius * (0.75 + s.rng.Float64()*0.35)
		points[i] = Heading(angle).Scale(r)
	}
	return points
}

// Wave spawns the rocks of wave along the arena edges, keeping clear of the
// centre where the ship respawns.
func (s *Spawner) Wave(arena Arena, wave Wave) {
	for i := 0; i < wave.Rocks; i++ {
		s.Rock(s.edgePoint(arena), wave.Size, wave.Speed)
	}
	for i := 0; i < wave.ExtraSmall; i++ {
		s.Rock(s.edgePoint(arena), 1, wave.Speed)
	}
}

func (s *Spawner) edgePoint(arena Arena) Vec {
	for {
		var p Vec
		switch s.rng.IntN(4) {
		case 0:
			p = Vec{s.rng.Float64() * arena.Width, 0}
		case 1:
			p = Vec{s.rng.Float64() * arena.Width, arena.Height}
		case 2:
			p = Vec{0, s.rng.Float64() * arena.Height}
		default:
			p = Vec{arena.Width, s.rng.Float64() * arena.Height}
		}
		if p.Sub(arena.Center()).Len() >= safeDistance || arena.Width < 2*safeDistance {
			return p
		}
	}
}
