// Package game implements an asteroids-style arcade game on top of the ecs
// package. Every rule is a system; the driver only feeds time and input in
// and reads outlines back out.
package game

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/internal/config"
)

// Game owns the world and the singletons the driver writes each frame.
type Game struct {
	World *ecs.World
	C     Components

	clock   *Clock
	input   *Input
	session *Session
	arena   *Arena
	tuning  *Tuning
	spawn   *Spawner
}

// New builds a world with the game's components, singletons and systems.
// Nothing is spawned until the first Step.
func New(cfg config.GameConfig, waves WaveTable, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	w := ecs.NewWorld(ecs.WithLogger(log), ecs.WithCapacity(512))
	g := &Game{
		World: w,
		C:     RegisterComponents(w),
	}

	g.clock = ecs.NewSingleton[Clock](w)
	g.input = ecs.NewSingleton[Input](w)
	g.arena = ecs.NewSingleton(w, Arena{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	g.tuning = ecs.NewSingleton(w, tuningFrom(cfg))
	g.session = ecs.NewSingleton(w, Session{Lives: cfg.Lives})
	g.spawn = &Spawner{world: w, c: g.C, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}

	hits := newImpacts()
	w.Register(&RestartSystem{c: g.C})
	w.Register(&ShipControlSystem{c: g.C, spawn: g.spawn})
	w.Register(&MovementSystem{c: g.C})
	w.Register(&WrapSystem{c: g.C})
	w.Register(&BulletCollisionSystem{c: g.C, spawn: g.spawn, impacts: hits})
	w.Register(&ShipCollisionSystem{c: g.C, spawn: g.spawn, impacts: hits})
	w.Register(&LifetimeSystem{c: g.C})
	w.Register(&RespawnSystem{c: g.C, spawn: g.spawn})
	w.Register(&WaveSystem{c: g.C, spawn: g.spawn, waves: waves})

	log.Info("game ready",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Uint64("seed", seed),
		zap.Int("waves", len(waves.Waves)),
	)
	return g
}

// Step advances the game by dt seconds with the given input.
func (g *Game) Step(dt float64, in Input) {
	g.clock.Delta = dt
	g.clock.Elapsed += dt
	*g.input = in
	g.World.AdvanceTick()
}

// Session returns a copy of the player's progress.
func (g *Game) Session() Session {
	return *g.session
}

// Arena returns the playfield size.
func (g *Game) Arena() Arena {
	return *g.arena
}

// Spawner returns the entity factory, for tools that add entities by hand.
func (g *Game) Spawner() *Spawner {
	return g.spawn
}

// ShapeKind says what an outline belongs to.
type ShapeKind uint8

const (
	ShapeShip ShapeKind = iota
	ShapeBullet
	ShapeRock
)

// Shape is an outline transformed into screen space.
type Shape struct {
	Entity ecs.EntityId
	Kind   ShapeKind
	Points []Vec
	Faint  bool // the ship is blinking through its respawn grace
}

// Shapes calls fn for every visible outline. The Points slice is reused
// between calls.
func (g *Game) Shapes(fn func(Shape)) {
	w := g.World
	var buf []Vec
	for _, id := range w.Query(g.C.Transform, g.C.Outline) {
		t := ecs.ReadComponent(w, g.C.Transform, id)
		outline := ecs.ReadComponent(w, g.C.Outline, id)

		buf = buf[:0]
		for _, p := range outline.Points {
			buf = append(buf, p.Rotate(t.Angle).Add(t.Pos))
		}

		shape := Shape{Entity: id, Points: buf}
		switch {
		case w.Has(id, g.C.Ship):
			shape.Kind = ShapeShip
			if ctl := ecs.ReadComponent(w, g.C.ShipControl, id); ctl != nil && ctl.Invulnerable > 0 {
				shape.Faint = int(g.clock.Elapsed*8)%2 == 0
			}
		case w.Has(id, g.C.Bullet):
			shape.Kind = ShapeBullet
		default:
			shape.Kind = ShapeRock
		}
		fn(shape)
	}
}
