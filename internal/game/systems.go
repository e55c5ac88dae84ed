package game

import (
	"math"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"

	"github.com/plus3/maskecs/ecs"
)

// RestartSystem clears the board when the player asks for a new game after
// losing the last ship. Entities without a Transform, such as tool windows,
// are left alone.
type RestartSystem struct {
	Input   ecs.Singleton[Input]
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]
	c       Components
}

func (s *RestartSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Transform}
}

func (s *RestartSystem) Execute(frame *ecs.UpdateFrame) {
	in, session, tuning := s.Input.Get(), s.Session.Get(), s.Tuning.Get()
	if in == nil || session == nil || tuning == nil {
		return
	}
	if !session.GameOver || !in.Restart {
		return
	}

	for _, id := range frame.Entities {
		frame.Destroy(id)
	}
	*session = Session{Lives: tuning.Lives}
	frame.World.Logger().Info("new game")
}

// ShipControlSystem turns, thrusts and fires the ship from Input.
type ShipControlSystem struct {
	Input  ecs.Singleton[Input]
	Clock  ecs.Singleton[Clock]
	Tuning ecs.Singleton[Tuning]
	c      Components
	spawn  *Spawner
}

func (s *ShipControlSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Ship, s.c.Transform, s.c.Motion, s.c.ShipControl}
}

func (s *ShipControlSystem) Execute(frame *ecs.UpdateFrame) {
	in, clock, tuning := s.Input.Get(), s.Clock.Get(), s.Tuning.Get()
	if in == nil || clock == nil || tuning == nil {
		return
	}
	dt := clock.Delta

	transforms := ecs.FieldOf(frame, s.c.Transform)
	motions := ecs.FieldOf(frame, s.c.Motion)
	controls := ecs.FieldOf(frame, s.c.ShipControl)

	for _, id := range frame.Entities {
		t, m, ctl := transforms.Get(id), motions.Get(id), controls.Get(id)

		if in.Left {
			t.Angle -= tuning.TurnRate * dt
		}
		if in.Right {
			t.Angle += tuning.TurnRate * dt
		}
		if in.Thrust {
			m.Vel = m.Vel.Add(Heading(t.Angle).Scale(tuning.Thrust * dt))
		}
		m.Vel = m.Vel.Scale(math.Pow(tuning.Drag, dt))
		if speed := m.Vel.Len(); speed > tuning.MaxSpeed {
			m.Vel = m.Vel.Scale(tuning.MaxSpeed / speed)
		}

		ctl.Cooldown = max(0, ctl.Cooldown-dt)
		ctl.Invulnerable = max(0, ctl.Invulnerable-dt)

		if in.Fire && ctl.Cooldown == 0 {
			s.spawn.Bullet(*t, m.Vel, *tuning)
			ctl.Cooldown = tuning.FireCooldown
		}
	}
}

// MovementSystem integrates velocity and spin.
type MovementSystem struct {
	Clock ecs.Singleton[Clock]
	c     Components
}

func (s *MovementSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Transform, s.c.Motion}
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock == nil {
		return
	}

	transforms := ecs.Field[Transform](frame, 0)
	motions := ecs.Field[Motion](frame, 1)
	for _, id := range frame.Entities {
		t, m := transforms.Get(id), motions.Get(id)
		t.Pos = t.Pos.Add(m.Vel.Scale(clock.Delta))
		t.Angle += m.Spin * clock.Delta
	}
}

// WrapSystem moves entities leaving one edge of the arena to the opposite
// edge.
type WrapSystem struct {
	Arena ecs.Singleton[Arena]
	c     Components
}

func (s *WrapSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Transform, s.c.Wraps}
}

func (s *WrapSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	if arena == nil {
		return
	}

	transforms := ecs.FieldOf(frame, s.c.Transform)
	for _, id := range frame.Entities {
		t := transforms.Get(id)
		t.Pos.X = wrap(t.Pos.X, arena.Width)
		t.Pos.Y = wrap(t.Pos.Y, arena.Height)
	}
}

func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// impacts remembers the rocks already broken during the current tick, so a
// rock struck twice in one tick only splits once.
type impacts struct {
	tick uint64
	hit  *intmap.Map[ecs.EntityId, struct{}]
}

func newImpacts() *impacts {
	return &impacts{hit: intmap.New[ecs.EntityId, struct{}](16)}
}

// claim reports whether rock was still intact this tick and marks it broken.
func (im *impacts) claim(tick uint64, rock ecs.EntityId) bool {
	if tick != im.tick {
		im.tick = tick
		im.hit.Clear()
	}
	if _, seen := im.hit.Get(rock); seen {
		return false
	}
	im.hit.Put(rock, struct{}{})
	return true
}

// breakRock destroys rock and replaces it with two smaller, faster pieces.
func breakRock(frame *ecs.UpdateFrame, c Components, spawn *Spawner, rock ecs.EntityId) int {
	w := frame.World
	size := ecs.ReadComponent(w, c.Rock, rock).Size
	pos := ecs.ReadComponent(w, c.Transform, rock).Pos
	speed := ecs.ReadComponent(w, c.Motion, rock).Vel.Len()

	frame.Destroy(rock)
	if size > 1 {
		fragment := [2]float64{speed * 1.1, speed * 1.6}
		spawn.Rock(pos, size-1, fragment)
		spawn.Rock(pos, size-1, fragment)
	}
	return rockSizes[size-1].points
}

func overlaps(a Vec, ra float64, b Vec, rb float64) bool {
	d := a.Sub(b)
	r := ra + rb
	return d.X*d.X+d.Y*d.Y <= r*r
}

// BulletCollisionSystem breaks rocks hit by bullets and scores them.
type BulletCollisionSystem struct {
	Session ecs.Singleton[Session]
	c       Components
	spawn   *Spawner
	impacts *impacts
}

func (s *BulletCollisionSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Bullet, s.c.Transform, s.c.Collider}
}

func (s *BulletCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil {
		return
	}

	transforms := ecs.FieldOf(frame, s.c.Transform)
	colliders := ecs.FieldOf(frame, s.c.Collider)
	rocks := frame.World.Query(s.c.Asteroid, s.c.Transform, s.c.Collider, s.c.Rock)
	rocks = rocks[:len(rocks):len(rocks)]

	for _, bullet := range frame.Entities {
		bp, br := transforms.Get(bullet).Pos, colliders.Get(bullet).Radius
		for _, rock := range rocks {
			rp := transforms.Get(rock).Pos
			rr := colliders.Get(rock).Radius
			if !overlaps(bp, br, rp, rr) || !s.impacts.claim(frame.Tick, rock) {
				continue
			}
			frame.Destroy(bullet)
			session.Score += breakRock(frame, s.c, s.spawn, rock)
			break
		}
	}
}

// ShipCollisionSystem costs the player a life when the ship touches a rock.
type ShipCollisionSystem struct {
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]
	c       Components
	spawn   *Spawner
	impacts *impacts
}

func (s *ShipCollisionSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Ship, s.c.Transform, s.c.Collider, s.c.ShipControl}
}

func (s *ShipCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	session, tuning := s.Session.Get(), s.Tuning.Get()
	if session == nil || tuning == nil {
		return
	}

	transforms := ecs.FieldOf(frame, s.c.Transform)
	colliders := ecs.FieldOf(frame, s.c.Collider)
	controls := ecs.FieldOf(frame, s.c.ShipControl)
	rocks := frame.World.Query(s.c.Asteroid, s.c.Transform, s.c.Collider, s.c.Rock)
	rocks = rocks[:len(rocks):len(rocks)]

	for _, ship := range frame.Entities {
		if controls.Get(ship).Invulnerable > 0 {
			continue
		}
		sp, sr := transforms.Get(ship).Pos, colliders.Get(ship).Radius
		for _, rock := range rocks {
			if !overlaps(sp, sr, transforms.Get(rock).Pos, colliders.Get(rock).Radius) {
				continue
			}
			if s.impacts.claim(frame.Tick, rock) {
				breakRock(frame, s.c, s.spawn, rock)
			}
			frame.Destroy(ship)
			s.shipLost(frame, session, tuning)
			break
		}
	}
}

func (s *ShipCollisionSystem) shipLost(frame *ecs.UpdateFrame, session *Session, tuning *Tuning) {
	session.Lives--
	if session.Lives <= 0 {
		session.Lives = 0
		session.GameOver = true
		frame.World.Logger().Info("game over",
			zap.Int("score", session.Score),
			zap.Int("wave", session.Wave),
		)
		return
	}
	session.Respawn = tuning.RespawnDelay
	frame.World.Logger().Info("ship lost", zap.Int("lives", session.Lives))
}

// LifetimeSystem destroys entities whose time is up.
type LifetimeSystem struct {
	Clock ecs.Singleton[Clock]
	c     Components
}

func (s *LifetimeSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Lifetime}
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock == nil {
		return
	}

	lifetimes := ecs.Field[Lifetime](frame, 0)
	for _, id := range frame.Entities {
		l := lifetimes.Get(id)
		l.Remaining -= clock.Delta
		if l.Remaining <= 0 {
			frame.Destroy(id)
		}
	}
}

// RespawnSystem brings a new ship in once the respawn delay has passed.
type RespawnSystem struct {
	Clock   ecs.Singleton[Clock]
	Arena   ecs.Singleton[Arena]
	Session ecs.Singleton[Session]
	Tuning  ecs.Singleton[Tuning]
	c       Components
	spawn   *Spawner
}

func (s *RespawnSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Ship}
}

func (s *RespawnSystem) Execute(frame *ecs.UpdateFrame) {
	clock, arena, session, tuning := s.Clock.Get(), s.Arena.Get(), s.Session.Get(), s.Tuning.Get()
	if clock == nil || arena == nil || session == nil || tuning == nil {
		return
	}
	if len(frame.Entities) > 0 || session.GameOver {
		return
	}

	session.Respawn -= clock.Delta
	if session.Respawn > 0 {
		return
	}
	session.Respawn = 0
	s.spawn.Ship(*arena, *tuning)
}

// WaveSystem starts the next wave once every rock is gone.
type WaveSystem struct {
	Arena   ecs.Singleton[Arena]
	Session ecs.Singleton[Session]
	c       Components
	spawn   *Spawner
	waves   WaveTable
}

func (s *WaveSystem) Requirements() []ecs.Requirement {
	return []ecs.Requirement{s.c.Asteroid}
}

func (s *WaveSystem) Execute(frame *ecs.UpdateFrame) {
	arena, session := s.Arena.Get(), s.Session.Get()
	if arena == nil || session == nil {
		return
	}
	if len(frame.Entities) > 0 || session.GameOver {
		return
	}

	session.Wave++
	wave := s.waves.Wave(session.Wave)
	s.spawn.Wave(*arena, wave)
	frame.World.Logger().Info("wave started",
		zap.Int("wave", session.Wave),
		zap.Int("rocks", wave.Rocks+wave.ExtraSmall),
	)
}
