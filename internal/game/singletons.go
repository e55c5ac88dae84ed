package game

import "github.com/plus3/maskecs/internal/config"

// Clock is the frame timing handed in by the driver each tick.
type Clock struct {
	Delta   float64 // seconds since the previous tick
	Elapsed float64
}

// Input is the player's intent for the current tick.
type Input struct {
	Left    bool
	Right   bool
	Thrust  bool
	Fire    bool
	Restart bool
}

// Arena is the playfield size in pixels. Positions wrap at its edges.
type Arena struct {
	Width, Height float64
}

func (a Arena) Center() Vec {
	return Vec{a.Width / 2, a.Height / 2}
}

// Session is the player's progress.
type Session struct {
	Score    int
	Lives    int
	Wave     int
	GameOver bool
	Respawn  float64 // seconds until a new ship appears, when none is alive
}

// Tuning is the ship and bullet handling, in seconds and pixels.
type Tuning struct {
	Thrust       float64
	TurnRate     float64
	Drag         float64
	MaxSpeed     float64
	FireCooldown float64
	BulletSpeed  float64
	BulletLife   float64
	Invulnerable float64
	RespawnDelay float64
	Lives        int
}

func tuningFrom(cfg config.GameConfig) Tuning {
	return Tuning{
		Thrust:       cfg.ShipThrust,
		TurnRate:     cfg.ShipTurnRate,
		Drag:         cfg.ShipDrag,
		MaxSpeed:     cfg.ShipMaxSpeed,
		FireCooldown: cfg.FireCooldown.Seconds(),
		BulletSpeed:  cfg.BulletSpeed,
		BulletLife:   cfg.BulletLife.Seconds(),
		Invulnerable: cfg.Invulnerable.Seconds(),
		RespawnDelay: 1.5,
		Lives:        cfg.Lives,
	}
}
