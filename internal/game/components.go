package game

import (
	"math"

	"github.com/plus3/maskecs/ecs"
)

// Vec is a 2D point or direction in screen pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate turns v by angle radians around the origin.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Heading is the unit vector for angle. Angle 0 points up the screen.
func Heading(angle float64) Vec {
	return Vec{0, -1}.Rotate(angle)
}

type Transform struct {
	Pos   Vec
	Angle float64
}

type Motion struct {
	Vel  Vec
	Spin float64 // rad/s
}

// Collider is a bounding circle centred on the transform.
type Collider struct {
	Radius float64
}

type Lifetime struct {
	Remaining float64 // seconds
}

// Rock records an asteroid's size class: 3 is large, 1 is the smallest.
type Rock struct {
	Size int
}

// Outline is a closed polygon in local space, drawn rotated by the transform.
type Outline struct {
	Points []Vec
}

type ShipControl struct {
	Cooldown     float64 // seconds until the next shot
	Invulnerable float64 // seconds of respawn grace left
}

// Components holds the handles of every component the game registers.
type Components struct {
	Transform   ecs.Component[Transform]
	Motion      ecs.Component[Motion]
	Collider    ecs.Component[Collider]
	Lifetime    ecs.Component[Lifetime]
	Rock        ecs.Component[Rock]
	Outline     ecs.Component[Outline]
	ShipControl ecs.Component[ShipControl]

	Ship     ecs.Tag
	Bullet   ecs.Tag
	Asteroid ecs.Tag
	Wraps    ecs.Tag
}

// RegisterComponents registers the game's components with w.
func RegisterComponents(w *ecs.World) Components {
	return Components{
		Transform: ecs.RegisterComponent[Transform](w, "transform"),
		Motion:    ecs.RegisterComponent[Motion](w, "motion"),
		Collider:  ecs.RegisterComponent[Collider](w, "collider"),
		Lifetime:  ecs.RegisterComponent[Lifetime](w, "lifetime"),
		Rock: ecs.RegisterComponent(w, "rock", func() Rock {
			return Rock{Size: 3}
		}),
		Outline:     ecs.RegisterComponent[Outline](w, "outline"),
		ShipControl: ecs.RegisterComponent[ShipControl](w, "ship_control"),

		Ship:     ecs.RegisterTag(w, "ship"),
		Bullet:   ecs.RegisterTag(w, "bullet"),
		Asteroid: ecs.RegisterTag(w, "asteroid"),
		Wraps:    ecs.RegisterTag(w, "wraps"),
	}
}
