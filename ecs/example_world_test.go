package ecs_test

import (
	"fmt"

	"github.com/plus3/maskecs/ecs"
)

// ExampleWorld_Query shows the three requirement forms. Plain handles must be
// present, Not excludes and Maybe does not restrict matching at all.
func ExampleWorld_Query() {
	world := ecs.NewWorld()
	position := ecs.RegisterComponent[Position](world, "position")
	velocity := ecs.RegisterComponent[Velocity](world, "velocity")
	sleeping := ecs.RegisterTag(world, "sleeping")

	for i := 0; i < 4; i++ {
		b := world.BeginEntity()
		ecs.With(b, position, Position{X: float32(i)})
		if i%2 == 1 {
			ecs.With(b, velocity, Velocity{DX: 1})
		}
		if i == 3 {
			b.Add(sleeping)
		}
		b.Create()
	}

	fmt.Println("all:", world.Query(position))
	fmt.Println("moving:", world.Query(position, velocity))
	fmt.Println("awake movers:", world.Query(position, velocity, ecs.Not(sleeping)))
	fmt.Println("maybe moving:", world.Query(position, ecs.Maybe(velocity)))

	// Output:
	// all: [1 2 3 4]
	// moving: [2 4]
	// awake movers: [2]
	// maybe moving: [1 2 3 4]
}

// ExampleEntityBuilder stages components and commits them in one step. Tags
// only set a bit; data components added without a value use their registered
// defaults.
func ExampleEntityBuilder() {
	world := ecs.NewWorld()
	position := ecs.RegisterComponent[Position](world, "position")
	health := ecs.RegisterComponent(world, "health", func() Health {
		return Health{Current: 10, Max: 10}
	})
	player := ecs.RegisterTag(world, "player")

	b := world.BeginEntity().Add(player).Add(health)
	ecs.With(b, position, Position{X: 3, Y: 4})
	fmt.Println("mask before create:", b.Mask())

	id := b.Create()
	fmt.Println("entity:", id)
	fmt.Println("position:", *ecs.ReadComponent(world, position, id))
	fmt.Println("health:", *ecs.ReadComponent(world, health, id))

	// Output:
	// mask before create: {0,1,2}
	// entity: 1
	// position: {3 4}
	// health: {10 10}
}

// ExampleWorld_Destroy shows that destruction waits for the next tick.
func ExampleWorld_Destroy() {
	world := ecs.NewWorld()
	marker := ecs.RegisterTag(world, "marker")

	a := world.BeginEntity().Add(marker).Create()
	world.BeginEntity().Add(marker).Create()

	world.Destroy(a)
	fmt.Println("queued:", world.PendingDestroy(), "alive:", world.Alive(a), world.Query(marker))

	world.AdvanceTick()
	fmt.Println("queued:", world.PendingDestroy(), "alive:", world.Alive(a), world.Query(marker))

	// Output:
	// queued: 1 alive: true [1 2]
	// queued: 0 alive: false [2]
}
