package ecs_test

import (
	"fmt"

	"github.com/plus3/maskecs/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

// ExampleNewSingleton attaches shared state to a World. Asking again for the
// same type returns the value already attached.
func ExampleNewSingleton() {
	world := ecs.NewWorld()

	config := ecs.NewSingleton(world, GameConfig{MaxPlayers: 4, Difficulty: "Normal"})
	fmt.Printf("Config: %d players, %s difficulty\n", config.MaxPlayers, config.Difficulty)

	config.Difficulty = "Hard"

	same := ecs.NewSingleton(world, GameConfig{Difficulty: "ignored"})
	fmt.Printf("Same config: %s difficulty\n", same.Difficulty)

	ecs.RemoveSingleton[GameConfig](world)
	fmt.Println("attached:", ecs.HasSingleton[GameConfig](world))

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
	// attached: false
}
