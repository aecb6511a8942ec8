package ecs_test

import (
	"fmt"

	"github.com/ReeCocho/Snek/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

type GameScore struct {
	Points int
	Level  int
}

// Scorer adds to the scene's score every tick.
type Scorer struct {
	ecs.ComponentBase
	score *GameScore
}

func (s *Scorer) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick)
}

func (s *Scorer) OnBegin() {
	s.score = ecs.MustResource[*GameScore](s.Scene())
}

func (s *Scorer) OnTick(float32) {
	s.score.Points += 10
}

// ExampleSetResource demonstrates scene resources: values shared by every component of
// a scene, keyed by their type.
func ExampleSetResource() {
	scene := ecs.NewScene(ecs.NewComponentRegistry())

	ecs.SetResource(scene, &GameConfig{MaxPlayers: 4, Difficulty: "Normal"})
	config, _ := ecs.Resource[*GameConfig](scene)
	fmt.Printf("Config: %d players, %s difficulty\n", config.MaxPlayers, config.Difficulty)

	// Pointers are shared, so later lookups see the change
	config.Difficulty = "Hard"
	same := ecs.MustResource[*GameConfig](scene)
	fmt.Printf("Same config: %s difficulty\n", same.Difficulty)

	// Setting again replaces the stored value
	ecs.SetResource(scene, &GameConfig{MaxPlayers: 8, Difficulty: "Expert"})
	fmt.Printf("Replaced: %d players\n", ecs.MustResource[*GameConfig](scene).MaxPlayers)

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
	// Replaced: 8 players
}

// ExampleResource_components shows components reaching a resource from OnBegin.
func ExampleResource_components() {
	scene := ecs.NewScene(ecs.NewComponentRegistry())
	ecs.SetResource(scene, &GameScore{Level: 1})

	ecs.Add[*Scorer](scene.Create())
	ecs.Add[*Scorer](scene.Create())
	scene.Tick(0.016)
	scene.Tick(0.016)

	fmt.Println("Points:", ecs.MustResource[*GameScore](scene).Points)

	if _, ok := ecs.Resource[*GameConfig](scene); !ok {
		fmt.Println("Config not found")
	}
	ecs.RemoveResource[*GameScore](scene)
	_, ok := ecs.Resource[*GameScore](scene)
	fmt.Println("Score after removal:", ok)

	// Output:
	// Points: 40
	// Config not found
	// Score after removal: false
}
