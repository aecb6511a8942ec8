// Package snake is the Snek demo: a snake steered by the Horizontal and Vertical input
// axes across a grid of sprites, growing each time it eats.
package snake

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ReeCocho/Snek/audio"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/engine"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/render"
	"go.uber.org/zap"
)

//go:generate stringer -type=Outcome

// Outcome is the state of a game.
type Outcome int

const (
	Playing Outcome = iota
	Crashed
	Won
)

// DefaultMoveInterval is the number of seconds between two moves.
const DefaultMoveInterval = 0.3

// Cell is a grid coordinate with (0, 0) in the bottom left corner.
type Cell struct {
	X, Y int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

// Node is one grid cell: the sprite that shows it and whether food lies there.
type Node struct {
	Renderer *render.SpriteRenderer
	Food     bool
}

type Materials struct {
	Empty *render.Material
	Body  *render.Material
	Food  *render.Material
}

// Snake runs the game. Call Init before the first tick, then SetNode for every cell.
//
// When the game ends the engine found among the scene resources is stopped.
type Snake struct {
	ecs.ComponentBase

	Materials    Materials
	MoveInterval float32
	Rand         *rand.Rand

	nodes   [][]Node
	body    []Cell
	dir     Cell
	timer   float32
	outcome Outcome
	eaten   int

	input *input.Input
	log   *zap.Logger
}

func (s *Snake) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick)
}

func (s *Snake) OnBegin() {
	seed := uint64(time.Now().UnixNano())
	s.MoveInterval = DefaultMoveInterval
	s.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	s.dir = Cell{1, 0}
	s.input, _ = ecs.Resource[*input.Input](s.Scene())
	s.log = s.Scene().Logger().Named("snake")
}

// Init sizes the grid and puts a one-cell snake in its middle.
func (s *Snake) Init(width, height int) {
	if width < 1 || height < 1 {
		panic("snake grid must be at least 1x1")
	}
	s.nodes = make([][]Node, width)
	for x := range s.nodes {
		s.nodes[x] = make([]Node, height)
	}
	s.body = []Cell{{width / 2, height / 2}}
	s.dir = Cell{1, 0}
	s.timer = 0
	s.eaten = 0
	s.outcome = Playing
}

func (s *Snake) SetNode(x, y int, n Node) {
	s.nodes[x][y] = n
}

func (s *Snake) Node(x, y int) Node {
	return s.nodes[x][y]
}

func (s *Snake) Width() int {
	return len(s.nodes)
}

func (s *Snake) Height() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return len(s.nodes[0])
}

// Body returns the snake's cells from head to tail.
func (s *Snake) Body() []Cell {
	return slices.Clone(s.body)
}

func (s *Snake) Head() Cell {
	return s.body[0]
}

func (s *Snake) Direction() Cell {
	return s.dir
}

func (s *Snake) Outcome() Outcome {
	return s.outcome
}

// Eaten returns how much food the snake ate.
func (s *Snake) Eaten() int {
	return s.eaten
}

// Food returns the cell holding food, if any.
func (s *Snake) Food() (Cell, bool) {
	for x, col := range s.nodes {
		for y, n := range col {
			if n.Food {
				return Cell{x, y}, true
			}
		}
	}
	return Cell{}, false
}

// PlaceFood moves the food to c.
func (s *Snake) PlaceFood(c Cell) {
	for x := range s.nodes {
		for y := range s.nodes[x] {
			s.nodes[x][y].Food = false
		}
	}
	s.nodes[c.X][c.Y].Food = true
}

// PickFoodSpot puts food on a random cell the snake does not cover. A snake filling the
// whole grid wins the game.
func (s *Snake) PickFoodSpot() {
	free := make([]Cell, 0, max(s.Width()*s.Height()-len(s.body), 0))
	for x := range s.nodes {
		for y := range s.nodes[x] {
			if c := (Cell{x, y}); !s.covers(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		s.finish(Won)
		return
	}
	s.PlaceFood(free[s.Rand.IntN(len(free))])
}

func (s *Snake) OnTick(dt float32) {
	if s.outcome != Playing {
		return
	}
	s.timer += dt
	s.steer()
	if s.timer >= s.MoveInterval {
		s.move()
		s.timer = 0
	}
}

// steer turns towards the held axis unless that would reverse into the neck. Vertical
// input wins over horizontal.
func (s *Snake) steer() {
	if s.input == nil {
		return
	}
	want := Cell{sign(s.input.Axis("Horizontal")), sign(s.input.Axis("Vertical"))}
	if len(s.body) >= 2 && s.body[0].Add(want) == s.body[1] {
		return
	}
	switch {
	case want.Y != 0:
		s.dir = Cell{0, want.Y}
	case want.X != 0:
		s.dir = Cell{want.X, 0}
	}
}

func (s *Snake) move() {
	next := s.body[0].Add(s.dir)
	if next.X < 0 || next.Y < 0 || next.X >= s.Width() || next.Y >= s.Height() || s.covers(next) {
		s.finish(Crashed)
		return
	}

	s.body = slices.Insert(s.body, 0, next)
	if s.nodes[next.X][next.Y].Food {
		s.nodes[next.X][next.Y].Food = false
		s.eaten++
		if b, ok := ecs.Get[*audio.Beeper](s.Entity()); ok {
			b.Trigger()
		}
		s.PickFoodSpot()
	} else {
		s.body = s.body[:len(s.body)-1]
	}
	s.Paint()
}

// Paint sets every cell's material from the current board.
func (s *Snake) Paint() {
	for x := range s.nodes {
		for y, n := range s.nodes[x] {
			if n.Renderer == nil {
				continue
			}
			switch {
			case s.covers(Cell{x, y}):
				n.Renderer.Material = s.Materials.Body
			case n.Food:
				n.Renderer.Material = s.Materials.Food
			default:
				n.Renderer.Material = s.Materials.Empty
			}
		}
	}
}

func (s *Snake) covers(c Cell) bool {
	return slices.Contains(s.body, c)
}

func (s *Snake) finish(o Outcome) {
	s.outcome = o
	s.log.Info("game over",
		zap.Stringer("outcome", o),
		zap.Int("length", len(s.body)),
		zap.Int("eaten", s.eaten))
	if e, ok := ecs.Resource[*engine.Engine](s.Scene()); ok {
		e.Stop()
	}
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
