package game

import "time"

const (
	InitialSpeed    = 400 * time.Millisecond
	MinSpeed        = 100 * time.Millisecond
	SpeedStep       = 10 * time.Millisecond
	FoodPoints      = 10
	PointsPerLevel  = 50
	ContinuePenalty = 3
)

// Rand is the slice of math/rand/v2 the rules need.
type Rand interface {
	IntN(n int) int
}

// AdvanceHead returns the cell one step from head. The result may be off the
// grid; callers check it with InBounds.
func AdvanceHead(head Cell, d Direction) Cell {
	switch d {
	case Up:
		head.Y--
	case Down:
		head.Y++
	case Left:
		head.X--
	case Right:
		head.X++
	}
	return head
}

// DetectCollision reports whether candidate leaves the grid or lands on any
// cell of body. body is the snake before the move, tail included, so chasing
// the tail into the cell it is about to vacate is fatal.
func DetectCollision(candidate Cell, body []Cell) bool {
	if !InBounds(candidate) {
		return true
	}
	return contains(body, candidate)
}

// PlaceFood draws random cells until one is free of body. It does not
// terminate when body covers the whole grid.
func PlaceFood(body []Cell, rng Rand) Cell {
	for {
		food := Cell{X: rng.IntN(GridSize), Y: rng.IntN(GridSize)}
		if !contains(body, food) {
			return food
		}
	}
}

func LevelFor(score int) int {
	return score/PointsPerLevel + 1
}

func NextSpeed(speed time.Duration) time.Duration {
	return max(MinSpeed, speed-SpeedStep)
}

// Outcome describes what a single Step did.
type Outcome struct {
	Moved    bool
	Ate      bool
	Collided bool
	LevelUp  bool
}

// Step advances s by one tick. Paused and terminal sessions come back
// unchanged with a zero Outcome.
func Step(s Session, rng Rand) (Session, Outcome) {
	var out Outcome
	if s.Over || s.Paused || len(s.Snake) == 0 {
		return s, out
	}

	head := AdvanceHead(s.Snake[0], s.Direction)
	if DetectCollision(head, s.Snake) {
		s.Over = true
		out.Collided = true
		return s, out
	}

	snake := make([]Cell, 0, len(s.Snake)+1)
	snake = append(snake, head)
	snake = append(snake, s.Snake...)
	out.Moved = true

	if head == s.Food {
		out.Ate = true
		s.Score += FoodPoints
		s.Food = PlaceFood(snake, rng)
		if level := LevelFor(s.Score); level > s.Level {
			s.Level = level
			s.Speed = NextSpeed(s.Speed)
			out.LevelUp = true
		}
	} else {
		snake = snake[:len(snake)-1]
	}
	s.Snake = snake
	return s, out
}

func contains(body []Cell, c Cell) bool {
	for _, unit := range body {
		if unit == c {
			return true
		}
	}
	return false
}
