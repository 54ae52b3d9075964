package game

import (
	"slices"
	"time"
)

// Session is one game in progress. Transforms never mutate Snake in place;
// they hand back a session with a fresh slice.
type Session struct {
	Snake     []Cell
	Food      Cell
	Direction Direction
	Score     int
	Level     int
	Speed     time.Duration
	Over      bool
	Paused    bool
}

func NewSession(rng Rand) Session {
	snake := []Cell{Origin}
	return Session{
		Snake:     snake,
		Food:      PlaceFood(snake, rng),
		Direction: Right,
		Score:     0,
		Level:     1,
		Speed:     InitialSpeed,
	}
}

func (s Session) Head() Cell {
	return s.Snake[0]
}

func (s Session) Clone() Session {
	s.Snake = slices.Clone(s.Snake)
	return s
}

// Revive applies the continue penalty: the tail loses ContinuePenalty cells
// (a snake that short restarts at Origin), the heading flips and the session
// is live again.
func (s Session) Revive() Session {
	if len(s.Snake) <= ContinuePenalty {
		s.Snake = []Cell{Origin}
	} else {
		s.Snake = slices.Clone(s.Snake[:len(s.Snake)-ContinuePenalty])
	}
	s.Direction = s.Direction.Opposite()
	s.Over = false
	s.Paused = false
	return s
}
