package engine

import (
	"slices"
	"time"

	"snekarcade/game"
)

// Snapshot is what front ends render. It owns its snake slice.
type Snapshot struct {
	State           State          `json:"state"`
	Snake           []game.Cell    `json:"snake"`
	Food            game.Cell      `json:"food"`
	Direction       game.Direction `json:"direction"`
	Score           int            `json:"score"`
	Level           int            `json:"level"`
	SpeedMs         int64          `json:"speed"`
	ContinueOffered bool           `json:"continueOffered"`
	ContinueReady   bool           `json:"continueReady"`
	GamesPlayed     int            `json:"gamesPlayed"`
}

func (s Snapshot) Session() game.Session {
	return game.Session{
		Snake:     slices.Clone(s.Snake),
		Food:      s.Food,
		Direction: s.Direction,
		Score:     s.Score,
		Level:     s.Level,
		Speed:     time.Duration(s.SpeedMs) * time.Millisecond,
		Over:      s.State.Terminal(),
		Paused:    s.State == Paused,
	}
}
