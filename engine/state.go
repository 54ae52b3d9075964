package engine

import "fmt"

type State uint8

const (
	Running State = iota
	Paused
	GameOver
	GameOverWithContinueOffer
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "gameOver"
	case GameOverWithContinueOffer:
		return "gameOverWithContinueOffer"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for candidate := Running; candidate <= GameOverWithContinueOffer; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

func (s State) Terminal() bool {
	return s == GameOver || s == GameOverWithContinueOffer
}
