package haptics

import (
	"fmt"
	"sync"
)

type Feedback uint8

const (
	// Light is the impact for a direction change.
	Light Feedback = iota
	// Medium is the impact for eating food.
	Medium
	// Error is the notification for a collision.
	Error
)

func (f Feedback) String() string {
	switch f {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Feedback(%d)", uint8(f))
}

func (f Feedback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Sink receives fire-and-forget feedback. Implementations must not block.
type Sink interface {
	Trigger(f Feedback)
}

type Nop struct{}

func (Nop) Trigger(Feedback) {}

type Func func(Feedback)

func (fn Func) Trigger(f Feedback) {
	fn(f)
}

// Recorder keeps every feedback it receives.
type Recorder struct {
	mu  sync.Mutex
	got []Feedback
}

func (r *Recorder) Trigger(f Feedback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, f)
}

func (r *Recorder) Feedback() []Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Feedback(nil), r.got...)
}

func (r *Recorder) Count(f Feedback) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, g := range r.got {
		if g == f {
			n++
		}
	}
	return n
}
