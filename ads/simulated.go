package ads

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

const eventBuffer = 16

type SimConfig struct {
	// FillRate is the probability in [0,1] that a load succeeds.
	FillRate float64
	// Latency is how long a load takes to resolve.
	Latency time.Duration
	// Duration is how long a shown ad stays on screen before closing.
	Duration time.Duration
}

func DefaultSimConfig() SimConfig {
	return SimConfig{
		FillRate: 1,
		Latency:  500 * time.Millisecond,
		Duration: 3 * time.Second,
	}
}

// Slot is an in-process stand-in for an ad network slot. A rewarded slot
// emits EventEarnedReward right before EventClosed when its ad finishes.
type Slot struct {
	kind Kind
	unit string
	cfg  SimConfig

	mu     sync.Mutex
	state  State
	rng    *rand.Rand
	events chan Event
}

func NewSlot(kind Kind, unit string, cfg SimConfig) *Slot {
	return &Slot{
		kind:   kind,
		unit:   unit,
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		events: make(chan Event, eventBuffer),
	}
}

func (s *Slot) Kind() Kind {
	return s.kind
}

func (s *Slot) Unit() string {
	return s.unit
}

func (s *Slot) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Slot) Events() <-chan Event {
	return s.events
}

// Load requests a fill. It is a no-op while a load is in flight or an ad is
// already loaded or showing.
func (s *Slot) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return
	}
	s.state = Loading
	time.AfterFunc(s.cfg.Latency, s.resolveLoad)
}

func (s *Slot) resolveLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Loading {
		return
	}
	if s.rng.Float64() < s.cfg.FillRate {
		s.state = Loaded
		s.emit(EventLoaded)
		return
	}
	s.state = Idle
	log.Printf("ads: no fill for %s unit %s", s.kind, s.Unit())
	s.emit(EventFailed)
}

// Show displays a loaded ad. Banners stay loaded and never close on their own.
func (s *Slot) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Loaded {
		return ErrNotLoaded
	}
	if s.kind == Banner {
		return nil
	}
	s.state = Showing
	time.AfterFunc(s.cfg.Duration, s.finish)
	return nil
}

func (s *Slot) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Showing {
		return
	}
	if s.kind == Rewarded {
		s.emit(EventEarnedReward)
	}
	s.state = Idle
	s.emit(EventClosed)
}

func (s *Slot) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		log.Printf("ads: %s slot dropped %s event", s.kind, ev)
	}
}
