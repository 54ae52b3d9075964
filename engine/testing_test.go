package engine

import (
	"sync"
	"time"

	"snekarcade/ads"
)

// fakeScheduler records timers instead of running them. fire runs the most
// recently armed live timer.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) live() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.timers) - 1; i >= 0; i-- {
		if !s.timers[i].stopped {
			return s.timers[i]
		}
	}
	return nil
}

func (s *fakeScheduler) fire() bool {
	t := s.live()
	if t == nil {
		return false
	}
	t.stopped = true
	t.f()
	return true
}

func (s *fakeScheduler) armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// fakeAd is a Provider whose state is set directly by the test.
type fakeAd struct {
	mu     sync.Mutex
	kind   ads.Kind
	state  ads.State
	loads  int
	shows  int
	events chan ads.Event
}

func newFakeAd(kind ads.Kind, state ads.State) *fakeAd {
	return &fakeAd{kind: kind, state: state, events: make(chan ads.Event, 4)}
}

func (a *fakeAd) Kind() ads.Kind { return a.kind }

func (a *fakeAd) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loads++
}

func (a *fakeAd) Show() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != ads.Loaded {
		return ads.ErrNotLoaded
	}
	a.shows++
	a.state = ads.Showing
	return nil
}

func (a *fakeAd) State() ads.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *fakeAd) Events() <-chan ads.Event { return a.events }

func (a *fakeAd) set(s ads.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
}

func (a *fakeAd) counts() (loads, shows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loads, a.shows
}
