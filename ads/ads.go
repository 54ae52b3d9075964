package ads

import (
	"errors"
	"fmt"
)

var ErrNotLoaded = errors.New("ad not loaded")

type Kind uint8

const (
	Banner Kind = iota
	Interstitial
	Rewarded
)

func (k Kind) String() string {
	switch k {
	case Banner:
		return "banner"
	case Interstitial:
		return "interstitial"
	case Rewarded:
		return "rewarded"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type State uint8

const (
	Idle State = iota
	Loading
	Loaded
	Showing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Showing:
		return "showing"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

type Event uint8

const (
	EventLoaded Event = iota
	EventFailed
	EventClosed
	EventEarnedReward
)

func (e Event) String() string {
	switch e {
	case EventLoaded:
		return "loaded"
	case EventFailed:
		return "failed"
	case EventClosed:
		return "closed"
	case EventEarnedReward:
		return "earnedReward"
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// Provider is one ad slot. Load and Show never block; results arrive on
// Events.
type Provider interface {
	Kind() Kind
	Load()
	Show() error
	State() State
	Events() <-chan Event
}

// Units maps each slot to an ad network unit id.
type Units struct {
	Banner       string
	Interstitial string
	Rewarded     string
}

// TestUnits are the ad network's public sample units, safe in development.
var TestUnits = Units{
	Banner:       "ca-app-pub-3940256099942544/6300978111",
	Interstitial: "ca-app-pub-3940256099942544/1033173712",
	Rewarded:     "ca-app-pub-3940256099942544/5224354917",
}

// UnitsFor returns TestUnits when test is set or production has gaps.
func UnitsFor(production Units, test bool) Units {
	if test {
		return TestUnits
	}
	if production.Banner == "" {
		production.Banner = TestUnits.Banner
	}
	if production.Interstitial == "" {
		production.Interstitial = TestUnits.Interstitial
	}
	if production.Rewarded == "" {
		production.Rewarded = TestUnits.Rewarded
	}
	return production
}

func (u Units) For(k Kind) string {
	switch k {
	case Banner:
		return u.Banner
	case Interstitial:
		return u.Interstitial
	default:
		return u.Rewarded
	}
}
