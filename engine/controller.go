package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"snekarcade/ads"
	"snekarcade/game"
	"snekarcade/haptics"
)

var (
	ErrNoContinueOffer = errors.New("no continue on offer")
	ErrAdNotReady      = errors.New("rewarded ad not ready")
)

type Config struct {
	// InterstitialEvery shows the interstitial after every Nth finished
	// episode. Zero disables it.
	InterstitialEvery int
	// MaxContinues caps revives per game.
	MaxContinues int
	// UpdateBuffer is the capacity of the Updates channel.
	UpdateBuffer int
}

func DefaultConfig() Config {
	return Config{
		InterstitialEvery: 3,
		MaxContinues:      1,
		UpdateBuffer:      8,
	}
}

// Recorder persists a finished episode. highscore.Board satisfies it.
type Recorder interface {
	Record(score, level int) error
}

// Deps are the collaborators a controller talks to. Nil members are
// treated as absent features.
type Deps struct {
	Scheduler    Scheduler
	Rand         game.Rand
	Scores       Recorder
	Interstitial ads.Provider
	Rewarded     ads.Provider
	Haptics      haptics.Sink
}

// Controller owns one GameSession and drives it from timer ticks, player
// input and ad events. All mutation happens under mu.
type Controller struct {
	cfg  Config
	deps Deps

	mu            sync.Mutex
	session       game.Session
	state         State
	continuesUsed int
	episodes      int
	timer         Timer
	generation    uint64
	closed        bool

	updates chan Snapshot
	saves   sync.WaitGroup
}

func New(cfg Config, deps Deps) *Controller {
	if deps.Scheduler == nil {
		deps.Scheduler = WallClock
	}
	if deps.Rand == nil {
		deps.Rand = globalRand{}
	}
	if deps.Haptics == nil {
		deps.Haptics = haptics.Nop{}
	}
	if cfg.UpdateBuffer < 1 {
		cfg.UpdateBuffer = 1
	}
	return &Controller{
		cfg:     cfg,
		deps:    deps,
		session: game.NewSession(deps.Rand),
		state:   Running,
		updates: make(chan Snapshot, cfg.UpdateBuffer),
	}
}

// Start arms the first tick and asks the ad slots to fill.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.loadAd(c.deps.Interstitial)
	c.loadAd(c.deps.Rewarded)
	if c.state == Running {
		c.arm()
	}
	c.publish()
}

// Updates delivers a snapshot after every change. When the reader falls
// behind the oldest snapshot is dropped. Closed by Home.
func (c *Controller) Updates() <-chan Snapshot {
	return c.updates
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tick runs one step. Outside Running it does nothing.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick()
}

func (c *Controller) onTimer(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.timer = nil
	c.tick()
}

func (c *Controller) tick() {
	if c.closed || c.state != Running {
		return
	}

	next, out := game.Step(c.session, c.deps.Rand)
	c.session = next
	switch {
	case out.Collided:
		c.gameOver()
	case out.Ate:
		c.deps.Haptics.Trigger(haptics.Medium)
		c.arm()
	default:
		c.arm()
	}
	c.publish()
}

// ChangeDirection applies d right away so the next tick already uses it.
// It reports false when the request is ignored: not running, a reversal,
// or no change.
func (c *Controller) ChangeDirection(d game.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != Running {
		return false
	}
	current := c.session.Direction
	if d == current || d == current.Opposite() {
		return false
	}
	c.session.Direction = d
	c.deps.Haptics.Trigger(haptics.Light)
	c.publish()
	return true
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != Running {
		return
	}
	c.state = Paused
	c.session.Paused = true
	c.disarm()
	c.publish()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != Paused {
		return
	}
	c.state = Running
	c.session.Paused = false
	c.arm()
	c.publish()
}

func (c *Controller) TogglePause() {
	if c.State() == Paused {
		c.Resume()
		return
	}
	c.Pause()
}

// Reset starts a fresh game in Running, from any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.session = game.NewSession(c.deps.Rand)
	c.state = Running
	c.continuesUsed = 0
	c.loadAd(c.deps.Interstitial)
	c.loadAd(c.deps.Rewarded)
	c.arm()
	c.publish()
}

// RequestContinue shows the rewarded ad for the current game over. The
// revive itself happens when the ad reports EventEarnedReward.
func (c *Controller) RequestContinue() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.state != GameOverWithContinueOffer {
		return ErrNoContinueOffer
	}
	rewarded := c.deps.Rewarded
	if rewarded.State() != ads.Loaded {
		c.loadAd(rewarded)
		return ErrAdNotReady
	}
	if err := rewarded.Show(); err != nil {
		c.loadAd(rewarded)
		return fmt.Errorf("show rewarded ad: %w", err)
	}
	return nil
}

// HandleAdEvent feeds one provider event into the state machine.
func (c *Controller) HandleAdEvent(kind ads.Kind, ev ads.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	switch ev {
	case ads.EventEarnedReward:
		if kind != ads.Rewarded || c.state != GameOverWithContinueOffer {
			return
		}
		c.session = c.session.Revive()
		c.continuesUsed++
		c.state = Running
		c.arm()
	case ads.EventClosed:
		c.loadAd(c.provider(kind))
	case ads.EventFailed:
		log.Printf("%s ad failed to load", kind)
	}
	c.publish()
}

// Run pumps ad events into the controller until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	var interstitial, rewarded <-chan ads.Event
	if c.deps.Interstitial != nil {
		interstitial = c.deps.Interstitial.Events()
	}
	if c.deps.Rewarded != nil {
		rewarded = c.deps.Rewarded.Events()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-interstitial:
			c.HandleAdEvent(c.deps.Interstitial.Kind(), ev)
		case ev := <-rewarded:
			c.HandleAdEvent(c.deps.Rewarded.Kind(), ev)
		}
	}
}

// Home stops the game for good and closes Updates.
func (c *Controller) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.disarm()
	c.closed = true
	close(c.updates)
}

// Wait blocks until pending high score saves finish.
func (c *Controller) Wait() {
	c.saves.Wait()
}

func (c *Controller) gameOver() {
	c.disarm()
	c.episodes++
	c.deps.Haptics.Trigger(haptics.Error)

	score, level := c.session.Score, c.session.Level
	if c.deps.Scores != nil {
		c.saves.Add(1)
		go func() {
			defer c.saves.Done()
			if err := c.deps.Scores.Record(score, level); err != nil {
				log.Printf("Error saving high score: %v", err)
			}
		}()
	}

	if every := c.cfg.InterstitialEvery; every > 0 && c.episodes%every == 0 {
		if in := c.deps.Interstitial; in != nil && in.State() == ads.Loaded {
			if err := in.Show(); err != nil {
				log.Printf("Error showing interstitial: %v", err)
			}
		}
	}

	c.state = GameOver
	if c.continuesUsed < c.cfg.MaxContinues && c.rewardedLoaded() {
		c.state = GameOverWithContinueOffer
	}
}

func (c *Controller) arm() {
	c.disarm()
	generation := c.generation
	c.timer = c.deps.Scheduler.AfterFunc(c.session.Speed, func() {
		c.onTimer(generation)
	})
}

func (c *Controller) disarm() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) provider(kind ads.Kind) ads.Provider {
	switch kind {
	case ads.Interstitial:
		return c.deps.Interstitial
	case ads.Rewarded:
		return c.deps.Rewarded
	}
	return nil
}

func (c *Controller) loadAd(p ads.Provider) {
	if p != nil {
		p.Load()
	}
}

func (c *Controller) rewardedLoaded() bool {
	return c.deps.Rewarded != nil && c.deps.Rewarded.State() == ads.Loaded
}

func (c *Controller) snapshot() Snapshot {
	s := c.session.Clone()
	return Snapshot{
		State:           c.state,
		Snake:           s.Snake,
		Food:            s.Food,
		Direction:       s.Direction,
		Score:           s.Score,
		Level:           s.Level,
		SpeedMs:         s.Speed.Milliseconds(),
		ContinueOffered: c.state == GameOverWithContinueOffer,
		ContinueReady:   c.state == GameOverWithContinueOffer && c.rewardedLoaded(),
		GamesPlayed:     c.episodes,
	}
}

func (c *Controller) publish() {
	if c.closed {
		return
	}
	snap := c.snapshot()
	select {
	case c.updates <- snap:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- snap:
	default:
	}
}
