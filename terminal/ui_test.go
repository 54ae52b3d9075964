package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"snekarcade/engine"
	"snekarcade/game"
	"snekarcade/highscore"
)

type idleScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (idleScheduler) AfterFunc(time.Duration, func()) engine.Timer { return idleTimer{} }

func newTestUI(t *testing.T) (*UI, tcell.SimulationScreen, *engine.Controller, *highscore.Board) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 30)

	board := highscore.NewBoard(&highscore.MemoryStore{})
	ctrl := engine.New(engine.DefaultConfig(), engine.Deps{Scheduler: idleScheduler{}, Scores: board})
	ctrl.Start()
	ui := New(screen, ctrl, board)
	ui.last = ctrl.Snapshot()
	return ui, screen, ctrl, board
}

func row(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawGame(t *testing.T) {
	ui, screen, ctrl, _ := newTestUI(t)
	ui.draw()

	if got := row(screen, 0); !strings.HasPrefix(got, "LEVEL 1  SCORE 0") {
		t.Errorf("unexpected header %q", got)
	}
	head := game.Origin
	if r, _, _, _ := screen.GetContent(1+head.X*cellWidth, 2+head.Y); r != '█' {
		t.Errorf("expected head glyph at origin, got %q", r)
	}
	food := ctrl.Snapshot().Food
	if r, _, _, _ := screen.GetContent(1+food.X*cellWidth, 2+food.Y); r != '●' {
		t.Errorf("expected food glyph at %v, got %q", food, r)
	}
	if r, _, _, _ := screen.GetContent(0, 1); r != '┌' {
		t.Errorf("expected frame corner, got %q", r)
	}
}

func TestKeysDriveController(t *testing.T) {
	ui, screen, ctrl, _ := newTestUI(t)

	ui.handle(tcell.KeyUp, 0)
	if got := ctrl.Snapshot().Direction; got != game.Up {
		t.Errorf("expected up, got %v", got)
	}
	ui.handle(tcell.KeyRune, 'a')
	if got := ctrl.Snapshot().Direction; got != game.Left {
		t.Errorf("expected left, got %v", got)
	}

	ui.handle(tcell.KeyRune, 'p')
	if ctrl.State() != engine.Paused {
		t.Fatalf("expected paused, got %v", ctrl.State())
	}
	ui.last = ctrl.Snapshot()
	ui.draw()
	if got := row(screen, game.GridSize+3); !strings.HasPrefix(got, "PAUSED") {
		t.Errorf("expected paused banner, got %q", got)
	}

	ui.handle(tcell.KeyRune, 'c')
	if !strings.Contains(ui.notice, "no continue") {
		t.Errorf("expected continue refusal notice, got %q", ui.notice)
	}

	if ui.handle(tcell.KeyRune, 'q') {
		t.Error("expected q to quit")
	}
	if ui.handle(tcell.KeyEscape, 0) {
		t.Error("expected escape to quit")
	}
}

func TestScoresView(t *testing.T) {
	ui, screen, ctrl, board := newTestUI(t)
	if err := board.Record(90, 2); err != nil {
		t.Fatal(err)
	}

	ui.handle(tcell.KeyRune, 't')
	if ctrl.State() != engine.Paused {
		t.Errorf("expected game paused behind scores, got %v", ctrl.State())
	}
	ui.draw()
	if got := row(screen, 2); !strings.Contains(got, "#1") || !strings.Contains(got, "90") {
		t.Errorf("expected top score row, got %q", got)
	}

	ui.handle(tcell.KeyRune, 'x')
	ui.draw()
	if got := row(screen, 2); !strings.HasPrefix(got, "No scores yet!") {
		t.Errorf("expected empty state after clear, got %q", got)
	}

	ui.handle(tcell.KeyRune, 'r')
	if ui.view != viewGame || ctrl.State() != engine.Running {
		t.Errorf("expected reset back to a running game, got view %v state %v", ui.view, ctrl.State())
	}
}

func TestPauseKeyIgnoredOnScoresView(t *testing.T) {
	ui, _, ctrl, _ := newTestUI(t)

	ui.handle(tcell.KeyRune, 't')
	if ctrl.State() != engine.Paused {
		t.Fatalf("expected paused on scores view, got %v", ctrl.State())
	}
	ui.handle(tcell.KeyRune, 'p')
	ui.handle(tcell.KeyRune, ' ')
	if ctrl.State() != engine.Paused {
		t.Errorf("expected pause key ignored on scores view, got %v", ctrl.State())
	}
	if ui.view != viewScores {
		t.Errorf("expected to stay on scores view")
	}

	ui.handle(tcell.KeyRune, 't')
	ui.handle(tcell.KeyRune, 'p')
	if ctrl.State() != engine.Running {
		t.Errorf("expected pause key to resume on game view, got %v", ctrl.State())
	}
}
