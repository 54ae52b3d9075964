package terminal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"snekarcade/engine"
	"snekarcade/game"
	"snekarcade/highscore"
)

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// cellWidth is how many columns one grid cell takes, so cells look square.
const cellWidth = 2

type view uint8

const (
	viewGame view = iota
	viewScores
)

// UI renders a controller onto a tcell screen and turns keys into
// controller calls.
type UI struct {
	screen tcell.Screen
	ctrl   *engine.Controller
	board  *highscore.Board
	view   view
	last   engine.Snapshot
	notice string
}

func New(screen tcell.Screen, ctrl *engine.Controller, board *highscore.Board) *UI {
	return &UI{screen: screen, ctrl: ctrl, board: board}
}

// Run draws every controller update and handles input until the player
// quits or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	u.last = u.ctrl.Snapshot()
	u.draw()
	updates := u.ctrl.Updates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			u.last = snap
			u.draw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !u.handle(ev.Key(), ev.Rune()) {
					u.ctrl.Home()
					return nil
				}
				u.draw()
			case *tcell.EventResize:
				u.screen.Sync()
				u.draw()
			}
		}
	}
}

// handle applies one key press. It returns false to quit.
func (u *UI) handle(key tcell.Key, r rune) bool {
	u.notice = ""
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		u.ctrl.ChangeDirection(game.Up)
	case tcell.KeyDown:
		u.ctrl.ChangeDirection(game.Down)
	case tcell.KeyLeft:
		u.ctrl.ChangeDirection(game.Left)
	case tcell.KeyRight:
		u.ctrl.ChangeDirection(game.Right)
	case tcell.KeyRune:
		return u.handleRune(r)
	}
	return true
}

func (u *UI) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w', 'k':
		u.ctrl.ChangeDirection(game.Up)
	case 's', 'j':
		u.ctrl.ChangeDirection(game.Down)
	case 'a', 'h':
		u.ctrl.ChangeDirection(game.Left)
	case 'd', 'l':
		u.ctrl.ChangeDirection(game.Right)
	case 'p', ' ':
		if u.view == viewGame {
			u.ctrl.TogglePause()
		}
	case 'r':
		u.view = viewGame
		u.ctrl.Reset()
	case 'c':
		if err := u.ctrl.RequestContinue(); err != nil {
			if errors.Is(err, engine.ErrAdNotReady) {
				u.notice = "ad still loading, try again"
			} else {
				u.notice = err.Error()
			}
		}
	case 't':
		if u.view == viewScores {
			u.view = viewGame
		} else {
			u.ctrl.Pause()
			u.view = viewScores
		}
	case 'x':
		if u.view == viewScores {
			if err := u.board.Clear(); err != nil {
				u.notice = err.Error()
			}
		}
	}
	return true
}

func (u *UI) draw() {
	u.screen.Clear()
	if u.view == viewScores {
		u.drawScores()
	} else {
		u.drawGame()
	}
	u.screen.Show()
}

func (u *UI) drawGame() {
	snap := u.last
	right := game.GridSize*cellWidth + 1

	u.text(0, 0, fmt.Sprintf("LEVEL %d  SCORE %d  GAMES %d", snap.Level, snap.Score, snap.GamesPlayed), styleText)
	u.frame(0, 1, right, game.GridSize+2)

	board := game.NewBoard(snap.Session())
	for x := 0; x < game.GridSize; x++ {
		for y := 0; y < game.GridSize; y++ {
			var r rune
			var style tcell.Style
			switch board[x][y].Fill {
			case game.Head:
				r, style = '█', styleHead
			case game.Body:
				r, style = '▓', styleBody
			case game.Food:
				r, style = '●', styleFood
			default:
				continue
			}
			for i := 0; i < cellWidth; i++ {
				u.screen.SetContent(1+x*cellWidth+i, 2+y, r, nil, style)
			}
		}
	}

	status := game.GridSize + 3
	switch snap.State {
	case engine.Paused:
		u.text(0, status, "PAUSED  p resume", styleAlert)
	case engine.GameOver:
		u.text(0, status, "GAME OVER  r play again", styleAlert)
	case engine.GameOverWithContinueOffer:
		line := "GAME OVER  r play again  c watch ad to continue"
		if !snap.ContinueReady {
			line = "GAME OVER  r play again  (continue loading...)"
		}
		u.text(0, status, line, styleAlert)
	default:
		u.text(0, status, "arrows/wasd steer  p pause  t scores  q quit", styleDim)
	}
	if u.notice != "" {
		u.text(0, status+1, u.notice, styleDim)
	}
}

func (u *UI) drawScores() {
	u.text(0, 0, "HIGH SCORES", styleHead)
	scores := u.board.Top()
	if len(scores) == 0 {
		u.text(0, 2, "No scores yet!", styleText)
		u.text(0, 3, "Play a game to set your first record", styleDim)
	}
	for i, e := range scores {
		style := styleText
		if i == 0 {
			style = styleFood
		}
		u.text(0, 2+i, fmt.Sprintf("#%-2d %6d  Level %-3d %s", i+1, e.Score, e.Level, e.Date.Local().Format("Jan 2, 2006")), style)
	}
	u.text(0, 3+highscore.MaxEntries, "t back  x clear  q quit", styleDim)
	if u.notice != "" {
		u.text(0, 4+highscore.MaxEntries, u.notice, styleDim)
	}
}

func (u *UI) frame(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		u.screen.SetContent(x, y0, '─', nil, styleBorder)
		u.screen.SetContent(x, y1, '─', nil, styleBorder)
	}
	for y := y0; y <= y1; y++ {
		u.screen.SetContent(x0, y, '│', nil, styleBorder)
		u.screen.SetContent(x1, y, '│', nil, styleBorder)
	}
	u.screen.SetContent(x0, y0, '┌', nil, styleBorder)
	u.screen.SetContent(x1, y0, '┐', nil, styleBorder)
	u.screen.SetContent(x0, y1, '└', nil, styleBorder)
	u.screen.SetContent(x1, y1, '┘', nil, styleBorder)
}

func (u *UI) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
