package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"snekarcade/ads"
	"snekarcade/engine"
	"snekarcade/haptics"
	"snekarcade/haptics/tone"
	"snekarcade/highscore"
	"snekarcade/terminal"
)

const (
	logDir      = "logs"
	logFileName = "snekterm.log"
)

// setupLogging sends log output to a file when debug is set. The screen
// belongs to tcell, so otherwise it is discarded.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".snek", "highscores.json")
	}
	return filepath.Join(home, ".snek", "highscores.json")
}

func main() {
	data := flag.String("data", defaultDataPath(), "high score file")
	sound := flag.Bool("sound", true, "play tones for feedback")
	debugLog := flag.Bool("debug", false, "write logs to "+filepath.Join(logDir, logFileName))
	simAds := ads.DefaultSimConfig()
	flag.Float64Var(&simAds.FillRate, "ad-fill", simAds.FillRate, "probability an ad load succeeds")
	flag.DurationVar(&simAds.Duration, "ad-duration", simAds.Duration, "time an ad stays on screen")
	flag.Parse()

	if f := setupLogging(*debugLog); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	// Runs before the deferred Fini; os.Exit skips the rest.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "snekterm crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	var feedback haptics.Sink = haptics.Nop{}
	if *sound {
		if sink, err := tone.New(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sink.Close()
			feedback = sink
		}
	}

	store := highscore.NewFileStore(*data)
	log.Printf("high scores at %s", store.Path())
	board := highscore.NewBoard(store)
	units := ads.TestUnits
	ctrl := engine.New(engine.DefaultConfig(), engine.Deps{
		Scores:       board,
		Interstitial: ads.NewSlot(ads.Interstitial, units.Interstitial, simAds),
		Rewarded:     ads.NewSlot(ads.Rewarded, units.Rewarded, simAds),
		Haptics:      feedback,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go ctrl.Run(ctx)
	ctrl.Start()

	if err := terminal.New(screen, ctrl, board).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("terminal: %v", err)
	}
	ctrl.Home()
	ctrl.Wait()
}
