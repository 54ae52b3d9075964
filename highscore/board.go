package highscore

import (
	"errors"
	"log"
	"sync"
	"time"
)

// Board is the top-10 table on top of a Store. Every finished game is
// recorded; the board keeps only what ranks.
type Board struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

func NewBoard(store Store) *Board {
	return &Board{store: store, now: time.Now}
}

// Record appends a finished game and saves the re-ranked table. A corrupt
// table is replaced; any other read error aborts the save so a transient
// failure never wipes existing scores.
func (b *Board) Record(score, level int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.store.Load()
	if errors.Is(err, ErrCorrupt) {
		log.Printf("Error loading high scores, starting fresh: %v", err)
		entries = nil
	} else if err != nil {
		return err
	}

	entries = append(entries, Entry{Score: score, Level: level, Date: b.now().UTC()})
	return b.store.Save(Rank(entries))
}

// Top returns the ranked table, or nothing if it cannot be read.
func (b *Board) Top() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.store.Load()
	if err != nil {
		log.Printf("Error loading high scores: %v", err)
		return nil
	}
	return Rank(entries)
}

func (b *Board) Best() int {
	top := b.Top()
	if len(top) == 0 {
		return 0
	}
	return top[0].Score
}

func (b *Board) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Clear()
}
