package highscore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestBoardRecordKeepsTopTen(t *testing.T) {
	b := NewBoard(&MemoryStore{})
	for i := 1; i <= 12; i++ {
		if err := b.Record(i*10, i); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	top := b.Top()
	if len(top) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(top))
	}
	if top[0].Score != 120 || top[len(top)-1].Score != 30 {
		t.Errorf("unexpected range %d..%d", top[0].Score, top[len(top)-1].Score)
	}
	if b.Best() != 120 {
		t.Errorf("expected best 120, got %d", b.Best())
	}
}

func TestBoardRecordsNonQualifyingScore(t *testing.T) {
	store := &MemoryStore{}
	b := NewBoard(store)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	if err := b.Record(0, 1); err != nil {
		t.Fatal(err)
	}
	entries, _ := store.Load()
	if len(entries) != 1 || entries[0].Score != 0 || !entries[0].Date.Equal(fixed) {
		t.Errorf("expected zero score recorded with fixed date, got %v", entries)
	}
}

func TestBoardStoreFailure(t *testing.T) {
	b := NewBoard(&MemoryStore{Err: errors.New("disk on fire")})
	if err := b.Record(50, 2); err == nil {
		t.Error("expected record error to surface")
	}
	if top := b.Top(); top != nil {
		t.Errorf("expected empty table on failure, got %v", top)
	}
	if b.Best() != 0 {
		t.Errorf("expected best 0, got %d", b.Best())
	}
}

func TestBoardReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	fs := NewFileStore(path)
	if err := writeFile(path, "[{"); err != nil {
		t.Fatal(err)
	}
	b := NewBoard(fs)
	if err := b.Record(30, 1); err != nil {
		t.Fatalf("expected corrupt table to be replaced, got %v", err)
	}
	if top := b.Top(); len(top) != 1 || top[0].Score != 30 {
		t.Errorf("unexpected table %v", top)
	}
}

func TestBoardClear(t *testing.T) {
	b := NewBoard(NewFileStore(filepath.Join(t.TempDir(), "scores.json")))
	_ = b.Record(10, 1)
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(b.Top()) != 0 {
		t.Error("expected empty table after clear")
	}
}
