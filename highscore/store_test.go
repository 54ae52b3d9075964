package highscore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
	entries, err := fs.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestFileStoreRoundTripFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	fs := NewFileStore(path)
	date := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	if err := fs.Save([]Entry{{Score: 120, Level: 3, Date: date}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("expected a JSON array, got %s", data)
	}
	if len(raw) != 1 || raw[0]["score"] != 120.0 || raw[0]["level"] != 3.0 || raw[0]["date"] != "2026-03-01T12:30:00Z" {
		t.Errorf("unexpected wire format: %s", data)
	}

	entries, err := fs.Load()
	if err != nil || len(entries) != 1 || !entries[0].Date.Equal(date) {
		t.Errorf("unexpected load: %v (%v)", entries, err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileStore(path).Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	fs := NewFileStore(path)
	if err := fs.Clear(); err != nil {
		t.Errorf("clear on missing file: %v", err)
	}
	if err := fs.Save([]Entry{{Score: 10, Level: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file removed, stat err %v", err)
	}
}

func TestRank(t *testing.T) {
	var entries []Entry
	for i := 0; i < 15; i++ {
		entries = append(entries, Entry{Score: (i % 5) * 10, Level: i})
	}
	ranked := Rank(entries)
	if len(ranked) != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("not sorted at %d: %v", i, ranked)
		}
	}
	// Ties keep insertion order: the three 40s came in at levels 4, 9, 14.
	if ranked[0].Level != 4 || ranked[1].Level != 9 || ranked[2].Level != 14 {
		t.Errorf("expected stable order among ties, got %v", ranked[:3])
	}
	if len(entries) != 15 {
		t.Errorf("Rank modified its input")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
