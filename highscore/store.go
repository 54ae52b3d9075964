package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// MaxEntries is how many entries survive a save.
const MaxEntries = 10

var ErrCorrupt = errors.New("high score data is corrupt")

type Entry struct {
	Score int       `json:"score"`
	Level int       `json:"level"`
	Date  time.Time `json:"date"`
}

type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Clear() error
}

// Rank sorts entries by score, highest first, keeping insertion order among
// ties, and truncates to MaxEntries.
func Rank(entries []Entry) []Entry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return b.Score - a.Score
	})
	if len(ranked) > MaxEntries {
		ranked = ranked[:MaxEntries]
	}
	return ranked
}

// FileStore keeps the collection as a JSON array in a single file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Path() string {
	return fs.path
}

// Load returns no entries and no error when the file does not exist yet.
func (fs *FileStore) Load() ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

func (fs *FileStore) Save(entries []Entry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return err
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path)
}

func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is a Store that lives for the process. Err, when set, is
// returned from every call.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	Err     error
}

func (ms *MemoryStore) Load() ([]Entry, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.Err != nil {
		return nil, ms.Err
	}
	return slices.Clone(ms.entries), nil
}

func (ms *MemoryStore) Save(entries []Entry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.Err != nil {
		return ms.Err
	}
	ms.entries = slices.Clone(entries)
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.Err != nil {
		return ms.Err
	}
	ms.entries = nil
	return nil
}
