package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/feifei876/alien-invasion/internal/difficulty"
)

// DefaultPath is the record written next to the binary's working directory.
const DefaultPath = "high_scores.json"

// FileStore keeps the table as a flat JSON object, e.g.
// {"easy":0,"hard":1200,"normal":350}.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. Missing files yield zeros; malformed content yields
// zeros and an error. Tiers absent from the file or holding a non-integer
// value are zero; tiers the game does not know are ignored.
func (s *FileStore) Load() (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(), nil
	}
	if err != nil {
		return NewTable(), fmt.Errorf("read high scores: %w", err)
	}
	return decode(data)
}

// decode parses a flat JSON record into a complete table.
func decode(data []byte) (Table, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewTable(), fmt.Errorf("decode high scores: %w", err)
	}

	t := make(Table, len(raw))
	var errs []error
	for name, value := range raw {
		tier, ok := difficulty.ParseTier(name)
		if !ok {
			continue
		}
		var score int
		if err := json.Unmarshal(value, &score); err != nil {
			errs = append(errs, fmt.Errorf("tier %s: %w", name, err))
			continue
		}
		t[tier] = score
	}
	return t.normalize(), errors.Join(errs...)
}

// Save replaces the record with the full table.
func (s *FileStore) Save(t Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(difficulty.All()))
	for tier, score := range t.normalize() {
		out[string(tier)] = score
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create high score dir: %w", err)
		}
	}
	return writeAtomic(dir, s.path, data)
}

// writeAtomic writes data to a temporary file in dir and renames it over
// path, so readers see either the old record or the new one.
func writeAtomic(dir, path string, data []byte) (err error) {
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write high scores: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write high scores: %w", err)
	}
	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()
		return fmt.Errorf("write high scores: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write high scores: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replace high scores: %w", err)
	}
	return nil
}
