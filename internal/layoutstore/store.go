// Package layoutstore persists named dock layouts as JSON files.
package layoutstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/regenrek/peakydock/internal/appdirs"
	"github.com/regenrek/peakydock/internal/atomicfile"
	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/userpath"
)

const (
	CurrentSchemaVersion = 1
	MaxNameLength        = 64

	quarantineDirName = "quarantine"
	layoutExt         = ".json"
)

var ErrNotFound = errors.New("layoutstore: layout not found")

type Config struct {
	// Dir defaults to appdirs.LayoutsDir.
	Dir string
}

// Entry is one saved layout as written to disk.
type Entry struct {
	SchemaVersion int         `json:"schemaVersion"`
	Name          string      `json:"name"`
	SavedAt       time.Time   `json:"savedAt"`
	Layout        dock.Layout `json:"layout"`
}

// Store keeps an in-memory index of the layouts in one directory. It is safe
// for concurrent use.
type Store struct {
	dir string

	mu      sync.RWMutex
	entries map[string]Entry
}

func NewStore(cfg Config) (*Store, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		var err error
		if dir, err = appdirs.LayoutsDir(); err != nil {
			return nil, fmt.Errorf("layoutstore: %w", err)
		}
	}
	dir = filepath.Clean(userpath.ExpandUser(dir))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("layoutstore: create dir: %w", err)
	}
	return &Store{dir: dir, entries: make(map[string]Entry)}, nil
}

func (s *Store) Dir() string { return s.dir }

// Load replaces the index with the layouts on disk. Files that fail to decode
// or validate are moved into the quarantine directory.
func (s *Store) Load(ctx context.Context) error {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("layoutstore: read dir: %w", err)
	}
	loaded := make(map[string]Entry)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if file.IsDir() || !strings.HasSuffix(file.Name(), layoutExt) {
			continue
		}
		path := filepath.Join(s.dir, file.Name())
		entry, err := readEntry(path)
		if err == nil && entry.Name != strings.TrimSuffix(file.Name(), layoutExt) {
			err = fmt.Errorf("layoutstore: name %q does not match file", entry.Name)
		}
		if err != nil {
			slog.Warn("layoutstore: quarantining layout", slog.String("file", file.Name()), slog.Any("err", err))
			s.quarantine(path)
			continue
		}
		loaded[entry.Name] = entry
	}
	s.mu.Lock()
	s.entries = loaded
	s.mu.Unlock()
	return nil
}

// Save validates and writes a layout under name, replacing any previous one.
func (s *Store) Save(ctx context.Context, name string, layout dock.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := SanitizeName(name)
	if err != nil {
		return err
	}
	if err := dock.ValidateLayout(layout); err != nil {
		return fmt.Errorf("layoutstore: %s: %w", name, err)
	}
	entry := Entry{
		SchemaVersion: CurrentSchemaVersion,
		Name:          name,
		SavedAt:       time.Now().UTC(),
		Layout:        layout,
	}
	if err := atomicfile.WriteJSON(s.path(name), entry, 0o600); err != nil {
		return fmt.Errorf("layoutstore: %w", err)
	}
	s.mu.Lock()
	s.entries[name] = entry
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(name string) (Entry, error) {
	name, err := SanitizeName(name)
	if err != nil {
		return Entry{}, err
	}
	s.mu.RLock()
	entry, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return entry, nil
}

// Names returns the saved layout names sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (s *Store) Delete(name string) error {
	name, err := SanitizeName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	_, known := s.entries[name]
	delete(s.entries, name)
	s.mu.Unlock()
	err = os.Remove(s.path(name))
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err) && !known:
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("layoutstore: delete %s: %w", name, err)
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+layoutExt)
}

func (s *Store) quarantine(path string) {
	dir := filepath.Join(s.dir, quarantineDirName)
	_ = os.MkdirAll(dir, 0o700)
	stamp := time.Now().UTC().Format("20060102-150405")
	_ = os.Rename(path, filepath.Join(dir, filepath.Base(path)+"-"+stamp))
}

func readEntry(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, fmt.Errorf("layoutstore: read: %w", err)
	}
	return DecodeEntry(data)
}

// DecodeEntry parses a stored layout file and validates its layout.
func DecodeEntry(data []byte) (Entry, error) {
	var entry Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entry); err != nil {
		return Entry{}, fmt.Errorf("layoutstore: decode: %w", err)
	}
	if entry.SchemaVersion != CurrentSchemaVersion {
		return Entry{}, fmt.Errorf("layoutstore: unknown schema %d", entry.SchemaVersion)
	}
	if _, err := SanitizeName(entry.Name); err != nil {
		return Entry{}, err
	}
	if err := dock.ValidateLayout(entry.Layout); err != nil {
		return Entry{}, fmt.Errorf("layoutstore: %s: %w", entry.Name, err)
	}
	return entry, nil
}

// SanitizeName trims name and checks that it is a safe file stem.
func SanitizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("layoutstore: layout name is required")
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("layoutstore: layout name longer than %d bytes", MaxNameLength)
	}
	if name == "." || name == ".." {
		return "", fmt.Errorf("layoutstore: invalid layout name %q", name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return "", fmt.Errorf("layoutstore: invalid layout name %q", name)
		}
	}
	return name, nil
}
