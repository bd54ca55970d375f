package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultTOMLPath = "~/.config/stories/state.toml"

// TOMLStore keeps all values in one flat TOML file. Every Set rewrites the
// file.
type TOMLStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenTOML loads the file at path. A missing or unreadable file starts an
// empty store; the file is created on the first Set.
func OpenTOML(path string) (*TOMLStore, error) {
	resolved, err := resolvePath(path, defaultTOMLPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	s := &TOMLStore{path: resolved, values: make(map[string]string)}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return s, nil // Graceful degradation
	}
	if err := toml.Unmarshal(bytes, &s.values); err != nil {
		s.values = make(map[string]string)
		return s, nil // Graceful degradation
	}
	return s, nil
}

// Path returns the resolved file path.
func (s *TOMLStore) Path() string {
	return s.path
}

func (s *TOMLStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *TOMLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *TOMLStore) Close() error { return nil }

func (s *TOMLStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	bytes, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
