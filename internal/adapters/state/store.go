// Package state persists history rotation bookkeeping in a flat JSON file.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is the state file used when no --workdir flag is given.
const DefaultPath = ".cid-work/history.json"

// Store implements ports.HistoryStore using a JSON file. A missing file is
// an empty store.
type Store struct {
	mu    sync.Mutex
	path  string
	cache map[domain.LockKey]domain.SeriesState
}

// NewStore creates a Store writing to DefaultPath until SetPath overrides it.
func NewStore() *Store {
	return &Store{path: DefaultPath}
}

// SetPath changes the state file path.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = filepath.Clean(path)
	s.cache = nil
}

// Load returns the stored series state keyed by lock key.
func (s *Store) Load() (map[domain.LockKey]domain.SeriesState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	out := make(map[domain.LockKey]domain.SeriesState, len(s.cache))
	for key, state := range s.cache {
		out[key] = state
	}
	return out, nil
}

// Save replaces the stored state for one lock key and rewrites the file.
func (s *Store) Save(key domain.LockKey, state domain.SeriesState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}
	s.cache[key] = state
	return s.saveLocked()
}

func (s *Store) loadLocked() error {
	if s.cache != nil {
		return nil
	}
	s.cache = make(map[domain.LockKey]domain.SeriesState)

	data, err := os.ReadFile(s.path) //nolint:gosec // path is cleaned and operator provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read history state file")
	}
	if len(data) == 0 {
		return nil
	}

	raw := make(map[string]domain.SeriesState)
	if err := json.Unmarshal(data, &raw); err != nil {
		return zerr.Wrap(err, "failed to unmarshal history state file")
	}
	for key, state := range raw {
		s.cache[domain.LockKey(key)] = state
	}
	return nil
}

func (s *Store) saveLocked() error {
	raw := make(map[string]domain.SeriesState, len(s.cache))
	for key, state := range s.cache {
		raw[key.String()] = state
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal history state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for history state file")
	}

	//nolint:gosec // path is cleaned and operator provided
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write history state file")
	}
	return nil
}
