// Package config loads the repositories file and serves lookups from it.
package config

import (
	"os"
	"sync"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the repositories file read when no --config flag is given.
const DefaultPath = "repositories.yaml"

// RepositoryDTO is one entry of the repositories file.
type RepositoryDTO struct {
	Type        string `yaml:"type"`
	CloneURL    string `yaml:"clone_url"`
	KeepHistory *int   `yaml:"keep_history"`
}

// Store implements ports.RepoStore on top of a YAML repositories file. The
// file is read once, on first lookup, after the CLI has settled the path.
type Store struct {
	mu     sync.Mutex
	path   string
	loaded bool
	repos  map[string]domain.RepositoryConfig
}

// NewStore creates a Store reading from DefaultPath until SetPath overrides
// it.
func NewStore() *Store {
	return &Store{path: DefaultPath}
}

// SetPath changes the repositories file path and discards anything already
// loaded.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.loaded = false
	s.repos = nil
}

// Get returns the configuration for a repository and whether it is listed.
func (s *Store) Get(repository string) (domain.RepositoryConfig, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return domain.RepositoryConfig{}, false, err
	}
	config, ok := s.repos[repository]
	return config, ok, nil
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return zerr.Wrap(err, "failed to read repositories file")
	}

	var dtos map[string]RepositoryDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return zerr.Wrap(err, "failed to parse repositories file")
	}

	s.repos = make(map[string]domain.RepositoryConfig, len(dtos))
	for id, dto := range dtos {
		keep := domain.DefaultKeepHistory
		if dto.KeepHistory != nil {
			keep = *dto.KeepHistory
		}
		s.repos[id] = domain.RepositoryConfig{
			ID:          id,
			Type:        dto.Type,
			CloneURL:    dto.CloneURL,
			KeepHistory: keep,
		}
	}
	s.loaded = true
	return nil
}
