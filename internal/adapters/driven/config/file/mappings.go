package file

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
)

// Ensure MappingStore implements the interface.
var _ driven.MappingStore = (*MappingStore)(nil)

//go:embed defaults/mappings.toml
var defaultMappings []byte

type mappingFile struct {
	Mapping []domain.QueryMapping `toml:"mapping"`
}

// MappingStore reads the query expansion table from a user-editable TOML
// file, falling back to the embedded default table.
//
// The file is created from the default on first Load, not in the
// constructor.
type MappingStore struct {
	mu       sync.RWMutex
	filePath string
	cached   domain.QueryMappings
	loaded   bool
	initOnce sync.Once
	initErr  error
}

// NewMappingStore creates a mapping store.
// If configDir is empty, defaults to ~/.kbbot/mappings.toml.
func NewMappingStore(configDir string) (*MappingStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = dir
	}

	return &MappingStore{filePath: filepath.Join(configDir, "mappings.toml")}, nil
}

// Load returns the mapping table. Results are cached until Reload.
func (s *MappingStore) Load(_ context.Context) (domain.QueryMappings, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return ParseMappings(defaultMappings)
	}

	s.mu.RLock()
	if s.loaded {
		m := s.cached
		s.mu.RUnlock()
		return m, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return ParseMappings(defaultMappings)
	}

	mappings, err := ParseMappings(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.filePath, err)
	}

	s.mu.Lock()
	s.cached = mappings
	s.loaded = true
	s.mu.Unlock()

	return mappings, nil
}

// Reload clears the cache, forcing a fresh read on the next Load.
func (s *MappingStore) Reload() {
	s.mu.Lock()
	s.cached = nil
	s.loaded = false
	s.mu.Unlock()
}

// Path returns the mapping file path.
func (s *MappingStore) Path() string {
	return s.filePath
}

// initialise writes the default table if no file exists yet.
func (s *MappingStore) initialise() {
	if _, err := os.Stat(s.filePath); err == nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}
	if err := os.WriteFile(s.filePath, defaultMappings, 0600); err != nil {
		s.initErr = fmt.Errorf("create default mappings: %w", err)
	}
}

// ParseMappings decodes a TOML mapping table.
func ParseMappings(data []byte) (domain.QueryMappings, error) {
	var f mappingFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mappings: %w", err)
	}

	for i, m := range f.Mapping {
		if m.Phrase == "" {
			return nil, fmt.Errorf("%w: mapping %d has no phrase", domain.ErrInvalidInput, i+1)
		}
	}

	return domain.QueryMappings(f.Mapping), nil
}
