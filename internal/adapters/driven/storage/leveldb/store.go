// Package leveldb provides a LevelDB-backed driven.PropertyStore.
package leveldb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PropertyStore = (*Store)(nil)

const propertyPrefix = "prop:"

// Store keeps properties in a LevelDB database. Writes are synced to disk
// before SetProperty returns.
type Store struct {
	db   *leveldb.DB
	path string
}

// New opens or creates a database under dataDir.
// If dataDir is empty, defaults to ~/.kbbot/data/leveldb.
func New(dataDir string) (*Store, error) {
	const op = "storage.leveldb.New"

	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		dataDir = filepath.Join(home, ".kbbot", "data")
	}
	path := filepath.Join(dataDir, "leveldb")

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database directory.
func (s *Store) Path() string {
	return s.path
}

// SetProperty stores value under key.
func (s *Store) SetProperty(_ context.Context, key, value string) error {
	const op = "storage.leveldb.SetProperty"

	if err := s.db.Put(propertyKey(key), []byte(value), &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProperty returns the value stored under key.
func (s *Store) GetProperty(_ context.Context, key string) (string, bool, error) {
	const op = "storage.leveldb.GetProperty"

	data, err := s.db.Get(propertyKey(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return string(data), true, nil
}

// DeleteProperty removes key.
func (s *Store) DeleteProperty(_ context.Context, key string) error {
	const op = "storage.leveldb.DeleteProperty"

	if err := s.db.Delete(propertyKey(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func propertyKey(key string) []byte {
	return []byte(propertyPrefix + key)
}
