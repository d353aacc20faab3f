// Package badger provides a BadgerDB-backed driven.PropertyStore.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.PropertyStore = (*Store)(nil)

const propertyPrefix = "prop:"

// loggerAdapter routes badger's log output through the kbbot logger.
type loggerAdapter struct{}

var _ badger.Logger = loggerAdapter{}

func (loggerAdapter) Errorf(msg string, items ...any) {
	logger.Error("badger: "+msg, items...)
}

func (loggerAdapter) Warningf(msg string, items ...any) {
	logger.Warn("badger: "+msg, items...)
}

func (loggerAdapter) Infof(msg string, items ...any) {
	logger.Debug("badger: "+msg, items...)
}

func (loggerAdapter) Debugf(msg string, items ...any) {
	logger.Debug("badger: "+msg, items...)
}

// Store keeps properties in a BadgerDB database. Each write is a single
// transaction, so readers see either the old or the new value.
type Store struct {
	db   *badger.DB
	path string
}

// Open opens or creates a database under dataDir.
// If dataDir is empty, defaults to ~/.kbbot/data/badger.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kbbot", "data")
	}
	path := filepath.Join(dataDir, "badger")

	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return open(badger.DefaultOptions(path), path)
}

// OpenInMemory opens a database that lives only in memory.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), ":memory:")
}

func open(opts badger.Options, path string) (*Store, error) {
	opts.Logger = loggerAdapter{}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", path, err)
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
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(propertyKey(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("saving property %s: %w", key, err)
	}
	return nil
}

// GetProperty returns the value stored under key.
func (s *Store) GetProperty(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(propertyKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading property %s: %w", key, err)
	}
	return string(value), true, nil
}

// DeleteProperty removes key.
func (s *Store) DeleteProperty(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(propertyKey(key))
	})
	if err != nil {
		return fmt.Errorf("deleting property %s: %w", key, err)
	}
	return nil
}

func propertyKey(key string) []byte {
	return []byte(propertyPrefix + key)
}
