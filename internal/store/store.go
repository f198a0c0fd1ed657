// Package store persists Curio's domain entities in a Badger key-value
// database. Values are JSON blobs; secondary indexes are plain keys
// whose value is the entity ID.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/curioapp/curio-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Users      *Entity[domain.User]
	Categories *Entity[domain.Category]
	Items      *Entity[domain.Item]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initUsers()
	store.initCategories()
	store.initItems()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Ping verifies the database is accessible with a no-op read transaction.
func (s *Store) Ping() error {
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// normalizeEmail lowercases and trims an email for index lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// initUsers initializes the Users entity on the store.
// Uses case-insensitive email indexing via normalizeEmail transformation.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		)
}

// initCategories initializes the Categories entity on the store.
// The user index is non-unique: the key embeds the category ID so one
// user can own many categories.
func (s *Store) initCategories() {
	s.Categories = NewEntity[domain.Category](s, "category:").
		WithMultiIndex("user", func(c *domain.Category) []string {
			return []string{c.UserID + ":" + c.ID}
		})
}

// initItems initializes the Items entity on the store.
// Indexed by owning user and by category for listing and cascade delete.
func (s *Store) initItems() {
	s.Items = NewEntity[domain.Item](s, "item:").
		WithMultiIndex("user", func(i *domain.Item) []string {
			return []string{i.UserID + ":" + i.ID}
		}).
		WithMultiIndex("category", func(i *domain.Item) []string {
			return []string{i.CategoryID + ":" + i.ID}
		})
}
