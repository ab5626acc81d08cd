package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Entry is one key-value record in the database
type Entry struct {
	Key       string `boltholdKey:"Key"`
	Value     []byte
	UpdatedAt time.Time
}

// Database wraps the bolthold store and implements KeyValueStore
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Get retrieves the raw value stored under key
func (db *Database) Get(key string) ([]byte, error) {
	var entry Entry
	err := db.store.Get(key, &entry)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set creates or replaces the value stored under key
func (db *Database) Set(key string, value []byte) error {
	entry := &Entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := db.store.Upsert(key, entry); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Remove deletes key; removing an absent key is not an error
func (db *Database) Remove(key string) error {
	err := db.store.Delete(key, &Entry{})
	if err != nil && !errors.Is(err, bolthold.ErrNotFound) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key, ordered by key
func (db *Database) Keys() ([]string, error) {
	var entries []Entry
	if err := db.store.Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys, nil
}
