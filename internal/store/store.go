// Package store implements the durable document store. Each collection
// is one JSON document under a namespaced key in a single BoltDB
// bucket; writes are committed before Set returns.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketCollections = []byte("collections")

// Collection keys. The devwatch_ prefix keeps the keys from colliding
// with unrelated data should the database file ever be shared.
const (
	KeyUsers            = "devwatch_users"
	KeyDevices          = "devwatch_devices"
	KeyActivities       = "devwatch_activities"
	KeyRepositories     = "devwatch_repositories"
	KeyAlerts           = "devwatch_alerts"
	KeySecuritySettings = "devwatch_security_settings"
	KeyDashboard        = "devwatch_dashboard"
	KeyInitialized      = "devwatch_initialized"
)

// CollectionKeys lists every key the store owns, the initialized flag
// included.
var CollectionKeys = []string{
	KeyUsers,
	KeyDevices,
	KeyActivities,
	KeyRepositories,
	KeyAlerts,
	KeySecuritySettings,
	KeyDashboard,
	KeyInitialized,
}

// Store is a BoltDB-backed document store.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Get unmarshals the document stored under key into v. It returns false
// when the key is absent. A stored value that fails to parse is treated
// as absent rather than an error, so callers fall back to their default
// dataset instead of crashing on corrupt data.
func (s *Store) Get(key string, v any) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketCollections).Get([]byte(key)); raw != nil {
			data = append([]byte{}, raw...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("corrupt document, falling back to defaults", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Set marshals v and durably stores it under key.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCollections).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Deleting an absent key
// is a no-op.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCollections).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying bolt.DB instance.
func (s *Store) DB() *bolt.DB {
	return s.db
}
