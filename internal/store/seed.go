package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/devwatch/devwatch/internal/model"
)

// Seed writes the default collections on first run. It checks the
// initialized flag and, when absent, writes all six collections, the
// default dashboard and the flag in a single transaction. Once the flag
// is set Seed never writes again, so user edits survive restarts.
func (s *Store) Seed(now time.Time) (bool, error) {
	seeded := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		if b.Get([]byte(KeyInitialized)) != nil {
			return nil
		}

		docs := map[string]any{
			KeyUsers:            model.DefaultUsers(now),
			KeyDevices:          model.DefaultDevices(now),
			KeyActivities:       model.DefaultActivities(now),
			KeyRepositories:     model.DefaultRepositories(now),
			KeyAlerts:           model.DefaultAlerts(now),
			KeySecuritySettings: model.DefaultSecuritySettings(),
			KeyDashboard:        model.DefaultDashboard(now),
		}
		for key, doc := range docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", key, err)
			}
			if err := b.Put([]byte(key), data); err != nil {
				return fmt.Errorf("failed to seed %s: %w", key, err)
			}
		}
		if err := b.Put([]byte(KeyInitialized), []byte("true")); err != nil {
			return fmt.Errorf("failed to set initialized flag: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.logger.Info("seeded default collections")
	}
	return seeded, nil
}

// Reset deletes every collection and the initialized flag, then
// re-seeds, returning the store to its first-run state.
func (s *Store) Reset(now time.Time) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		for _, key := range CollectionKeys {
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := s.Seed(now); err != nil {
		return fmt.Errorf("failed to re-seed: %w", err)
	}
	return nil
}
