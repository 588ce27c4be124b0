// Package suggestcache persists advisor suggestions in a local BoltDB file
// so repeat requests for the same task fields skip the model call. It is a
// read-through cache: entries are only ever written after a successful
// suggestion and expired entries are purged, never replayed.
package suggestcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tasktango/backend/domain"
)

// Entry is one cached suggestion.
type Entry struct {
	Priority domain.Priority `json:"priority"`
	StoredAt time.Time       `json:"stored_at"`
}

// Store wraps BoltDB for suggestion lookups.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte("suggestions")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: bucket,
	}, nil
}

// Get returns the cached priority for the key, if any.
func (s *Store) Get(key string) (Entry, bool, error) {
	if s == nil || s.db == nil {
		return Entry{}, false, bolt.ErrDatabaseNotOpen
	}

	var entry Entry
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get(hashKey(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil // corrupt entry behaves like a miss
		}
		found = true
		return nil
	})
	return entry, found, err
}

// Put stores a suggestion under the key.
func (s *Store) Put(key string, priority domain.Priority) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}

	payload, err := json.Marshal(Entry{
		Priority: priority,
		StoredAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(hashKey(key), payload)
	})
}

// Cleanup removes entries stored before the cutoff and reports how many
// were dropped.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}

	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil || entry.StoredAt.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Size returns the number of cached suggestions.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func hashKey(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return []byte(hex.EncodeToString(sum[:]))
}
