// Package cache provides a local image byte cache backed by a BoltDB
// file. Preload and thumbnail fetches fill it so that navigating to a
// neighboring photo does not wait on the network.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFileName = "fynebox_cache.db"
	// ImageBucket maps resource locations to raw image bytes.
	ImageBucket = "Images"
)

// Store is the image cache.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the cache database. An empty dir selects the
// user cache directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			dir = "."
		} else {
			dir = filepath.Join(cacheDir, "fynebox")
		}
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache database %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(ImageBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", ImageBucket, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put stores image bytes under a resource key.
func (s *Store) Put(key string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(ImageBucket)).Put([]byte(key), data)
	})
}

// Get returns the cached bytes for a key, if present.
func (s *Store) Get(key string) ([]byte, bool) {
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(ImageBucket)).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, data != nil
}

// Has reports whether a key is cached without copying its bytes.
func (s *Store) Has(key string) bool {
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket([]byte(ImageBucket)).Get([]byte(key)) != nil
		return nil
	})
	return found
}

// Len returns the number of cached images.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(ImageBucket)).Stats().KeyN
		return nil
	})
	return n, err
}
