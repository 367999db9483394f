package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Namespaces used by the application
const (
	NamespaceCache = "cache"
	NamespacePrefs = "prefs"
)

const dbFileName = "noor.db"

// DB owns a BoltDB file (or nothing, in memory-only mode) and hands out
// one BoltStore per namespace.
type DB struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access).
	// Keys are "{namespace}:{key}".
	cache map[string][]byte
}

// Open opens (or creates) the database under dir. An empty dir selects
// memory-only mode with no persistence.
func Open(dir string) (*DB, error) {
	if dir == "" {
		return &DB{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{NamespaceCache, NamespacePrefs} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db, cache: make(map[string][]byte)}, nil
}

// Path returns the database file path, or "" in memory-only mode
func (d *DB) Path() string {
	if d.db == nil {
		return ""
	}
	return d.db.Path()
}

// Close closes the underlying BoltDB file
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Namespace returns a store scoped to one bucket
func (d *DB) Namespace(name string) *BoltStore {
	return &BoltStore{parent: d, bucket: []byte(name)}
}

// BoltStore implements domain.KVStore for a single bucket.
// Closing a BoltStore is a no-op; the owning DB is closed by its creator.
type BoltStore struct {
	parent *DB
	bucket []byte
}

func (s *BoltStore) memKey(key string) string {
	return string(s.bucket) + ":" + key
}

// Get returns a copy of the stored value
func (s *BoltStore) Get(key string) ([]byte, bool, error) {
	d := s.parent
	cacheKey := s.memKey(key)

	// Check memory cache first
	d.mu.RLock()
	if data, ok := d.cache[cacheKey]; ok {
		d.mu.RUnlock()
		return cloneBytes(data), true, nil
	}
	d.mu.RUnlock()

	if d.db == nil {
		return nil, false, nil
	}

	// Read from BoltDB
	var data []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = cloneBytes(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("bolt read %s: %w", key, err)
	}

	if data == nil {
		return nil, false, nil
	}

	// Promote to memory cache
	d.mu.Lock()
	d.cache[cacheKey] = data
	d.mu.Unlock()

	return cloneBytes(data), true, nil
}

// Set overwrites key. The memory cache is only updated once the disk write
// succeeded, so a failed write never shadows the persisted value.
func (s *BoltStore) Set(key string, value []byte) error {
	d := s.parent
	data := cloneBytes(value)

	if d.db != nil {
		err := d.db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists(s.bucket)
			if err != nil {
				return err
			}
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("bolt write %s: %w", key, err)
		}
	}

	d.mu.Lock()
	d.cache[s.memKey(key)] = data
	d.mu.Unlock()
	return nil
}

// Remove deletes key from memory and disk
func (s *BoltStore) Remove(key string) error {
	d := s.parent

	d.mu.Lock()
	delete(d.cache, s.memKey(key))
	d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	return d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists keys with prefix, sorted
func (s *BoltStore) Keys(prefix string) ([]string, error) {
	d := s.parent

	if d.db == nil {
		memPrefix := s.memKey(prefix)
		var keys []string
		d.mu.RLock()
		for k := range d.cache {
			if strings.HasPrefix(k, memPrefix) {
				keys = append(keys, strings.TrimPrefix(k, string(s.bucket)+":"))
			}
		}
		d.mu.RUnlock()
		sort.Strings(keys)
		return keys, nil
	}

	var keys []string
	err := d.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

// Close is a no-op; close the owning DB instead
func (s *BoltStore) Close() error {
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
