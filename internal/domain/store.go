package domain

import "time"

// KVStore is persistent key-value storage for one namespace ("cache", "prefs").
// Values are opaque bytes; callers own serialization.
type KVStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set overwrites the value at key
	Set(key string, value []byte) error

	// Remove deletes key; removing an absent key is not an error
	Remove(key string) error

	// Keys lists keys with the given prefix ("" lists everything)
	Keys(prefix string) ([]string, error)

	Close() error
}

// Clock returns the current wall-clock time. Injected so tests can advance time.
type Clock func() time.Time
