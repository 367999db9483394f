package store

import (
	"context"
	"fmt"

	"github.com/mmcdole/noor/internal/domain"
)

// Backend kinds accepted in configuration
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	Dir     string // bolt only
	Redis   RedisConfig
}

// Backend bundles the cache and preference namespaces of one storage backend
type Backend struct {
	Cache    domain.KVStore
	Prefs    domain.KVStore
	Location string // human readable description for diagnostics

	close func() error
}

// OpenBackend opens the configured backend
func OpenBackend(ctx context.Context, opts Options) (*Backend, error) {
	switch opts.Backend {
	case "", BackendBolt, BackendMemory:
		dir := opts.Dir
		if opts.Backend == BackendMemory {
			dir = ""
		}
		db, err := Open(dir)
		if err != nil {
			return nil, err
		}
		location := db.Path()
		if location == "" {
			location = "memory"
		}
		return &Backend{
			Cache:    db.Namespace(NamespaceCache),
			Prefs:    db.Namespace(NamespacePrefs),
			Location: location,
			close:    db.Close,
		}, nil

	case BackendRedis:
		client, err := NewRedisClient(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Cache:    NewRedisStore(client, NamespaceCache),
			Prefs:    NewRedisStore(client, NamespacePrefs),
			Location: "redis://" + opts.Redis.Addr,
			close:    client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}

// Close releases the underlying database or connection
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}
