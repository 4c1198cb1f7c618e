package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neon-snake/internal/config"
)

var (
	ErrMiss = errors.New("cache miss")
)

// Cache stores rendered page bodies by key
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}

// New opens the backend named in cfg.
// The "none" backend returns a nil Cache, which callers treat as disabled.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case config.CacheNone, "":
		return nil, nil
	case config.CacheMemory:
		m, err := NewMemory()
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.CacheRedis:
		r, err := NewRedis(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
