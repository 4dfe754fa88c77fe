package session

import (
	"fmt"

	"github.com/kumarlokesh/detective-quest/internal/config"
)

// New creates the store selected by the session configuration
func New(cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(cfg.TTL), nil
	case config.BackendRedis:
		r := cfg.Redis
		return NewRedisStore(r.Addr(), r.DB, r.Password, cfg.TTL), nil
	case config.BackendMemcache:
		return NewMemcachedStore(cfg.Memcache.Servers, cfg.TTL), nil
	case config.BackendFile:
		return NewFileStore(cfg.File.Path, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Backend)
	}
}
