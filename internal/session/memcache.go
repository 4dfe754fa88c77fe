package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/kumarlokesh/detective-quest/internal/game"
)

// MemcachedStore keeps sessions in memcached as JSON values
type MemcachedStore struct {
	backend *memcache.Client
	expire  int32
}

// NewMemcachedStore creates a store over the given memcached servers
func NewMemcachedStore(servers []string, ttl time.Duration) *MemcachedStore {
	return &MemcachedStore{
		backend: memcache.New(servers...),
		expire:  int32(ttlSeconds(ttl)),
	}
}

func (m *MemcachedStore) Put(ctx context.Context, snap game.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		return ErrEmptyID
	}

	val, err := encode(snap)
	if err != nil {
		return err
	}
	item := &memcache.Item{Key: key(snap.ID), Value: val, Expiration: m.expire}
	if err := m.backend.Set(item); err != nil {
		return fmt.Errorf("failed to store session %s: %w", snap.ID, err)
	}
	return nil
}

func (m *MemcachedStore) Get(ctx context.Context, id string) (game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return game.Snapshot{}, err
	}

	item, err := m.backend.Get(key(id))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return game.Snapshot{}, ErrSessionNotFound
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return decode(item.Value)
}

func (m *MemcachedStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := m.backend.Delete(key(id))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (m *MemcachedStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.backend.Ping(); err != nil {
		return fmt.Errorf("memcached unreachable: %w", err)
	}
	return nil
}
