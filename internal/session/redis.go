package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hoisie/redis"

	"github.com/kumarlokesh/detective-quest/internal/game"
)

// RedisStore keeps sessions in redis as JSON values with an expiry
type RedisStore struct {
	backend *redis.Client
	expire  int64
}

// NewRedisStore creates a store on the given redis server
func NewRedisStore(addr string, db int, password string, ttl time.Duration) *RedisStore {
	rc := &redis.Client{Addr: addr, Db: db, Password: password}
	return &RedisStore{
		backend: rc,
		expire:  ttlSeconds(ttl),
	}
}

func (r *RedisStore) Put(ctx context.Context, snap game.Snapshot) error {
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
	if err := r.backend.Setex(key(snap.ID), r.expire, val); err != nil {
		return fmt.Errorf("failed to store session %s: %w", snap.ID, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (game.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return game.Snapshot{}, err
	}

	item, err := r.backend.Get(key(id))
	if err == nil && item != nil {
		return decode(item)
	}

	// the client reports any failed GET as a missing key, so ask again to
	// separate a miss from an unreachable server
	exists, xerr := r.backend.Exists(key(id))
	if xerr != nil {
		return game.Snapshot{}, fmt.Errorf("failed to load session %s: %w", id, xerr)
	}
	if !exists {
		return game.Snapshot{}, ErrSessionNotFound
	}
	return game.Snapshot{}, fmt.Errorf("failed to load session %s: %v", id, err)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.backend.Del(key(id))
	return err
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.backend.Exists(KeyPrefix + "ping"); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// ttlSeconds rounds a ttl up to whole seconds, the unit remote backends use
func ttlSeconds(ttl time.Duration) int64 {
	secs := int64(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}
