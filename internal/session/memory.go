package session

import (
	"context"
	"sync"
	"time"

	"github.com/kumarlokesh/detective-quest/internal/game"
)

type memoryEntry struct {
	snap   game.Snapshot
	expire time.Time
}

// memoryStore is an in-memory implementation of the Store interface
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory store. Sessions expire ttl after
// their last Put; a zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Put(ctx context.Context, snap game.Snapshot) error {
	if snap.ID == "" {
		return ErrEmptyID
	}

	e := memoryEntry{snap: copySnapshot(snap)}
	if s.ttl > 0 {
		e.expire = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[snap.ID] = e
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (game.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return game.Snapshot{}, ErrSessionNotFound
	}

	if s.expired(e) {
		// a Put may have refreshed the entry since the read lock was dropped
		s.mu.Lock()
		e, ok = s.entries[id]
		if ok && s.expired(e) {
			delete(s.entries, id)
			ok = false
		}
		s.mu.Unlock()
		if !ok {
			return game.Snapshot{}, ErrSessionNotFound
		}
	}

	return copySnapshot(e.snap), nil
}

func (s *memoryStore) expired(e memoryEntry) bool {
	return !e.expire.IsZero() && e.expire.Before(s.now())
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copySnapshot(snap game.Snapshot) game.Snapshot {
	out := snap
	if snap.Clues != nil {
		out.Clues = make([]string, len(snap.Clues))
		copy(out.Clues, snap.Clues)
	}
	if snap.Verdict != nil {
		v := *snap.Verdict
		out.Verdict = &v
	}
	return out
}
