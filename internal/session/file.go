package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/journal"
)

type fileEntry struct {
	snap  game.Snapshot
	stamp time.Time
}

// FileStore keeps sessions in memory and journals every change to disk so
// they survive a restart.
type FileStore struct {
	mu      sync.RWMutex
	journal *journal.Journal
	entries map[string]fileEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewFileStore opens the journal at path and replays it. Expired and
// deleted sessions are dropped and the journal is compacted to the live set.
func NewFileStore(path string, ttl time.Duration) (*FileStore, error) {
	j, err := journal.Open(path, true)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		journal: j,
		entries: make(map[string]fileEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	if err := s.load(); err != nil {
		j.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	err := s.journal.Replay(func(r *journal.Record) error {
		id := string(r.Key)
		switch r.Type {
		case journal.RecordTypePut:
			snap, err := decode(r.Value)
			if err != nil {
				return fmt.Errorf("session %s: %w", id, err)
			}
			s.entries[id] = fileEntry{snap: snap, stamp: time.Unix(0, r.Stamp)}
		case journal.RecordTypeDelete:
			delete(s.entries, id)
		default:
			return fmt.Errorf("unexpected %s record for session %s", r.Type, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replay session journal: %w", err)
	}

	live := make([]*journal.Record, 0, len(s.entries))
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			continue
		}
		data, err := encode(e.snap)
		if err != nil {
			return err
		}
		live = append(live, &journal.Record{
			Header: journal.Header{Stamp: e.stamp.UnixNano(), Type: journal.RecordTypePut},
			Key:    []byte(id),
			Value:  data,
		})
	}
	return s.journal.Rewrite(live)
}

func (s *FileStore) expired(e fileEntry) bool {
	return s.ttl > 0 && e.stamp.Add(s.ttl).Before(s.now())
}

func (s *FileStore) Put(ctx context.Context, snap game.Snapshot) error {
	if snap.ID == "" {
		return ErrEmptyID
	}
	data, err := encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.journal.Append(journal.RecordTypePut, []byte(snap.ID), data); err != nil {
		return err
	}
	s.entries[snap.ID] = fileEntry{snap: copySnapshot(snap), stamp: s.now()}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (game.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return game.Snapshot{}, ErrSessionNotFound
	}
	return copySnapshot(e.snap), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return nil
	}
	if _, err := s.journal.Append(journal.RecordTypeDelete, []byte(id), nil); err != nil {
		return err
	}
	delete(s.entries, id)
	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close closes the underlying journal
func (s *FileStore) Close() error {
	return s.journal.Close()
}
