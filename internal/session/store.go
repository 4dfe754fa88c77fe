package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kumarlokesh/detective-quest/internal/game"
)

// Store defines the interface for session persistence
type Store interface {
	Put(ctx context.Context, snap game.Snapshot) error
	Get(ctx context.Context, id string) (game.Snapshot, error)
	Delete(ctx context.Context, id string) error

	// Health check
	Ping(ctx context.Context) error
}

// Common errors
var (
	ErrSessionNotFound = &Error{"session not found"}
	ErrEmptyID         = &Error{"session id is empty"}
)

// Error represents a session store error
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

// SerializerError wraps encoding failures of a remote backend
type SerializerError struct {
	err error
}

func (e SerializerError) Error() string {
	return fmt.Sprintf("serializer error: %v", e.err)
}

func (e SerializerError) Unwrap() error {
	return e.err
}

// KeyPrefix namespaces session keys in shared backends
const KeyPrefix = "detective:session:"

func key(id string) string {
	return KeyPrefix + id
}

func encode(snap game.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, SerializerError{err}
	}
	return data, nil
}

func decode(data []byte) (game.Snapshot, error) {
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return game.Snapshot{}, SerializerError{err}
	}
	return snap, nil
}
