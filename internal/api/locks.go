package api

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// lockMap hands out one mutex per session id. An entry lives only while a
// request holds or waits for it.
type lockMap struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newLockMap() *lockMap {
	return &lockMap{locks: make(map[string]*sessionLock)}
}

// lock blocks until the session is free and returns the matching unlock
func (m *lockMap) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// len returns the number of sessions currently locked or waited on
func (m *lockMap) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
