package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumarlokesh/detective-quest/internal/casefile"
	"github.com/kumarlokesh/detective-quest/internal/session"
)

func TestLockMap(t *testing.T) {
	m := newLockMap()

	t.Run("Entries are dropped on unlock", func(t *testing.T) {
		unlock := m.lock("a")
		assert.Equal(t, 1, m.len())
		unlock()
		assert.Equal(t, 0, m.len())
	})

	t.Run("Same id is serialised", func(t *testing.T) {
		unlock := m.lock("a")

		acquired := make(chan struct{})
		go func() {
			release := m.lock("a")
			close(acquired)
			release()
		}()

		select {
		case <-acquired:
			t.Fatal("second holder got the lock while it was held")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()
		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("second holder never got the lock")
		}

		require.Eventually(t, func() bool { return m.len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("Different ids do not block", func(t *testing.T) {
		unlockA := m.lock("a")
		unlockB := m.lock("b")
		assert.Equal(t, 2, m.len())
		unlockB()
		unlockA()
		assert.Equal(t, 0, m.len())
	})

	t.Run("Concurrent holders", func(t *testing.T) {
		var wg sync.WaitGroup
		counter := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := m.lock("shared")
				counter++
				unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, counter)
		assert.Equal(t, 0, m.len())
	})
}

func TestServer_UnknownSessionsLeaveNoLocks(t *testing.T) {
	c := casefile.Default()
	tree, table, err := c.Build()
	require.NoError(t, err)

	s := NewServer(":0", Case{Tree: tree, Table: table, Roster: c.Roster()}, session.NewMemoryStore(0), Options{}, zerolog.Nop())
	handler := s.Handler()

	for i := 0; i < 100; i++ {
		for _, path := range []string{"moves", "accusation"} {
			body := bytes.NewBufferString(`{"choice":"e","suspect":"Camareira"}`)
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/sessions/missing-%d/%s", i, path), body)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusNotFound, rec.Code)
		}

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/sessions/missing-%d", i), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, 0, s.locks.len())
}
