package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)
	s := m.Create("alice", "ROOM01", "client-1")
	require.NotNil(t, s)
	assert.True(t, s.IsOnline)

	got := m.Get("alice")
	require.NotNil(t, got)
	assert.Equal(t, "ROOM01", got.RoomID)
	assert.Equal(t, "client-1", got.ClientID)
	assert.Equal(t, "ROOM01", m.RoomID("alice"))

	assert.Nil(t, m.Get("bob"))
	assert.Empty(t, m.RoomID("bob"))
}

func TestManager_NameAvailability(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)
	m.Create("alice", "ROOM01", "client-1")

	assert.True(t, m.IsNameActive("alice"))
	assert.False(t, m.IsNameAvailable("alice", ""))
	assert.False(t, m.IsNameAvailable("alice", "bob"))
	// Asking about your own name is always fine
	assert.True(t, m.IsNameAvailable("alice", "alice"))
	assert.True(t, m.IsNameAvailable("carol", ""))
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)
	m.Create("alice", "ROOM01", "client-1")
	m.Delete("alice")

	assert.False(t, m.IsNameActive("alice"))
	assert.Nil(t, m.Get("alice"))

	// Deleting a missing session is a no-op
	m.Delete("alice")
}

func TestManager_SetOffline_ExpiresAfterGrace(t *testing.T) {
	t.Parallel()

	m := NewManager(20 * time.Millisecond)
	m.Create("alice", "ROOM01", "client-1")

	var mu sync.Mutex
	var expiredRoom string
	done := make(chan struct{})

	ok := m.SetOffline("alice", "client-1", func(roomID string) {
		mu.Lock()
		expiredRoom = roomID
		mu.Unlock()
		close(done)
	})
	require.True(t, ok)
	assert.False(t, m.IsOnline("alice"))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("grace timer never fired")
	}

	mu.Lock()
	assert.Equal(t, "ROOM01", expiredRoom)
	mu.Unlock()
	assert.Nil(t, m.Get("alice"), "expired session is removed")
}

func TestManager_Reattach_CancelsExpiry(t *testing.T) {
	t.Parallel()

	m := NewManager(30 * time.Millisecond)
	m.Create("alice", "ROOM01", "client-1")

	expired := make(chan struct{}, 1)
	require.True(t, m.SetOffline("alice", "client-1", func(string) {
		expired <- struct{}{}
	}))

	// Reconnect with a fresh connection before the grace runs out
	s := m.Reattach("alice", "client-2")
	require.NotNil(t, s)
	assert.Equal(t, "client-2", s.ClientID)
	assert.True(t, m.IsOnline("alice"))

	select {
	case <-expired:
		t.Fatal("expiry fired after reattach")
	case <-time.After(100 * time.Millisecond):
	}
	assert.NotNil(t, m.Get("alice"))
}

func TestManager_SetOffline_StaleClientIgnored(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)
	m.Create("alice", "ROOM01", "client-1")
	m.Reattach("alice", "client-2")

	// The old connection's disconnect must not touch the new session
	ok := m.SetOffline("alice", "client-1", nil)
	assert.False(t, ok)
	assert.True(t, m.IsOnline("alice"))
}

func TestManager_Reattach_UnknownPlayer(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Minute)
	assert.Nil(t, m.Reattach("ghost", "client-1"))
}
