package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	roomData := &RoomData{
		ID:          "ROOM01",
		Dealer:      "alice",
		State:       "playing",
		PlayerNames: []string{"bob", "carol"},
		PlayerCount: 3,
		CreatedAt:   time.Now().Unix(),
	}

	// Save
	err := store.SaveRoom(ctx, roomData)
	assert.NoError(t, err)

	// Load
	loaded, err := store.LoadRoom(ctx, roomData.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, roomData.ID, loaded.ID)
	assert.Equal(t, roomData.Dealer, loaded.Dealer)
	assert.Equal(t, roomData.State, loaded.State)
	assert.Equal(t, roomData.PlayerNames, loaded.PlayerNames)

	// Saved rooms show up in the index
	ids, err := store.GetAllRoomIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, roomData.ID)

	// Delete
	err = store.DeleteRoom(ctx, roomData.ID)
	assert.NoError(t, err)

	loaded, err = store.LoadRoom(ctx, roomData.ID)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	ids, err = store.GetAllRoomIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, roomData.ID)
}

func TestRedisStore_LoadRoom_NotFound(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	loaded, err := store.LoadRoom(context.Background(), "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveRoom_Nil(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.SaveRoom(context.Background(), nil))
}

func TestRedisStore_SaveLoadDeleteSession(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	session := &SessionData{
		PlayerName: "alice",
		RoomID:     "ROOM01",
		ClientID:   "client-1",
		IsOnline:   true,
	}

	err := store.SaveSession(ctx, session)
	assert.NoError(t, err)

	loaded, err := store.LoadSession(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.PlayerName, loaded.PlayerName)
	assert.Equal(t, session.RoomID, loaded.RoomID)
	assert.Equal(t, session.ClientID, loaded.ClientID)
	assert.True(t, loaded.IsOnline)

	err = store.DeleteSession(ctx, "alice")
	assert.NoError(t, err)

	loaded, err = store.LoadSession(ctx, "alice")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_RoomExpiration(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	err := store.SaveRoom(ctx, &RoomData{ID: "ROOM01", Dealer: "alice"})
	require.NoError(t, err)

	// Snapshots carry a TTL so stale rooms fall out on their own
	mr.FastForward(3 * time.Hour)

	loaded, err := store.LoadRoom(ctx, "ROOM01")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
