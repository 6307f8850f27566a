package handler

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/xi-dach/internal/game/room"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/server/session"
	"github.com/palemoky/xi-dach/internal/server/storage"
	"github.com/palemoky/xi-dach/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.MockServer) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	srv := testutil.NewMockServer()

	h := NewHandler(Deps{
		Server:         srv,
		RoomManager:    room.NewManager(store),
		SessionManager: session.NewManager(time.Minute),
		RedisStore:     store,
	})
	return h, srv
}

func mustMessage(t *testing.T, msgType protocol.MessageType, payload any) *protocol.Message {
	t.Helper()
	msg, err := protocol.NewMessage(msgType, payload)
	require.NoError(t, err)
	return msg
}

func errorCode(t *testing.T, msg *protocol.Message) int {
	t.Helper()
	require.NotNil(t, msg)
	require.Equal(t, protocol.MsgError, msg.Type)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return payload.Code
}

func TestHandle_Ping(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgPing, nil))

	require.Len(t, client.Messages, 1)
	assert.Equal(t, protocol.MsgPong, client.LastMessage().Type)
}

func TestHandle_UnknownType(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, &protocol.Message{Type: "no_such_thing"})

	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, client.LastMessage()))
}

func TestHandleCreateRoom(t *testing.T) {
	t.Parallel()

	h, srv := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	created := client.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, created, 1)
	payload, err := protocol.ParsePayload[protocol.RoomCreatedPayload](created[0])
	require.NoError(t, err)
	assert.NotEmpty(t, payload.RoomID)
	require.NotNil(t, payload.GameState)
	assert.Equal(t, "alice", payload.GameState.Dealer.Name)

	assert.Equal(t, "alice", client.Name)
	assert.Equal(t, payload.RoomID, client.RoomID)
	assert.Equal(t, 1, srv.RoomListBroadcasts)
}

func TestHandleCreateRoom_NameTaken(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	first := &testutil.SimpleClient{ID: "c1"}
	h.Handle(first, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	second := &testutil.SimpleClient{ID: "c2"}
	h.Handle(second, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	assert.Equal(t, protocol.ErrCodeNameTaken, errorCode(t, second.LastMessage()))
	assert.Empty(t, second.RoomID)
}

func TestHandleCreateRoom_InvalidPayload(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, client.LastMessage()))
}

func TestHandleJoinRoom(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))
	roomID := dealer.RoomID

	player := &testutil.SimpleClient{ID: "c2"}
	h.Handle(player, mustMessage(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: roomID, PlayerName: "bob"}))

	assert.Equal(t, roomID, player.RoomID)
	assert.Equal(t, "bob", player.Name)
	require.Len(t, player.MessagesOfType(protocol.MsgPlayerJoined), 1)
	require.Len(t, dealer.MessagesOfType(protocol.MsgPlayerJoined), 1)
}

func TestHandleJoinRoom_NotFound(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: "MISSING", PlayerName: "bob"}))

	assert.Equal(t, protocol.ErrCodeRoomNotFound, errorCode(t, client.LastMessage()))
}

func TestHandleLeaveRoom_Player(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	player := &testutil.SimpleClient{ID: "c2"}
	h.Handle(player, mustMessage(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: dealer.RoomID, PlayerName: "bob"}))

	h.Handle(player, mustMessage(t, protocol.MsgLeaveRoom, nil))

	assert.Empty(t, player.RoomID)
	assert.Empty(t, player.Name, "leaving releases the name")
	require.Len(t, dealer.MessagesOfType(protocol.MsgPlayerLeft), 1)

	// The name is free for someone else now
	other := &testutil.SimpleClient{ID: "c3"}
	h.Handle(other, mustMessage(t, protocol.MsgCheckName, protocol.CheckNamePayload{PlayerName: "bob"}))
	checked, err := protocol.ParsePayload[protocol.NameCheckedPayload](other.LastMessage())
	require.NoError(t, err)
	assert.True(t, checked.IsAvailable)
}

func TestHandleLeaveRoom_DealerClosesRoom(t *testing.T) {
	t.Parallel()

	h, srv := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))
	roomID := dealer.RoomID

	player := &testutil.SimpleClient{ID: "c2"}
	h.Handle(player, mustMessage(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: roomID, PlayerName: "bob"}))

	h.Handle(dealer, mustMessage(t, protocol.MsgLeaveRoom, nil))

	require.Len(t, player.MessagesOfType(protocol.MsgGameCancelled), 1)
	payload, err := protocol.ParsePayload[protocol.GameCancelledPayload](player.MessagesOfType(protocol.MsgGameCancelled)[0])
	require.NoError(t, err)
	assert.Equal(t, "Cái đã thoát", payload.Reason)

	// The closure is announced to the whole lobby
	require.NotEmpty(t, srv.Broadcasts)
	assert.Equal(t, protocol.MsgRoomClosed, srv.Broadcasts[len(srv.Broadcasts)-1].Type)
}

func TestHandleGetRooms(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	client := &testutil.SimpleClient{ID: "c2"}
	h.Handle(client, mustMessage(t, protocol.MsgGetRooms, nil))

	require.Equal(t, protocol.MsgRoomList, client.LastMessage().Type)
	payload, err := protocol.ParsePayload[protocol.RoomListPayload](client.LastMessage())
	require.NoError(t, err)
	require.Len(t, payload.Rooms, 1)
	assert.Equal(t, "alice", payload.Rooms[0].Dealer)
}

func TestHandleGetRooms_Throttled(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgGetRooms, nil))
	h.Handle(client, mustMessage(t, protocol.MsgGetRooms, nil))

	// The burst collapses to a single reply per connection
	assert.Len(t, client.MessagesOfType(protocol.MsgRoomList), 1)

	// A different connection is unaffected
	other := &testutil.SimpleClient{ID: "c2"}
	h.Handle(other, mustMessage(t, protocol.MsgGetRooms, nil))
	assert.Len(t, other.MessagesOfType(protocol.MsgRoomList), 1)
}

func TestHandleCheckName_Taken(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	client := &testutil.SimpleClient{ID: "c2"}
	h.Handle(client, mustMessage(t, protocol.MsgCheckName, protocol.CheckNamePayload{PlayerName: "alice"}))

	payload, err := protocol.ParsePayload[protocol.NameCheckedPayload](client.LastMessage())
	require.NoError(t, err)
	assert.False(t, payload.IsAvailable)

	// The holder asking about their own name gets a yes
	h.Handle(dealer, mustMessage(t, protocol.MsgCheckName, protocol.CheckNamePayload{PlayerName: "alice"}))
	payload, err = protocol.ParsePayload[protocol.NameCheckedPayload](dealer.LastMessage())
	require.NoError(t, err)
	assert.True(t, payload.IsAvailable)
}

func TestHandleReconnect(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))
	roomID := dealer.RoomID

	// Same identity comes back on a fresh connection
	fresh := &testutil.SimpleClient{ID: "c2"}
	h.Handle(fresh, mustMessage(t, protocol.MsgReconnect, protocol.ReconnectPayload{PlayerName: "alice"}))

	reconnected := fresh.MessagesOfType(protocol.MsgReconnected)
	require.Len(t, reconnected, 1)
	payload, err := protocol.ParsePayload[protocol.ReconnectedPayload](reconnected[0])
	require.NoError(t, err)
	assert.Equal(t, roomID, payload.RoomID)
	require.NotNil(t, payload.GameState)
	assert.Equal(t, "alice", payload.GameState.Dealer.Name)
	assert.Equal(t, roomID, fresh.RoomID)
}

func TestHandleReconnect_NoSession(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgReconnect, protocol.ReconnectPayload{PlayerName: "ghost"}))

	assert.Equal(t, protocol.ErrCodeUnknown, errorCode(t, client.LastMessage()))
}

func TestHandleGameFlow(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	dealer := &testutil.SimpleClient{ID: "c1"}
	h.Handle(dealer, mustMessage(t, protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: "alice"}))

	player := &testutil.SimpleClient{ID: "c2"}
	h.Handle(player, mustMessage(t, protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: dealer.RoomID, PlayerName: "bob"}))

	// Only the dealer may deal
	h.Handle(player, mustMessage(t, protocol.MsgStartGame, nil))
	assert.Equal(t, protocol.ErrCodeNotDealer, errorCode(t, player.LastMessage()))

	h.Handle(dealer, mustMessage(t, protocol.MsgStartGame, nil))
	require.Len(t, dealer.MessagesOfType(protocol.MsgGameStarted), 1)
	require.Len(t, player.MessagesOfType(protocol.MsgGameStarted), 1)

	// Dealer acting before the players is always out of turn
	h.Handle(dealer, mustMessage(t, protocol.MsgDrawCard, nil))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, errorCode(t, dealer.LastMessage()))

	// Restart is only for finished rounds
	h.Handle(player, mustMessage(t, protocol.MsgRestartGame, nil))
	assert.Equal(t, protocol.ErrCodeNotDealer, errorCode(t, player.LastMessage()))
}

func TestHandleCompareHands_InvalidPayload(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	client := &testutil.SimpleClient{ID: "c1"}

	h.Handle(client, mustMessage(t, protocol.MsgCompareHands, protocol.CompareHandsPayload{}))

	assert.Equal(t, protocol.ErrCodeInvalidMsg, errorCode(t, client.LastMessage()))
}
