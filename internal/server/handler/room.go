package handler

import (
	"time"

	"github.com/palemoky/xi-dach/internal/apperrors"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// get_rooms 单连接查询间隔，防刷，全局房间列表广播另有节流
const getRoomsInterval = time.Second

// handleCreateRoom 创建房间，建房者为庄家
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil || payload.PlayerName == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 名字冲突在进任何房间之前拦下
	if !h.sessionManager.IsNameAvailable(payload.PlayerName, client.GetName()) {
		sendError(client, apperrors.ErrNameTaken)
		return
	}

	// 已在房间中则先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	r, err := h.roomManager.CreateRoom(client, payload.PlayerName)
	if err != nil {
		sendError(client, err)
		return
	}

	sess := h.sessionManager.Create(payload.PlayerName, r.ID, client.GetID())
	h.mirrorSession(sess)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomID:    r.ID,
		GameState: h.roomManager.SnapshotFor(r.ID, payload.PlayerName),
	}))

	h.server.BroadcastRoomList()
}

// handleJoinRoom 加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || payload.PlayerName == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if !h.sessionManager.IsNameAvailable(payload.PlayerName, client.GetName()) {
		sendError(client, apperrors.ErrNameTaken)
		return
	}

	// 已在房间中则先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	r, err := h.roomManager.JoinRoom(client, payload.RoomID, payload.PlayerName)
	if err != nil {
		sendError(client, err)
		return
	}

	sess := h.sessionManager.Create(payload.PlayerName, r.ID, client.GetID())
	h.mirrorSession(sess)

	h.server.BroadcastRoomList()
}

// handleLeaveRoom 主动离开房间。庄家离场则整桌作废
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	name := client.GetName()
	roomID := client.GetRoom()
	if name == "" || roomID == "" {
		return
	}

	closed := h.roomManager.RemoveMember(roomID, name, "Cái đã thoát")
	if closed {
		h.server.Broadcast(protocol.MustNewMessage(protocol.MsgRoomClosed, protocol.RoomClosedPayload{
			RoomID: roomID,
		}))
	}

	h.sessionManager.Delete(name)
	h.dropSessionMirror(name)
	client.SetRoom("")
	client.SetName("")

	h.server.BroadcastRoomList()
}

// handleGetRooms 回给请求者当前房间列表，单连接限频内的重复请求直接忽略
func (h *Handler) handleGetRooms(client types.ClientInterface) {
	id := client.GetID()

	h.getRoomsMu.Lock()
	if last, ok := h.getRoomsLast[id]; ok && time.Since(last) < getRoomsInterval {
		h.getRoomsMu.Unlock()
		return
	}
	h.getRoomsLast[id] = time.Now()
	// 顺手清掉早已过期的连接记录，避免表无限增长
	if len(h.getRoomsLast) > 1024 {
		for k, v := range h.getRoomsLast {
			if time.Since(v) > getRoomsInterval {
				delete(h.getRoomsLast, k)
			}
		}
	}
	h.getRoomsMu.Unlock()

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomList, protocol.RoomListPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}
