package handler

import (
	"context"
	"log"

	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/server/session"
	"github.com/palemoky/xi-dach/internal/server/storage"
	"github.com/palemoky/xi-dach/internal/types"
)

// handlePing 心跳
func (h *Handler) handlePing(client types.ClientInterface, _ *protocol.Message) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, nil))
}

// handleCheckName 昵称可用性查询。与自己当前身份同名视为可用
func (h *Handler) handleCheckName(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CheckNamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgNameChecked, protocol.NameCheckedPayload{
		PlayerName:  payload.PlayerName,
		IsAvailable: h.sessionManager.IsNameAvailable(payload.PlayerName, client.GetName()),
	}))
}

// handleReconnect 显式重连请求
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.ReconnectByName(client, payload.PlayerName)
}

// ReconnectByName 按身份重连。幂等：重复请求只是再次挂回当前连接，
// 绝不会创建新的参与者。
func (h *Handler) ReconnectByName(client types.ClientInterface, playerName string) {
	sess := h.sessionManager.Reattach(playerName, client.GetID())
	if sess == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeUnknown, "会话不存在或已过期"))
		return
	}

	r := h.roomManager.Reattach(client, sess.RoomID, playerName)
	if r == nil {
		// 房间已不在了，清掉孤儿会话，释放名字
		log.Printf("🧹 玩家 %s 的房间 %s 已不存在，清理会话", playerName, sess.RoomID)
		h.sessionManager.Delete(playerName)
		h.dropSessionMirror(playerName)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeRoomNotFound))
		return
	}

	h.mirrorSession(sess)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgReconnected, protocol.ReconnectedPayload{
		RoomID:    sess.RoomID,
		GameState: h.roomManager.SnapshotFor(sess.RoomID, playerName),
	}))
}

// mirrorSession 异步镜像会话到 Redis，仅供运维观测
func (h *Handler) mirrorSession(sess *session.PlayerSession) {
	data := &storage.SessionData{
		PlayerName: sess.PlayerName,
		RoomID:     sess.RoomID,
		ClientID:   sess.ClientID,
		IsOnline:   sess.IsOnline,
	}
	go func() { _ = h.redisStore.SaveSession(context.Background(), data) }()
}

func (h *Handler) dropSessionMirror(playerName string) {
	go func() { _ = h.redisStore.DeleteSession(context.Background(), playerName) }()
}
