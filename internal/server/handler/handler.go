package handler

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/palemoky/xi-dach/internal/apperrors"
	"github.com/palemoky/xi-dach/internal/game/room"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/server/session"
	"github.com/palemoky/xi-dach/internal/server/storage"
	"github.com/palemoky/xi-dach/internal/types"
)

// Deps 处理器依赖
type Deps struct {
	Server         types.ServerInterface
	RoomManager    *room.Manager
	SessionManager *session.Manager
	RedisStore     *storage.RedisStore
}

// Handler 消息处理器
type Handler struct {
	server         types.ServerInterface
	roomManager    *room.Manager
	sessionManager *session.Manager
	redisStore     *storage.RedisStore
	handlers       map[protocol.MessageType]handlerFunc

	// get_rooms 按连接限频
	getRoomsMu   sync.Mutex
	getRoomsLast map[string]time.Time
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		server:         deps.Server,
		roomManager:    deps.RoomManager,
		sessionManager: deps.SessionManager,
		redisStore:     deps.RedisStore,
		getRoomsLast:   make(map[string]time.Time),
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:      h.handlePing,
		protocol.MsgReconnect: h.handleReconnect,
		protocol.MsgCheckName: h.handleCheckName,

		// 房间操作
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgLeaveRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },
		protocol.MsgGetRooms:   func(c types.ClientInterface, _ *protocol.Message) { h.handleGetRooms(c) },

		// 游戏操作
		protocol.MsgStartGame:    func(c types.ClientInterface, _ *protocol.Message) { h.handleStartGame(c) },
		protocol.MsgDrawCard:     func(c types.ClientInterface, _ *protocol.Message) { h.handleDrawCard(c) },
		protocol.MsgStand:        func(c types.ClientInterface, _ *protocol.Message) { h.handleStand(c) },
		protocol.MsgCompareHands: h.handleCompareHands,
		protocol.MsgRestartGame:  func(c types.ClientInterface, _ *protocol.Message) { h.handleRestartGame(c) },
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自: %s)", msg.Type, client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// sendError 校验失败只回给操作者本人，不碰对局状态
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
