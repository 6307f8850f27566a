package protocol

import (
	"github.com/palemoky/xi-dach/internal/game/card"
	"github.com/palemoky/xi-dach/internal/game/xidach"
)

// --- 客户端 → 服务端 ---

// CheckNamePayload 昵称可用性查询
type CheckNamePayload struct {
	PlayerName string `json:"playerName"`
}

// CreateRoomPayload 创建房间
type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
}

// JoinRoomPayload 加入房间
type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// LeaveRoomPayload 离开房间
type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

// ReconnectPayload 断线重连
type ReconnectPayload struct {
	PlayerName string `json:"playerName"`
}

// CompareHandsPayload 庄家开牌
type CompareHandsPayload struct {
	TargetPlayerID string `json:"targetPlayerId"`
}

// --- 服务端 → 客户端 ---

// ConnectedPayload 连接成功
type ConnectedPayload struct {
	ClientID string `json:"clientId"`
}

// NameCheckedPayload 昵称查询结果
type NameCheckedPayload struct {
	PlayerName  string `json:"playerName"`
	IsAvailable bool   `json:"isAvailable"`
}

// RoomCreatedPayload 房间创建成功
type RoomCreatedPayload struct {
	RoomID    string            `json:"roomId"`
	GameState *xidach.GameState `json:"gameState"`
}

// PlayerJoinedPayload 有玩家加入，每个接收者拿到自己视角的对局投影
type PlayerJoinedPayload struct {
	PlayerID  string            `json:"playerId"`
	GameState *xidach.GameState `json:"gameState"`
}

// PlayerLeftPayload 玩家离开
type PlayerLeftPayload struct {
	PlayerID  string            `json:"playerId"`
	GameState *xidach.GameState `json:"gameState"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	ID          string `json:"id"`
	Dealer      string `json:"dealer"`
	PlayerCount int    `json:"playerCount"` // 含庄家
}

// RoomListPayload 房间列表
type RoomListPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomClosedPayload 房间已关闭
type RoomClosedPayload struct {
	RoomID string `json:"roomId"`
}

// GameCancelledPayload 庄家离场，本局作废
type GameCancelledPayload struct {
	Reason string `json:"reason"`
}

// GameStatePayload 仅携带对局投影的通用载荷
type GameStatePayload struct {
	GameState *xidach.GameState `json:"gameState"`
}

// CardDrawnPayload 有人补牌。Card/Status/HandValue 与原始动作的返回一致
type CardDrawnPayload struct {
	PlayerID  string            `json:"playerId"`
	Card      card.Card         `json:"card"`
	Status    xidach.DrawStatus `json:"status"`
	HandValue int               `json:"handValue"`
	GameState *xidach.GameState `json:"gameState"`
}

// PlayerStoodPayload 有人停牌
type PlayerStoodPayload struct {
	PlayerID  string            `json:"playerId"`
	GameState *xidach.GameState `json:"gameState"`
}

// HandsComparedPayload 庄家开牌结果
type HandsComparedPayload struct {
	DealerID  string            `json:"dealerId"`
	PlayerID  string            `json:"playerId"`
	Result    xidach.Outcome    `json:"result"`
	GameState *xidach.GameState `json:"gameState"`
}

// ReconnectedPayload 重连成功
type ReconnectedPayload struct {
	RoomID    string            `json:"roomId"`
	GameState *xidach.GameState `json:"gameState"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
