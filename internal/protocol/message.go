package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing      MessageType = "ping"       // 心跳 ping
	MsgReconnect MessageType = "reconnect"  // 断线重连
	MsgCheckName MessageType = "check_name" // 昵称可用性查询

	// 房间操作
	MsgCreateRoom MessageType = "create_room" // 创建房间（建房者为庄家）
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgLeaveRoom  MessageType = "leave_room"  // 离开房间
	MsgGetRooms   MessageType = "get_rooms"   // 获取房间列表

	// 游戏操作
	MsgStartGame    MessageType = "start_game"    // 发牌开局（仅庄家）
	MsgDrawCard     MessageType = "draw_card"     // 补牌
	MsgStand        MessageType = "stand"         // 停牌
	MsgCompareHands MessageType = "compare_hands" // 开牌比大小（仅庄家）
	MsgRestartGame  MessageType = "restart_game"  // 重开一局（仅庄家）
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"    // 连接成功
	MsgReconnected MessageType = "reconnected"  // 重连成功
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgNameChecked MessageType = "name_checked" // 昵称查询结果

	// 房间相关
	MsgRoomCreated   MessageType = "room_created"   // 房间创建成功
	MsgPlayerJoined  MessageType = "player_joined"  // 有玩家加入
	MsgPlayerLeft    MessageType = "player_left"    // 玩家离开
	MsgRoomList      MessageType = "room_list"      // 房间列表
	MsgRoomClosed    MessageType = "room_closed"    // 房间已关闭
	MsgGameCancelled MessageType = "game_cancelled" // 庄家离场，本局作废

	// 游戏流程
	MsgGameStarted   MessageType = "game_started"   // 开局发牌完成
	MsgCardDrawn     MessageType = "card_drawn"     // 有人补牌
	MsgPlayerStood   MessageType = "player_stood"   // 有人停牌
	MsgHandsCompared MessageType = "hands_compared" // 庄家开牌结果
	MsgGameRestarted MessageType = "game_restarted" // 重开一局

	// 错误
	MsgError MessageType = "error" // 错误消息
)
