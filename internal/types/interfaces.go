package types

import (
	"github.com/palemoky/xi-dach/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	GetOnlineCount() int
	Broadcast(msg *protocol.Message)
	BroadcastRoomList()
	GetClientByID(id string) ClientInterface
}

// ClientInterface 定义客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetRoom() string
	SetRoom(id string)
	SendMessage(msg *protocol.Message)
	Close()
}
