package room

import (
	"sync"
	"time"

	"github.com/palemoky/xi-dach/internal/game/xidach"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/server/storage"
	"github.com/palemoky/xi-dach/internal/types"
)

const (
	roomIDLength = 6                                      // 房间号长度
	roomIDChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" // 房间号字符集
)

// Room 游戏房间：一桌对局加上成员连接。
// 成员断线时连接置为 nil（会话仍在宽限期内），重连后恢复。
type Room struct {
	ID        string
	Game      *xidach.Game
	Clients   map[string]types.ClientInterface // playerName -> 连接，含庄家
	CreatedAt time.Time

	mu sync.RWMutex
}

// Manager 房间管理器，进程级的房间注册表
type Manager struct {
	redisStore *storage.RedisStore
	rooms      map[string]*Room
	mu         sync.RWMutex
}

// NewManager 创建房间管理器
func NewManager(rs *storage.RedisStore) *Manager {
	return &Manager{
		redisStore: rs,
		rooms:      make(map[string]*Room),
	}
}

// GetRoom 获取房间
func (m *Manager) GetRoom(id string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[id]
}

// GetRoomList 获取房间列表
func (m *Manager) GetRoomList() []protocol.RoomListItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]protocol.RoomListItem, 0, len(m.rooms))
	for id, r := range m.rooms {
		r.mu.RLock()
		rooms = append(rooms, protocol.RoomListItem{
			ID:          id,
			Dealer:      r.Game.DealerName(),
			PlayerCount: r.Game.PlayerCount() + 1, // 含庄家
		})
		r.mu.RUnlock()
	}
	return rooms
}

// SnapshotFor 以指定视角生成对局快照，房间不存在返回 nil
func (m *Manager) SnapshotFor(roomID, viewer string) *xidach.GameState {
	r := m.GetRoom(roomID)
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Game.Snapshot(viewer)
}

// GetActiveGamesCount 获取进行中的对局数量
func (m *Manager) GetActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.rooms {
		r.mu.RLock()
		if r.Game.State() == xidach.StatePlaying || r.Game.State() == xidach.StateDealing {
			count++
		}
		r.mu.RUnlock()
	}
	return count
}

// broadcast 给房间内所有在线成员发送同一条消息，须持有 r.mu
func (r *Room) broadcast(msg *protocol.Message) {
	for _, c := range r.Clients {
		if c != nil {
			c.SendMessage(msg)
		}
	}
}

// broadcastEach 给每个在线成员发送各自视角的消息，须持有 r.mu。
// 广播的永远是按观察者投影后的状态，绝不共享同一份原始对象。
func (r *Room) broadcastEach(build func(viewer string, state *xidach.GameState) *protocol.Message) {
	for name, c := range r.Clients {
		if c == nil {
			continue
		}
		c.SendMessage(build(name, r.Game.Snapshot(name)))
	}
}
