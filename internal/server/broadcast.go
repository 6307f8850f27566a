package server

import (
	"time"

	"github.com/palemoky/xi-dach/internal/protocol"
)

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Broadcast 广播消息给所有客户端
func (s *Server) Broadcast(msg *protocol.Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, client := range s.clients {
		client.SendMessage(msg)
	}
}

// BroadcastRoomList 广播房间列表。节流合并：突发的房间增删只会触发
// 一次立即广播加一次尾部广播，纯粹是限频优化，不影响正确性。
func (s *Server) BroadcastRoomList() {
	throttle := s.config.Game.RoomListThrottleDuration()

	s.roomListMu.Lock()
	defer s.roomListMu.Unlock()

	elapsed := time.Since(s.roomListLast)
	if elapsed >= throttle {
		s.roomListLast = time.Now()
		go s.sendRoomList()
		return
	}

	// 节流窗口内已有一次挂起的尾部广播
	if s.roomListPending {
		return
	}
	s.roomListPending = true
	time.AfterFunc(throttle-elapsed, func() {
		s.roomListMu.Lock()
		s.roomListPending = false
		s.roomListLast = time.Now()
		s.roomListMu.Unlock()
		s.sendRoomList()
	})
}

func (s *Server) sendRoomList() {
	s.Broadcast(protocol.MustNewMessage(protocol.MsgRoomList, protocol.RoomListPayload{
		Rooms: s.roomManager.GetRoomList(),
	}))
}
