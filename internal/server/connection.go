package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// handleIndex 门面接口
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Xì Dách Game Server"))
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleStats 运行状态接口
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{
		"online":      s.GetOnlineCount(),
		"rooms":       len(s.roomManager.GetRoomList()),
		"activeGames": s.roomManager.GetActiveGamesCount(),
	})
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 连接数限制检查
	select {
	case s.semaphore <- struct{}{}:
		// 成功获取信号量，连接断开后释放
	default:
		log.Printf("🚫 达到最大连接数限制 (%d)", s.maxConnections)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ClientID: client.ID,
	}))

	log.Printf("✅ 客户端 %s 已连接", client.ID)

	// 客户端带上了之前的身份，尝试隐式重连恢复会话
	if playerName := r.URL.Query().Get("playerName"); playerName != "" {
		s.handler.ReconnectByName(client, playerName)
	}

	go client.ReadPump()
	go client.WritePump()
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端并释放连接配额
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		<-s.semaphore
		log.Printf("❌ 客户端 %s 已断开", client.ID)
	}
}

// handleClientOffline 连接断开：标记离线并启动宽限期定时器。
// 宽限期内重连会取消定时器；到点后才真正把玩家移出房间。
func (s *Server) handleClientOffline(c *Client) {
	name := c.GetName()
	if name == "" {
		return
	}

	s.roomManager.SetMemberOffline(c.GetRoom(), name)

	s.sessionManager.SetOffline(name, c.ID, func(roomID string) {
		s.evictMember(roomID, name)
	})
}

// evictMember 宽限期超时，把玩家彻底移出房间
func (s *Server) evictMember(roomID, playerName string) {
	log.Printf("⏰ 玩家 %s 重连宽限期已过，移出房间 %s", playerName, roomID)

	closed := s.roomManager.RemoveMember(roomID, playerName, "Cái đã mất kết nối")
	if closed {
		s.Broadcast(protocol.MustNewMessage(protocol.MsgRoomClosed, protocol.RoomClosedPayload{
			RoomID: roomID,
		}))
	}
	s.BroadcastRoomList()
}

// GetClientByID 按连接 ID 查找客户端
func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}
