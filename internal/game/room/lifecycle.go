package room

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/xi-dach/internal/apperrors"
	"github.com/palemoky/xi-dach/internal/game/xidach"
	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// CreateRoom 创建房间，建房者成为庄家
func (m *Manager) CreateRoom(client types.ClientInterface, playerName string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.generateRoomID()

	r := &Room{
		ID:        id,
		Game:      xidach.NewGame(id, playerName),
		Clients:   map[string]types.ClientInterface{playerName: client},
		CreatedAt: time.Now(),
	}
	m.rooms[id] = r

	client.SetName(playerName)
	client.SetRoom(id)

	m.saveSnapshot(r)

	log.Printf("🏠 房间 %s 已创建，庄家 %s", id, playerName)
	return r, nil
}

// JoinRoom 闲家加入房间
func (m *Manager) JoinRoom(client types.ClientInterface, roomID, playerName string) (*Room, error) {
	m.mu.RLock()
	r, exists := m.rooms[roomID]
	m.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Game.AddPlayer(playerName); err != nil {
		return nil, apperrors.ErrRoomFull
	}

	r.Clients[playerName] = client
	client.SetName(playerName)
	client.SetRoom(roomID)

	// 房间内所有人（含新玩家）各收一份自己视角的状态
	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
			PlayerID:  playerName,
			GameState: state,
		})
	})

	m.saveSnapshot(r)

	log.Printf("👤 玩家 %s 加入房间 %s", playerName, roomID)
	return r, nil
}

// RemoveMember 把成员移出房间（主动离开或宽限期超时）。
// 庄家离场则整桌作废：通知所有成员本局取消并删除房间，返回 true。
func (m *Manager) RemoveMember(roomID, playerName, cancelReason string) (roomClosed bool) {
	m.mu.Lock()
	r, exists := m.rooms[roomID]
	if !exists {
		m.mu.Unlock()
		return false
	}

	if r.Game.IsDealer(playerName) {
		delete(m.rooms, roomID)
		m.mu.Unlock()

		r.mu.Lock()
		r.broadcast(protocol.MustNewMessage(protocol.MsgGameCancelled, protocol.GameCancelledPayload{
			Reason: cancelReason,
		}))
		for _, c := range r.Clients {
			if c != nil {
				c.SetRoom("")
			}
		}
		r.mu.Unlock()

		go func() { _ = m.redisStore.DeleteRoom(context.Background(), roomID) }()
		log.Printf("🏠 庄家 %s 离场，房间 %s 已解散", playerName, roomID)
		return true
	}
	m.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Game.HasPlayer(playerName) {
		return false
	}

	r.Game.RemovePlayer(playerName)
	if c := r.Clients[playerName]; c != nil {
		c.SetRoom("")
	}
	delete(r.Clients, playerName)

	r.broadcastEach(func(viewer string, state *xidach.GameState) *protocol.Message {
		return protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			PlayerID:  playerName,
			GameState: state,
		})
	})

	m.saveSnapshot(r)

	log.Printf("👋 玩家 %s 离开房间 %s", playerName, roomID)
	return false
}

// SetMemberOffline 成员断线：保留席位，仅摘掉连接，等待宽限期内重连
func (m *Manager) SetMemberOffline(roomID, playerName string) {
	r := m.GetRoom(roomID)
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Clients[playerName]; ok {
		r.Clients[playerName] = nil
		log.Printf("📴 玩家 %s 在房间 %s 中掉线", playerName, roomID)
	}
}

// Reattach 重连：挂回新连接并返回房间，房间不存在时返回 nil
func (m *Manager) Reattach(client types.ClientInterface, roomID, playerName string) *Room {
	r := m.GetRoom(roomID)
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Game.IsDealer(playerName) && !r.Game.HasPlayer(playerName) {
		return nil
	}

	r.Clients[playerName] = client
	client.SetName(playerName)
	client.SetRoom(roomID)

	log.Printf("📶 玩家 %s 重连到房间 %s", playerName, roomID)
	return r
}

// generateRoomID 生成唯一房间号，须持有 m.mu
func (m *Manager) generateRoomID() string {
	for {
		id := make([]byte, roomIDLength)
		for i := range id {
			id[i] = roomIDChars[rand.IntN(len(roomIDChars))]
		}
		if _, exists := m.rooms[string(id)]; !exists {
			return string(id)
		}
	}
}
