package session

import (
	"sync"
	"time"
)

// PlayerSession 玩家会话（用于断线重连）。
// 以玩家名为唯一标识，同时充当活跃名字表：存在即占用。
type PlayerSession struct {
	PlayerName string
	RoomID     string
	ClientID   string // 当前连接 ID，重连时刷新

	IsOnline       bool
	DisconnectedAt time.Time

	graceTimer *time.Timer // 断线清理定时器，重连时取消
	mu         sync.RWMutex
}

// Manager 会话管理器，进程级单例
type Manager struct {
	grace    time.Duration
	sessions map[string]*PlayerSession // playerName -> session
	mu       sync.RWMutex
}

// NewManager 创建会话管理器，grace 为断线重连宽限期
func NewManager(grace time.Duration) *Manager {
	return &Manager{
		grace:    grace,
		sessions: make(map[string]*PlayerSession),
	}
}

// Create 创建新会话（建房或加入房间时）
func (m *Manager) Create(playerName, roomID, clientID string) *PlayerSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &PlayerSession{
		PlayerName: playerName,
		RoomID:     roomID,
		ClientID:   clientID,
		IsOnline:   true,
	}
	m.sessions[playerName] = s
	return s
}

// Get 获取会话
func (m *Manager) Get(playerName string) *PlayerSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[playerName]
}

// Delete 删除会话并取消挂起的清理定时器
func (m *Manager) Delete(playerName string) {
	m.mu.Lock()
	s, ok := m.sessions[playerName]
	if ok {
		delete(m.sessions, playerName)
	}
	m.mu.Unlock()

	if ok {
		s.mu.Lock()
		if s.graceTimer != nil {
			s.graceTimer.Stop()
			s.graceTimer = nil
		}
		s.mu.Unlock()
	}
}

// IsNameActive 判断名字是否被占用
func (m *Manager) IsNameActive(playerName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[playerName]
	return ok
}

// IsNameAvailable 判断名字是否可用。与查询者当前身份同名视为可用
func (m *Manager) IsNameAvailable(playerName, currentName string) bool {
	if playerName == currentName && playerName != "" {
		return true
	}
	return !m.IsNameActive(playerName)
}

// RoomID 返回玩家所在房间号，无会话时为空
func (m *Manager) RoomID(playerName string) string {
	s := m.Get(playerName)
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RoomID
}

// SetOffline 标记断线并启动宽限期定时器。
// clientID 不匹配说明该名字已被新连接接管，直接忽略。
// 宽限期内没有重连时回调 onExpire（会话已先行删除）。
func (m *Manager) SetOffline(playerName, clientID string, onExpire func(roomID string)) bool {
	s := m.Get(playerName)
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClientID != clientID {
		return false
	}

	s.IsOnline = false
	s.DisconnectedAt = time.Now()
	if s.graceTimer != nil {
		s.graceTimer.Stop()
	}
	s.graceTimer = time.AfterFunc(m.grace, func() {
		if roomID, removed := m.expire(playerName, clientID); removed && onExpire != nil {
			onExpire(roomID)
		}
	})
	return true
}

// expire 宽限期到点：仅当玩家仍离线且连接未被接管时删除会话
func (m *Manager) expire(playerName, clientID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[playerName]
	if !ok {
		return "", false
	}
	s.mu.RLock()
	stale := !s.IsOnline && s.ClientID == clientID
	roomID := s.RoomID
	s.mu.RUnlock()
	if !stale {
		return "", false
	}
	delete(m.sessions, playerName)
	return roomID, true
}

// Reattach 重连：刷新连接 ID、恢复在线并取消清理定时器。
// 幂等，重复调用只是再次刷新连接。无会话时返回 nil。
func (m *Manager) Reattach(playerName, clientID string) *PlayerSession {
	s := m.Get(playerName)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ClientID = clientID
	s.IsOnline = true
	s.DisconnectedAt = time.Time{}
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
	return s
}

// IsOnline 检查玩家是否在线
func (m *Manager) IsOnline(playerName string) bool {
	s := m.Get(playerName)
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.IsOnline
}
