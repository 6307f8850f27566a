//go:build !production

package testutil

import (
	"sync"

	"github.com/palemoky/xi-dach/internal/protocol"
	"github.com/palemoky/xi-dach/internal/types"
)

// MockServer 实现 types.ServerInterface 的简单 mock，记录广播调用
type MockServer struct {
	mu                 sync.Mutex
	Clients            map[string]types.ClientInterface
	Broadcasts         []*protocol.Message
	RoomListBroadcasts int
}

func NewMockServer() *MockServer {
	return &MockServer{Clients: make(map[string]types.ClientInterface)}
}

func (m *MockServer) GetOnlineCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clients)
}

func (m *MockServer) Broadcast(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Broadcasts = append(m.Broadcasts, msg)
}

func (m *MockServer) BroadcastRoomList() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoomListBroadcasts++
}

func (m *MockServer) GetClientByID(id string) types.ClientInterface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Clients[id]
}
