package room

import (
	"context"

	"github.com/palemoky/xi-dach/internal/server/storage"
)

// snapshotData 组装房间的 Redis 快照，须持有 r.mu（或房间尚未发布）
func snapshotData(r *Room) *storage.RoomData {
	names := make([]string, 0, len(r.Clients))
	for name := range r.Clients {
		names = append(names, name)
	}
	return &storage.RoomData{
		ID:          r.ID,
		Dealer:      r.Game.DealerName(),
		State:       string(r.Game.State()),
		PlayerNames: names,
		PlayerCount: r.Game.PlayerCount() + 1,
		CreatedAt:   r.CreatedAt.Unix(),
	}
}

// saveSnapshot 异步落一份快照到 Redis，仅供运维观测，失败不影响对局
func (m *Manager) saveSnapshot(r *Room) {
	data := snapshotData(r)
	go func() { _ = m.redisStore.SaveRoom(context.Background(), data) }()
}
