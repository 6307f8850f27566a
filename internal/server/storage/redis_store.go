package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix    = "room:"
	sessionKeyPrefix = "session:"
	roomIndexKey     = "rooms:index"

	// 房间快照过期时间
	roomExpiration = 2 * time.Hour
)

// RoomData 房间快照（仅用于运维观测，进程内存才是权威状态）
type RoomData struct {
	ID          string   `json:"id"`
	Dealer      string   `json:"dealer"`
	State       string   `json:"state"`
	PlayerNames []string `json:"player_names"`
	PlayerCount int      `json:"player_count"` // 含庄家
	CreatedAt   int64    `json:"created_at"`
}

// SessionData 玩家会话镜像
type SessionData struct {
	PlayerName     string `json:"player_name"`
	RoomID         string `json:"room_id"`
	ClientID       string `json:"client_id"`
	IsOnline       bool   `json:"is_online"`
	DisconnectedAt int64  `json:"disconnected_at,omitempty"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 房间快照 ---

// SaveRoom 保存房间快照并登记索引
func (rs *RedisStore) SaveRoom(ctx context.Context, data *RoomData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化房间数据失败: %w", err)
	}

	key := roomKeyPrefix + data.ID
	pipe := rs.client.Pipeline()
	pipe.Set(ctx, key, jsonData, roomExpiration)
	pipe.SAdd(ctx, roomIndexKey, data.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadRoom 读取房间快照，不存在时返回 nil
func (rs *RedisStore) LoadRoom(ctx context.Context, roomID string) (*RoomData, error) {
	data, err := rs.client.Get(ctx, roomKeyPrefix+roomID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var roomData RoomData
	if err := json.Unmarshal(data, &roomData); err != nil {
		return nil, fmt.Errorf("反序列化房间数据失败: %w", err)
	}
	return &roomData, nil
}

// DeleteRoom 删除房间快照并摘除索引
func (rs *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	pipe := rs.client.Pipeline()
	pipe.Del(ctx, roomKeyPrefix+roomID)
	pipe.SRem(ctx, roomIndexKey, roomID)
	_, err := pipe.Exec(ctx)
	return err
}

// GetAllRoomIDs 获取所有房间号
func (rs *RedisStore) GetAllRoomIDs(ctx context.Context) ([]string, error) {
	return rs.client.SMembers(ctx, roomIndexKey).Result()
}

// --- 会话镜像 ---

// SaveSession 保存会话镜像
func (rs *RedisStore) SaveSession(ctx context.Context, session *SessionData) error {
	if session == nil {
		return nil
	}

	data := map[string]any{
		"player_name": session.PlayerName,
		"room_id":     session.RoomID,
		"client_id":   session.ClientID,
		"is_online":   session.IsOnline,
	}
	if session.DisconnectedAt != 0 {
		data["disconnected_at"] = session.DisconnectedAt
	}

	return rs.client.HSet(ctx, sessionKeyPrefix+session.PlayerName, data).Err()
}

// LoadSession 读取会话镜像，不存在时返回 nil
func (rs *RedisStore) LoadSession(ctx context.Context, playerName string) (*SessionData, error) {
	data, err := rs.client.HGetAll(ctx, sessionKeyPrefix+playerName).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &SessionData{
		PlayerName: data["player_name"],
		RoomID:     data["room_id"],
		ClientID:   data["client_id"],
		IsOnline:   data["is_online"] == "1",
	}, nil
}

// DeleteSession 删除会话镜像
func (rs *RedisStore) DeleteSession(ctx context.Context, playerName string) error {
	return rs.client.Del(ctx, sessionKeyPrefix+playerName).Err()
}
