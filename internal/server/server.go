package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/xi-dach/internal/config"
	"github.com/palemoky/xi-dach/internal/game/room"
	"github.com/palemoky/xi-dach/internal/server/handler"
	"github.com/palemoky/xi-dach/internal/server/session"
	"github.com/palemoky/xi-dach/internal/server/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器
type Server struct {
	config         *config.Config
	redis          *redis.Client
	redisStore     *storage.RedisStore
	roomManager    *room.Manager
	sessionManager *session.Manager
	clients        map[string]*Client
	clientsMu      sync.RWMutex
	handler        *handler.Handler
	httpServer     *http.Server

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 房间列表广播节流（合并突发更新）
	roomListMu      sync.Mutex
	roomListLast    time.Time
	roomListPending bool
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化 Redis 客户端
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	s := &Server{
		config:         cfg,
		redis:          rdb,
		redisStore:     storage.NewRedisStore(rdb),
		clients:        make(map[string]*Client),
		sessionManager: session.NewManager(cfg.Game.ReconnectGraceDuration()),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	// 初始化房间管理器
	s.roomManager = room.NewManager(s.redisStore)

	// 初始化消息处理器
	s.handler = handler.NewHandler(handler.Deps{
		Server:         s,
		RoomManager:    s.roomManager,
		SessionManager: s.sessionManager,
		RedisStore:     s.redisStore,
	})

	// 进程重启后内存房间已失，Redis 里的快照都是残留
	go s.cleanupStaleSnapshots()

	return s, nil
}

// cleanupStaleSnapshots 清理上一个进程留下的房间快照
func (s *Server) cleanupStaleSnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ids, err := s.redisStore.GetAllRoomIDs(ctx)
	if err != nil {
		log.Printf("读取残留房间快照失败: %v", err)
		return
	}
	for _, id := range ids {
		_ = s.redisStore.DeleteRoom(ctx, id)
	}
	if len(ids) > 0 {
		log.Printf("🧹 已清理 %d 个残留房间快照", len(ids))
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown 优雅关闭：断开所有连接并关闭 Redis
func (s *Server) Shutdown() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]*Client)
	s.clientsMu.Unlock()

	_ = s.redis.Close()
}
