package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	ReconnectGrace   int `yaml:"reconnect_grace"`    // 断线重连宽限期（秒）
	RoomListThrottle int `yaml:"room_list_throttle"` // 房间列表广播节流（毫秒）
}

// ReconnectGraceDuration 返回断线宽限时长
func (c *GameConfig) ReconnectGraceDuration() time.Duration {
	return time.Duration(c.ReconnectGrace) * time.Second
}

// RoomListThrottleDuration 返回房间列表广播节流时长
func (c *GameConfig) RoomListThrottleDuration() time.Duration {
	return time.Duration(c.RoomListThrottle) * time.Millisecond
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	// .env 不存在不算错误，环境变量仍会生效
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = 1024
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.ReconnectGrace == 0 {
		cfg.Game.ReconnectGrace = 60
	}
	if cfg.Game.RoomListThrottle == 0 {
		cfg.Game.RoomListThrottle = 1000
	}

	applyEnv(&cfg)

	return &cfg, nil
}

// applyEnv 用环境变量覆盖配置，方便容器部署
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Default 返回默认配置
func Default() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			MaxConnections: 1024,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			ReconnectGrace:   60,
			RoomListThrottle: 1000,
		},
	}
	applyEnv(cfg)
	return cfg
}
