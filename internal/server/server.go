package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/shattle/shattle-server/internal/auth"
	"github.com/shattle/shattle-server/internal/config"
	"github.com/shattle/shattle-server/internal/game/session"
	"github.com/shattle/shattle-server/internal/server/handler"
	"github.com/shattle/shattle-server/internal/server/rooms"
	"github.com/shattle/shattle-server/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
	EnableCompression: false,
}

// Server WebSocket 服务器
type Server struct {
	config     *config.Config
	redis      *redis.Client
	redisStore *storage.RedisStore
	registry   *session.Registry
	rooms      *rooms.Rooms
	handler    *handler.Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
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

	store := storage.NewRedisStore(rdb)

	s := &Server{
		config:     cfg,
		redis:      rdb,
		redisStore: store,
		rooms:      rooms.New(),
		clients:    make(map[string]*Client),
		registry: session.NewRegistry(store, store, session.Policies{
			AllowOutOfTurn:    cfg.Game.AllowOutOfTurn,
			SeedOpeningRounds: cfg.Game.SeedOpeningRounds,
		}),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}

	s.handler = handler.NewHandler(handler.Deps{
		Registry: s.registry,
		Rooms:    s.rooms,
		Auth:     auth.NewJWTAuthenticator(cfg.Auth.TokenKey, store),
		Maps:     store,
	})

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := s.config.Server.Addr()

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	// 启动监控 goroutine
	go s.monitorStats()

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}
