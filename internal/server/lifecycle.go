package server

import (
	"log"
	"runtime"
	"time"
)

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | Goroutines: %d | 活跃连接: %d/%d | 活跃游戏: %d | 内存: %.2f MB",
			s.GetOnlineCount(),
			runtime.NumGoroutine(),
			len(s.semaphore),
			s.maxConnections,
			s.registry.Count(),
			float64(m.Alloc)/1024/1024)
	}
}

// EnterMaintenanceMode 进入维护模式，拒绝新连接
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	log.Println("🔧 进入维护模式：停止接受新连接")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 优雅关闭服务器
// 先停止接受新连接，等待进行中的游戏结束（有超时），再关闭所有连接
func (s *Server) GracefulShutdown(timeout time.Duration) {
	s.EnterMaintenanceMode()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		active := s.registry.Count()
		if active == 0 {
			log.Println("✅ 所有游戏已结束")
			break
		}
		log.Printf("⏳ 等待 %d 局游戏结束...", active)
		<-ticker.C
	}

	if active := s.registry.Count(); active > 0 {
		log.Printf("⚠️ 超时，仍有 %d 局游戏进行中，强制关闭", active)
	}

	s.Shutdown()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	// 关闭所有客户端连接
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	// 关闭 Redis
	_ = s.redis.Close()

	log.Println("服务器已关闭")
}
