package server

import (
	"log"
	"net/http"

	"github.com/shattle/shattle-server/internal/protocol"
)

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		log.Printf("🔧 维护模式，拒绝新连接: %s", r.RemoteAddr)
		http.Error(w, "Server is under maintenance, please try again later",
			http.StatusServiceUnavailable)
		return
	}

	// 连接数限制检查，配额持有整条连接的生命周期，断开时归还
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Printf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, r.RemoteAddr)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		s.releaseSlot()
		return
	}

	client := NewClient(s, conn)
	client.IP = r.RemoteAddr
	s.registerClient(client)

	// 通知客户端连接已建立，后续请求用 access_token 验证身份
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ConnID: client.ID,
	}))

	log.Printf("✅ 连接 %s 已建立 (IP: %s)", client.ID, client.IP)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端连接
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端连接并归还连接配额
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		s.releaseSlot()
		log.Printf("❌ 连接 %s 已断开", client.ID)
	}
}

// releaseSlot 归还一个连接配额
func (s *Server) releaseSlot() {
	select {
	case <-s.semaphore:
	default:
	}
}

// GetOnlineCount 返回当前在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}
