// Package rooms 维护游戏房间与连接的成员关系并负责广播
//
// 房间成员关系只描述「哪些连接关注哪局游戏」，与会话的玩家名册无关:
// 同一用户可以有多条连接在同一房间。广播是尽力而为的，
// 发送缓冲已满的慢连接会丢消息，不会阻塞其他成员。
package rooms

import (
	"log"
	"sync"

	"github.com/shattle/shattle-server/internal/protocol"
	"github.com/shattle/shattle-server/internal/types"
)

// Rooms 广播协调器
type Rooms struct {
	rooms       map[string]map[types.ClientInterface]struct{} // gameID -> 成员连接
	memberships map[types.ClientInterface]map[string]struct{} // 连接 -> 已加入的 gameID
	mu          sync.RWMutex
}

// New 创建广播协调器
func New() *Rooms {
	return &Rooms{
		rooms:       make(map[string]map[types.ClientInterface]struct{}),
		memberships: make(map[types.ClientInterface]map[string]struct{}),
	}
}

// Join 将连接加入游戏房间，重复加入是无操作
func (r *Rooms) Join(gameID string, client types.ClientInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[gameID]
	if !ok {
		room = make(map[types.ClientInterface]struct{})
		r.rooms[gameID] = room
	}
	room[client] = struct{}{}

	games, ok := r.memberships[client]
	if !ok {
		games = make(map[string]struct{})
		r.memberships[client] = games
	}
	games[gameID] = struct{}{}
}

// Leave 将连接移出其加入的所有房间（连接断开时调用）
func (r *Rooms) Leave(client types.ClientInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for gameID := range r.memberships[client] {
		delete(r.rooms[gameID], client)
		if len(r.rooms[gameID]) == 0 {
			delete(r.rooms, gameID)
		}
	}
	delete(r.memberships, client)
}

// Publish 向房间内所有成员广播消息
// 发送失败（缓冲满）的连接被跳过，不影响其他成员
func (r *Rooms) Publish(gameID string, msg *protocol.Message) {
	r.mu.RLock()
	members := make([]types.ClientInterface, 0, len(r.rooms[gameID]))
	for client := range r.rooms[gameID] {
		members = append(members, client)
	}
	r.mu.RUnlock()

	for _, client := range members {
		if !client.SendMessage(msg) {
			log.Printf("📢 广播 %s 到连接 %s 失败（缓冲已满）", msg.Type, client.GetID())
		}
	}
}

// Contains 检查连接是否在房间内
func (r *Rooms) Contains(gameID string, client types.ClientInterface) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[gameID][client]
	return ok
}

// Count 返回房间内的连接数
func (r *Rooms) Count(gameID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[gameID])
}
