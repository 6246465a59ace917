// Package types 定义跨包共享的接口，避免 server 与 handler 之间的循环依赖
package types

import (
	"github.com/shattle/shattle-server/internal/protocol"
)

// ClientInterface 一条客户端连接
type ClientInterface interface {
	// GetID 返回连接唯一 ID
	GetID() string
	// GetUserID 返回该连接已验证的用户 ID，未验证时为空
	GetUserID() string
	// BindUser 将已验证的用户绑定到连接
	BindUser(userID string)
	// SendMessage 异步发送消息，发送缓冲满时丢弃并返回 false
	SendMessage(msg *protocol.Message) bool
	// Close 关闭连接
	Close()
}

// RoomsInterface 游戏房间广播协调器
type RoomsInterface interface {
	// Join 将连接加入游戏房间（幂等）
	Join(gameID string, client ClientInterface)
	// Leave 将连接移出其加入的所有房间
	Leave(client ClientInterface)
	// Publish 向房间内所有成员广播消息（尽力而为）
	Publish(gameID string, msg *protocol.Message)
	// Contains 检查连接是否在房间内
	Contains(gameID string, client ClientInterface) bool
}
