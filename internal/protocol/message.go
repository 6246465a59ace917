package protocol

import (
	"encoding/json"
	"fmt"
)

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
//
// 注意: game.join / game.start / player.action / game.finish 在成功时
// 会以同名事件广播回房间，与原版 socket.io 协议保持一致
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 游戏会话操作
	MsgGameCreate   MessageType = "game.create"   // 创建游戏
	MsgGameJoin     MessageType = "game.join"     // 通过邀请码加入游戏
	MsgGameStart    MessageType = "game.start"    // 开始游戏
	MsgPlayerAction MessageType = "player.action" // 提交回合行动
	MsgGameFinish   MessageType = "game.finish"   // 结束游戏
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong
	MsgError     MessageType = "error"     // 错误消息
)

// NewMessage 组装一条指定类型的消息，payload 为 nil 时不携带负载
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化 %s 负载失败: %w", msgType, err)
	}
	msg.Payload = data
	return msg, nil
}

// MustNewMessage 组装消息，负载无法序列化时 panic
// 仅用于负载由我们自己的 payload 类型构造、序列化不可能失败的场景
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 编码为单帧 JSON
func (m *Message) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("编码 %s 消息失败: %w", m.Type, err)
	}
	return data, nil
}

// Decode 从单帧 JSON 还原消息
func Decode(data []byte) (*Message, error) {
	msg := new(Message)
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("解码消息失败: %w", err)
	}
	return msg, nil
}

// ParsePayload 将消息负载解析为具体的 payload 类型
func ParsePayload[T any](msg *Message) (*T, error) {
	payload := new(T)
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("解析 %s 负载失败: %w", msg.Type, err)
	}
	return payload, nil
}
