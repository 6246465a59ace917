//go:build !production

// Package testutil 测试辅助工具
package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/shattle/shattle-server/internal/protocol"
)

// SimpleClient 记录收到消息的轻量测试客户端
type SimpleClient struct {
	ID     string
	UserID string

	mu       sync.Mutex
	messages []*protocol.Message
	full     bool // 模拟发送缓冲已满
	closed   bool
}

// NewSimpleClient 创建测试客户端
func NewSimpleClient(id string) *SimpleClient {
	return &SimpleClient{ID: id}
}

func (c *SimpleClient) GetID() string { return c.ID }

func (c *SimpleClient) GetUserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.UserID
}

func (c *SimpleClient) BindUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.UserID = userID
}

func (c *SimpleClient) SendMessage(msg *protocol.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return false
	}
	c.messages = append(c.messages, msg)
	return true
}

func (c *SimpleClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Messages 返回已收到消息的副本
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]*protocol.Message, len(c.messages))
	copy(msgs, c.messages)
	return msgs
}

// LastMessage 返回最后一条消息，没有时返回 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// MessagesOfType 返回指定类型的所有消息
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var msgs []*protocol.Message
	for _, m := range c.messages {
		if m.Type == msgType {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// SetFull 模拟发送缓冲已满，之后 SendMessage 返回 false
func (c *SimpleClient) SetFull(full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = full
}

// Closed 返回连接是否已被关闭
func (c *SimpleClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// MockClient 基于 testify/mock 的客户端 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	return m.Called().String(0)
}

func (m *MockClient) GetUserID() string {
	return m.Called().String(0)
}

func (m *MockClient) BindUser(userID string) {
	m.Called(userID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) bool {
	return m.Called(msg).Bool(0)
}

func (m *MockClient) Close() {
	m.Called()
}
