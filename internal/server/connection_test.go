package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/server/rooms"
)

func TestServer_SlotReleasedOnDisconnect(t *testing.T) {
	t.Parallel()

	s := &Server{
		rooms:          rooms.New(),
		clients:        make(map[string]*Client),
		maxConnections: 1,
		semaphore:      make(chan struct{}, 1),
	}

	// 模拟 handleWebSocket 的接入路径: 占用唯一配额并注册连接
	s.semaphore <- struct{}{}
	client := NewClient(s, nil)
	s.registerClient(client)
	require.Equal(t, 1, s.GetOnlineCount())
	require.Len(t, s.semaphore, 1)

	// 断开时配额必须归还，否则配额会随断开的连接永久流失
	client.handleDisconnect()
	assert.Equal(t, 0, s.GetOnlineCount())
	assert.Len(t, s.semaphore, 0)

	// 重复断开是幂等的，不会过量归还
	s.semaphore <- struct{}{}
	client.handleDisconnect()
	assert.Len(t, s.semaphore, 1)
}

func TestServer_ReleaseSlotOnEmptySemaphore(t *testing.T) {
	t.Parallel()

	s := &Server{semaphore: make(chan struct{}, 1)}

	// 空信号量上的归还不能阻塞
	s.releaseSlot()
	assert.Len(t, s.semaphore, 0)
}
