package rooms

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/protocol"
	"github.com/shattle/shattle-server/internal/testutil"
)

func TestRooms_JoinPublish(t *testing.T) {
	t.Parallel()

	r := New()
	a := testutil.NewSimpleClient("a")
	b := testutil.NewSimpleClient("b")
	other := testutil.NewSimpleClient("other")

	r.Join("g1", a)
	r.Join("g1", b)
	r.Join("g2", other)

	msg := protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartedPayload{GameID: "g1"})
	r.Publish("g1", msg)

	require.Len(t, a.Messages(), 1)
	require.Len(t, b.Messages(), 1)
	assert.Equal(t, protocol.MsgGameStart, a.LastMessage().Type)

	// Members of other rooms are not reached
	assert.Empty(t, other.Messages())
}

func TestRooms_Join_Idempotent(t *testing.T) {
	t.Parallel()

	r := New()
	a := testutil.NewSimpleClient("a")

	r.Join("g1", a)
	r.Join("g1", a)
	assert.Equal(t, 1, r.Count("g1"))

	r.Publish("g1", protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{}))
	assert.Len(t, a.Messages(), 1)
}

func TestRooms_Leave(t *testing.T) {
	t.Parallel()

	r := New()
	a := testutil.NewSimpleClient("a")
	b := testutil.NewSimpleClient("b")

	// a is in two rooms at once
	r.Join("g1", a)
	r.Join("g2", a)
	r.Join("g1", b)

	r.Leave(a)

	assert.False(t, r.Contains("g1", a))
	assert.False(t, r.Contains("g2", a))
	assert.True(t, r.Contains("g1", b))
	assert.Equal(t, 0, r.Count("g2"))

	// Leaving twice is harmless
	r.Leave(a)
}

func TestRooms_Publish_SlowClientSkipped(t *testing.T) {
	t.Parallel()

	r := New()
	a := testutil.NewSimpleClient("a")
	b := testutil.NewSimpleClient("b")
	r.Join("g1", a)
	r.Join("g1", b)

	// A full send buffer must not block delivery to the others
	a.SetFull(true)
	r.Publish("g1", protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{}))

	assert.Empty(t, a.Messages())
	assert.Len(t, b.Messages(), 1)
}

func TestRooms_Publish_EmptyRoom(t *testing.T) {
	t.Parallel()

	r := New()
	// Must not panic
	r.Publish("missing", protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{}))
}

func TestRooms_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := testutil.NewSimpleClient(string(rune('a' + n)))
			r.Join("g1", c)
			r.Publish("g1", protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{}))
			r.Leave(c)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Count("g1"))
}
