package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	// Test creating a simple message
	payload := GameJoinPayload{Code: "123456", AccessToken: "token"}
	msg, err := NewMessage(MsgGameJoin, payload)

	assert.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Equal(t, MsgGameJoin, msg.Type)
	assert.NotEmpty(t, msg.Payload)
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgPing, nil)

	assert.NoError(t, err)
	assert.Equal(t, MsgPing, msg.Type)
	assert.Empty(t, msg.Payload)
}

func TestNewMessage_UnserializablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewMessage(MsgPong, make(chan int))
	require.Error(t, err)
	// The error names the offending message type
	assert.Contains(t, err.Error(), string(MsgPong))
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	// Setup original message
	payload := PlayerActionPayload{
		UserID: "u1",
		GameID: "g1",
		Actions: []ActionInfo{
			{Type: "move", To: 42},
			{Type: "spell", Spell: "fireball", Direction: "north"},
		},
	}
	originalMsg, err := NewMessage(MsgPlayerAction, payload)
	require.NoError(t, err)

	// Encode
	bytes, err := originalMsg.Encode()
	require.NoError(t, err)
	assert.NotEmpty(t, bytes)

	// Decode
	decodedMsg, err := Decode(bytes)
	require.NoError(t, err)

	// Verify
	assert.Equal(t, originalMsg.Type, decodedMsg.Type)
	assert.JSONEq(t, string(originalMsg.Payload), string(decodedMsg.Payload))
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgGameStart, GameStartPayload{UserID: "u1", GameID: "g1"})

	parsed, err := ParsePayload[GameStartPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UserID)
	assert.Equal(t, "g1", parsed.GameID)
}

func TestParsePayload_Invalid(t *testing.T) {
	t.Parallel()

	msg := &Message{Type: MsgGameStart, Payload: []byte("not json")}

	_, err := ParsePayload[GameStartPayload](msg)
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeGameNotFound)
	require.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeGameNotFound, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeGameNotFound], payload.Message)
}

func TestNewErrorMessageWithText(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessageWithText(ErrCodePersistence, "redis down")

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodePersistence, payload.Code)
	assert.Equal(t, "redis down", payload.Message)
}
