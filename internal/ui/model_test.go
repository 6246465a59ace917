package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/client"
	"github.com/shattle/shattle-server/internal/protocol"
)

func newTestModel(userID string) *Model {
	// Not connected: messages pile up in the client's send buffer
	return NewModel(client.NewClient("ws://test/ws", "token"), userID)
}

func TestModel_CurrentTurn(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	assert.Equal(t, "", m.currentTurn())

	m.roster = []string{"a", "b", "c"}
	assert.Equal(t, "a", m.currentTurn())

	m.last = "a"
	assert.Equal(t, "b", m.currentTurn())

	// Wraps around
	m.last = "c"
	assert.Equal(t, "a", m.currentTurn())
}

func TestModel_GameCreatedTransition(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameCreate,
		protocol.GameCreatedPayload{GameID: "g1", Code: "123456", MapID: "m1"}))

	assert.Equal(t, stateWaiting, m.state)
	assert.Equal(t, "g1", m.gameID)
	assert.Equal(t, "123456", m.code)
	assert.Equal(t, []string{"a"}, m.roster)
}

func TestModel_JoinBroadcastUpdatesRoster(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameCreate,
		protocol.GameCreatedPayload{GameID: "g1", Code: "123456"}))
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameJoin,
		protocol.GameJoinedPayload{GameID: "g1", UserID: "b"}))

	assert.Equal(t, []string{"a", "b"}, m.roster)

	// Duplicate broadcast does not duplicate the roster entry
	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameJoin,
		protocol.GameJoinedPayload{GameID: "g1", UserID: "b"}))
	assert.Equal(t, []string{"a", "b"}, m.roster)
}

func TestModel_RoundBroadcast(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	m.roster = []string{"a", "b"}
	m.state = statePlaying

	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgPlayerAction,
		protocol.PlayerRoundPayload{History: protocol.RoundInfo{
			Player:  protocol.PlayerInfo{UserID: "a", UserName: "Alice"},
			Actions: []protocol.ActionInfo{{Type: "move", To: 5}},
		}}))

	require.Len(t, m.history, 1)
	assert.Contains(t, m.history[0], "Alice")
	assert.Equal(t, "a", m.last)
	assert.Equal(t, "b", m.currentTurn())
}

func TestModel_FinishAndError(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	m.state = statePlaying

	m.handleServerMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeNotYourTurn, "还没轮到您"))
	assert.Contains(t, m.errText, "还没轮到您")

	m.handleServerMessage(protocol.MustNewMessage(protocol.MsgGameFinish,
		protocol.GameFinishedPayload{GameID: "g1"}))
	assert.Equal(t, stateFinished, m.state)
}

func TestModel_SubmitCommand_ParseErrors(t *testing.T) {
	t.Parallel()

	m := newTestModel("a")
	m.state = statePlaying
	m.gameID = "g1"

	m.submitCommand("move")
	assert.NotEmpty(t, m.errText)

	m.errText = ""
	m.submitCommand("move abc")
	assert.NotEmpty(t, m.errText)

	m.errText = ""
	m.submitCommand("spell fireball")
	assert.NotEmpty(t, m.errText)

	m.errText = ""
	m.submitCommand("dance")
	assert.Contains(t, m.errText, "未知命令")

	// Valid commands produce no error
	m.errText = ""
	m.submitCommand("move 5")
	assert.Empty(t, m.errText)
	m.submitCommand("spell heal self")
	assert.Empty(t, m.errText)
}

func TestFormatRound(t *testing.T) {
	t.Parallel()

	line := formatRound(protocol.RoundInfo{
		Player: protocol.PlayerInfo{UserID: "u1"},
		Actions: []protocol.ActionInfo{
			{Type: "move", To: 3},
			{Type: "spell", Spell: "fireball", Direction: "north"},
		},
	})
	assert.Contains(t, line, "u1")
	assert.Contains(t, line, "3")
	assert.Contains(t, line, "fireball")
}
