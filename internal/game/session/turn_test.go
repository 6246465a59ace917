package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/apperrors"
)

func player(id string) Player {
	return Player{User: User{ID: id, Name: "Player " + id}}
}

func round(p Player) Round {
	return Round{Player: p, Actions: []Action{{Type: ActionMove, To: 0}}}
}

func TestCurrentPlayer_EmptyHistory(t *testing.T) {
	t.Parallel()

	players := []Player{player("a"), player("b")}

	current, err := CurrentPlayer(players, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", current.User.ID)
}

func TestCurrentPlayer_CyclesInOrder(t *testing.T) {
	t.Parallel()

	players := []Player{player("a"), player("b"), player("c")}

	// Play two full cycles, the rotation must follow array order and wrap
	var history []Round
	want := []string{"a", "b", "c", "a", "b", "c"}
	for _, expected := range want {
		current, err := CurrentPlayer(players, history)
		require.NoError(t, err)
		assert.Equal(t, expected, current.User.ID)
		history = append(history, round(current))
	}
}

func TestCurrentPlayer_WrapsAfterLast(t *testing.T) {
	t.Parallel()

	players := []Player{player("a"), player("b")}
	history := []Round{round(player("b"))}

	current, err := CurrentPlayer(players, history)
	require.NoError(t, err)
	assert.Equal(t, "a", current.User.ID)
}

func TestCurrentPlayer_LateJoinerEntersRotation(t *testing.T) {
	t.Parallel()

	// c joins after a and b already played; once the rotation reaches the
	// end of the list, c gets a turn
	players := []Player{player("a"), player("b"), player("c")}
	history := []Round{round(player("a")), round(player("b"))}

	current, err := CurrentPlayer(players, history)
	require.NoError(t, err)
	assert.Equal(t, "c", current.User.ID)
}

func TestCurrentPlayer_EmptyPlayers(t *testing.T) {
	t.Parallel()

	_, err := CurrentPlayer(nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInconsistent)
}

func TestCurrentPlayer_LastPlayerMissing(t *testing.T) {
	t.Parallel()

	// Should never happen with append-only membership, but must not panic
	players := []Player{player("a"), player("b")}
	history := []Round{round(player("ghost"))}

	_, err := CurrentPlayer(players, history)
	assert.ErrorIs(t, err, apperrors.ErrInconsistent)
}
