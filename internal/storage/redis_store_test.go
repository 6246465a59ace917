package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/game/gamemap"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteGame(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	gameData := &GameData{
		ID:     "g1",
		Code:   "123456",
		Status: 0,
		MapID:  "m1",
		Players: []PlayerData{
			{UserID: "u1", UserName: "Alice"},
		},
		History:   []RoundData{},
		CreatedAt: time.Now().Unix(),
	}

	// Save
	err := store.SaveGame(ctx, gameData)
	require.NoError(t, err)

	// Load by id
	loaded, err := store.LoadGame(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gameData.Code, loaded.Code)
	assert.Equal(t, gameData.MapID, loaded.MapID)
	require.Len(t, loaded.Players, 1)
	assert.Equal(t, "Alice", loaded.Players[0].UserName)

	// Find by code
	byCode, err := store.FindGameByCode(ctx, "123456")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, "g1", byCode.ID)

	// Delete
	err = store.DeleteGame(ctx, "g1", "123456")
	require.NoError(t, err)

	loaded, err = store.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	byCode, err = store.FindGameByCode(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, byCode)
}

func TestRedisStore_LoadGame_NotFound(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	loaded, err := store.LoadGame(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveGame_History(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	gameData := &GameData{
		ID:     "g2",
		Code:   "654321",
		Status: 1,
		History: []RoundData{
			{
				Player:  PlayerData{UserID: "u1", UserName: "Alice"},
				Actions: []ActionData{{Type: "move", To: 7}},
			},
			{
				Player:  PlayerData{UserID: "u2", UserName: "Bob"},
				Actions: []ActionData{{Type: "spell", Spell: "fireball", Direction: "north"}},
			},
		},
	}

	require.NoError(t, store.SaveGame(ctx, gameData))

	loaded, err := store.LoadGame(ctx, "g2")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// History order is preserved
	require.Len(t, loaded.History, 2)
	assert.Equal(t, "u1", loaded.History[0].Player.UserID)
	assert.Equal(t, 7, loaded.History[0].Actions[0].To)
	assert.Equal(t, "fireball", loaded.History[1].Actions[0].Spell)
}

func TestRedisStore_ReleaseGameCode(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, &GameData{ID: "g3", Code: "111111"}))
	require.NoError(t, store.ReleaseGameCode(ctx, "111111"))

	// Code index released, game document remains
	byCode, err := store.FindGameByCode(ctx, "111111")
	require.NoError(t, err)
	assert.Nil(t, byCode)

	loaded, err := store.LoadGame(ctx, "g3")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}

func TestRedisStore_SaveLoadUser(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	err := store.SaveUser(ctx, &UserData{ID: "u1", Name: "Alice"})
	require.NoError(t, err)

	user, err := store.LoadUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.Name)

	// Missing user
	user, err = store.LoadUser(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRedisStore_Maps(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	m := &gamemap.Map{
		ID:         "m1",
		Name:       "Plains",
		MaxPlayers: 5,
		Config:     gamemap.Config{Width: 10, Height: 10, TileWidth: 32, TileHeight: 32},
	}
	m.MapTiles = gamemap.DeriveTileGrid(m.Config)

	require.NoError(t, store.SaveMap(ctx, m))

	loaded, err := store.LoadMap(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Plains", loaded.Name)
	assert.Len(t, loaded.MapTiles, 100)

	// RandomMap with a single map always returns it
	random, err := store.RandomMap(ctx)
	require.NoError(t, err)
	require.NotNil(t, random)
	assert.Equal(t, "m1", random.ID)
}

func TestRedisStore_RandomMap_Empty(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	m, err := store.RandomMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, m)
}
