package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/storage"
)

const testKey = "test-secret"

func newTestAuthenticator(t *testing.T) (*JWTAuthenticator, *storage.RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewJWTAuthenticator(testKey, store), store
}

func TestJWTAuthenticator_Authenticate(t *testing.T) {
	t.Parallel()
	a, store := newTestAuthenticator(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &storage.UserData{ID: "u1", Name: "Alice"}))

	token, err := IssueToken(testKey, "u1")
	require.NoError(t, err)

	user, err := a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestJWTAuthenticator_EmptyToken(t *testing.T) {
	t.Parallel()
	a, _ := newTestAuthenticator(t)

	_, err := a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrAuthFailed)
}

func TestJWTAuthenticator_WrongKey(t *testing.T) {
	t.Parallel()
	a, _ := newTestAuthenticator(t)

	token, err := IssueToken("other-secret", "u1")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrAuthFailed)
}

func TestJWTAuthenticator_MissingClaim(t *testing.T) {
	t.Parallel()
	a, _ := newTestAuthenticator(t)

	// Valid signature but no user_id claim
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	token, err := raw.SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrAuthFailed)
}

func TestJWTAuthenticator_UnknownUser(t *testing.T) {
	t.Parallel()
	a, _ := newTestAuthenticator(t)

	token, err := IssueToken(testKey, "nobody")
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
