//go:build !production

package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shattle/shattle-server/internal/storage"
)

// MockGameStore 游戏存储 mock
type MockGameStore struct {
	mock.Mock
}

func (m *MockGameStore) SaveGame(ctx context.Context, data *storage.GameData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockGameStore) LoadGame(ctx context.Context, id string) (*storage.GameData, error) {
	args := m.Called(ctx, id)
	if data := args.Get(0); data != nil {
		return data.(*storage.GameData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGameStore) FindGameByCode(ctx context.Context, code string) (*storage.GameData, error) {
	args := m.Called(ctx, code)
	if data := args.Get(0); data != nil {
		return data.(*storage.GameData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGameStore) ReleaseGameCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
