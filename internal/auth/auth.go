// Package auth 负责连接级消息的身份验证
//
// 客户端在 game.create / game.join 请求中携带 access_token（HS256 JWT），
// 服务端验证签名后按 user_id 声明加载用户档案。
package auth

import (
	"context"
	"log"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/game/session"
	"github.com/shattle/shattle-server/internal/storage"
)

// UserStore 用户档案存储
type UserStore interface {
	LoadUser(ctx context.Context, id string) (*storage.UserData, error)
}

// Authenticator 将 access_token 解析为用户
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (session.User, error)
}

// JWTAuthenticator 基于 HS256 JWT 的验证器
type JWTAuthenticator struct {
	key   []byte
	users UserStore
}

// NewJWTAuthenticator 创建 JWT 验证器
func NewJWTAuthenticator(key string, users UserStore) *JWTAuthenticator {
	return &JWTAuthenticator{key: []byte(key), users: users}
}

// Authenticate 验证 token 签名并加载用户档案
func (a *JWTAuthenticator) Authenticate(ctx context.Context, accessToken string) (session.User, error) {
	if accessToken == "" {
		return session.User{}, apperrors.ErrAuthFailed
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.key, nil
	})
	if err != nil || !token.Valid {
		log.Printf("🔒 token 验证失败: %v", err)
		return session.User{}, apperrors.ErrAuthFailed
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return session.User{}, apperrors.ErrAuthFailed
	}

	data, err := a.users.LoadUser(ctx, userID)
	if err != nil {
		log.Printf("💾 加载用户 %s 失败: %v", userID, err)
		return session.User{}, apperrors.ErrPersistence
	}
	if data == nil {
		return session.User{}, apperrors.ErrUserNotFound
	}

	return session.User{ID: data.ID, Name: data.Name}, nil
}

// IssueToken 为用户签发 access_token（本地客户端与测试用）
func IssueToken(key, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	return token.SignedString([]byte(key))
}
