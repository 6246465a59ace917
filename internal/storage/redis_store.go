package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shattle/shattle-server/internal/game/gamemap"
)

const (
	// Redis key 前缀
	gameKeyPrefix     = "game:"
	gameCodeKeyPrefix = "game:code:"
	userKeyPrefix     = "user:"
	mapKeyPrefix      = "map:"
	mapIndexKey       = "maps"
)

// GameData 游戏文档（用于 Redis 序列化）
type GameData struct {
	ID        string       `json:"id"`
	Code      string       `json:"code,omitempty"`
	Status    int          `json:"status"`
	MapID     string       `json:"map_id"`
	Players   []PlayerData `json:"players"`
	History   []RoundData  `json:"history"`
	CreatedAt int64        `json:"created_at"`
}

// PlayerData 玩家数据
type PlayerData struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	CharacterID   string `json:"character_id,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
}

// RoundData 回合数据
type RoundData struct {
	Player  PlayerData   `json:"player"`
	Actions []ActionData `json:"actions"`
}

// ActionData 行动数据
type ActionData struct {
	Type      string `json:"type"`
	To        int    `json:"to,omitempty"`
	Spell     string `json:"spell,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// UserData 用户数据
type UserData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 游戏存储 ---

// SaveGame 保存游戏文档，并维护邀请码索引
func (rs *RedisStore) SaveGame(ctx context.Context, data *GameData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化游戏数据失败: %w", err)
	}

	if err := rs.client.Set(ctx, gameKeyPrefix+data.ID, jsonData, 0).Err(); err != nil {
		return err
	}

	if data.Code != "" {
		return rs.client.Set(ctx, gameCodeKeyPrefix+data.Code, data.ID, 0).Err()
	}
	return nil
}

// LoadGame 加载游戏文档，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadGame(ctx context.Context, id string) (*GameData, error) {
	data, err := rs.client.Get(ctx, gameKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 游戏不存在
		}
		return nil, err
	}

	var gameData GameData
	if err := json.Unmarshal(data, &gameData); err != nil {
		return nil, fmt.Errorf("反序列化游戏数据失败: %w", err)
	}
	return &gameData, nil
}

// FindGameByCode 通过邀请码查找游戏，不存在时返回 (nil, nil)
func (rs *RedisStore) FindGameByCode(ctx context.Context, code string) (*GameData, error) {
	id, err := rs.client.Get(ctx, gameCodeKeyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return rs.LoadGame(ctx, id)
}

// DeleteGame 删除游戏文档及其邀请码索引
func (rs *RedisStore) DeleteGame(ctx context.Context, id, code string) error {
	keys := []string{gameKeyPrefix + id}
	if code != "" {
		keys = append(keys, gameCodeKeyPrefix+code)
	}
	return rs.client.Del(ctx, keys...).Err()
}

// ReleaseGameCode 释放邀请码索引（游戏结束后邀请码可复用）
func (rs *RedisStore) ReleaseGameCode(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return rs.client.Del(ctx, gameCodeKeyPrefix+code).Err()
}

// --- 用户存储 ---

// SaveUser 保存用户
func (rs *RedisStore) SaveUser(ctx context.Context, user *UserData) error {
	data := map[string]any{
		"id":   user.ID,
		"name": user.Name,
	}
	return rs.client.HSet(ctx, userKeyPrefix+user.ID, data).Err()
}

// LoadUser 加载用户，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadUser(ctx context.Context, id string) (*UserData, error) {
	data, err := rs.client.HGetAll(ctx, userKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &UserData{
		ID:   data["id"],
		Name: data["name"],
	}, nil
}

// --- 地图存储 ---

// SaveMap 保存地图定义
func (rs *RedisStore) SaveMap(ctx context.Context, m *gamemap.Map) error {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("序列化地图数据失败: %w", err)
	}

	pipe := rs.client.Pipeline()
	pipe.Set(ctx, mapKeyPrefix+m.ID, jsonData, 0)
	pipe.SAdd(ctx, mapIndexKey, m.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadMap 加载地图定义，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadMap(ctx context.Context, id string) (*gamemap.Map, error) {
	data, err := rs.client.Get(ctx, mapKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var m gamemap.Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("反序列化地图数据失败: %w", err)
	}
	return &m, nil
}

// RandomMap 随机返回一张地图（创建游戏时使用）
func (rs *RedisStore) RandomMap(ctx context.Context) (*gamemap.Map, error) {
	id, err := rs.client.SRandMember(ctx, mapIndexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 没有任何地图
		}
		return nil, err
	}
	return rs.LoadMap(ctx, id)
}
