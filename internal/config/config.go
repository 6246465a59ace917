// Package config 服务端配置加载
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 服务端完整配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig HTTP/WebSocket 服务配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"` // 同时在线连接上限
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 会话引擎行为配置
type GameConfig struct {
	// AllowOutOfTurn 允许成员乱序提交回合（兼容旧客户端）
	AllowOutOfTurn bool `yaml:"allow_out_of_turn"`
	// SeedOpeningRounds 开局时为每名玩家播种一个随机移动
	SeedOpeningRounds bool `yaml:"seed_opening_rounds"`
}

// AuthConfig 身份验证配置
type AuthConfig struct {
	TokenKey string `yaml:"token_key"` // JWT 签名密钥
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxConnections: 1000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Auth: AuthConfig{
			TokenKey: "shattle-dev-key",
		},
	}
}

// Load 从文件加载配置，缺失字段使用默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return cfg, nil
}

// Addr 返回服务监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
