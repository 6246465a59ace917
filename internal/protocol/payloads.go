package protocol

// --- 数据传输对象 ---

// PlayerInfo 玩家信息（用户 + 所选角色）
type PlayerInfo struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	CharacterID   string `json:"character_id,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
}

// ActionInfo 回合行动，type 为 move 或 spell 的带标签变体
type ActionInfo struct {
	Type string `json:"type"` // move / spell

	// move 字段
	To int `json:"to,omitempty"` // 目标格子 ID

	// spell 字段
	Spell     string `json:"spell,omitempty"`
	Direction string `json:"direction,omitempty"` // self/north/east/south/west
}

// RoundInfo 一名玩家完成的一个回合
type RoundInfo struct {
	Player  PlayerInfo   `json:"player"`
	Actions []ActionInfo `json:"actions"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// GameCreatePayload 创建游戏请求
type GameCreatePayload struct {
	AccessToken string `json:"access_token"`
}

// GameJoinPayload 加入游戏请求
type GameJoinPayload struct {
	Code        string `json:"code"` // 邀请码
	AccessToken string `json:"access_token"`
}

// GameStartPayload 开始游戏请求
type GameStartPayload struct {
	UserID string `json:"user_id"`
	GameID string `json:"game_id"`
}

// PlayerActionPayload 提交回合请求
type PlayerActionPayload struct {
	UserID  string       `json:"user_id"`
	GameID  string       `json:"game_id"`
	Actions []ActionInfo `json:"actions"`
}

// GameFinishPayload 结束游戏请求
type GameFinishPayload struct {
	UserID string `json:"user_id"`
	GameID string `json:"game_id"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ConnID string `json:"conn_id"` // 连接唯一 ID
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// GameCreatedPayload 创建游戏成功响应（仅发给创建者）
type GameCreatedPayload struct {
	GameID string `json:"game_id"`
	Code   string `json:"code"`
	MapID  string `json:"map_id"`
}

// GameJoinedPayload 加入成功，广播给房间内所有成员
type GameJoinedPayload struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

// GameStartedPayload 游戏开始广播
type GameStartedPayload struct {
	GameID string `json:"game_id"`
}

// PlayerRoundPayload 回合提交成功广播
type PlayerRoundPayload struct {
	History RoundInfo `json:"history"`
}

// GameFinishedPayload 游戏结束广播
type GameFinishedPayload struct {
	GameID string `json:"game_id"`
}

// ErrorPayload 错误响应，仅发给出错的连接
type ErrorPayload struct {
	Code    int    `json:"error"`
	Message string `json:"description,omitempty"`
}
