package client

import (
	"time"

	"github.com/shattle/shattle-server/internal/protocol"
)

// --- 便捷方法 ---

// CreateGame 创建游戏
func (c *Client) CreateGame() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGameCreate, protocol.GameCreatePayload{
		AccessToken: c.AccessToken,
	}))
}

// JoinGame 通过邀请码加入游戏
func (c *Client) JoinGame(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGameJoin, protocol.GameJoinPayload{
		Code:        code,
		AccessToken: c.AccessToken,
	}))
}

// StartGame 开始游戏
func (c *Client) StartGame(userID, gameID string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		UserID: userID,
		GameID: gameID,
	}))
}

// SubmitActions 提交回合行动
func (c *Client) SubmitActions(userID, gameID string, actions []protocol.ActionInfo) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayerAction, protocol.PlayerActionPayload{
		UserID:  userID,
		GameID:  gameID,
		Actions: actions,
	}))
}

// FinishGame 结束游戏
func (c *Client) FinishGame(userID, gameID string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGameFinish, protocol.GameFinishPayload{
		UserID: userID,
		GameID: gameID,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
