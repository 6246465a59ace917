package apperrors

import (
	"github.com/shattle/shattle-server/internal/protocol"
)

// GameError 会话引擎错误（注册表和处理器共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// New 创建带自定义描述的错误
func New(code int, message string) *GameError {
	return &GameError{Code: code, Message: message}
}

// 预定义错误
var (
	ErrAuthFailed       = &GameError{Code: protocol.ErrCodeAuthFailed, Message: "身份验证失败"}
	ErrGameNotFound     = &GameError{Code: protocol.ErrCodeGameNotFound, Message: "游戏不存在"}
	ErrUserNotFound     = &GameError{Code: protocol.ErrCodeUserNotFound, Message: "用户不存在"}
	ErrPlayerNotFound   = &GameError{Code: protocol.ErrCodePlayerNotFound, Message: "您不是该游戏的玩家"}
	ErrNotInGame        = &GameError{Code: protocol.ErrCodeNotInGame, Message: "您未加入该游戏"}
	ErrGameClosed       = &GameError{Code: protocol.ErrCodeGameClosed, Message: "游戏已开始，无法加入"}
	ErrGameFull         = &GameError{Code: protocol.ErrCodeGameFull, Message: "游戏人数已满"}
	ErrNotEnoughPlayers = &GameError{Code: protocol.ErrCodeNotEnoughPlayers, Message: "至少需要 2 名玩家"}
	ErrInvalidStatus    = &GameError{Code: protocol.ErrCodeInvalidStatus, Message: "当前游戏状态不允许该操作"}
	ErrNotYourTurn      = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrNotAuthor        = &GameError{Code: protocol.ErrCodeNotAuthor, Message: "只有创建者可以执行该操作"}
	ErrCodeExhausted    = &GameError{Code: protocol.ErrCodeCodeExhausted, Message: "无法分配邀请码"}
	ErrPersistence      = &GameError{Code: protocol.ErrCodePersistence, Message: "存储服务暂时不可用"}
	ErrInconsistent     = &GameError{Code: protocol.ErrCodeInconsistent, Message: "游戏状态异常，已被隔离"}
)
