package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeAuthFailed = 1002 // 令牌无效或用户不存在

	ErrCodeGameNotFound   = 2001
	ErrCodeUserNotFound   = 2002
	ErrCodePlayerNotFound = 2003
	ErrCodeNotInGame      = 2004 // 连接不在该游戏的房间中
	ErrCodeGameClosed     = 2005 // 游戏已开始，禁止中途加入
	ErrCodeGameFull       = 2006 // 玩家人数已达上限

	ErrCodeNotEnoughPlayers = 3001
	ErrCodeInvalidStatus    = 3002 // 当前状态不允许该操作
	ErrCodeNotYourTurn      = 3003
	ErrCodeNotAuthor        = 3004 // 仅创建者可执行

	ErrCodeCodeExhausted     = 5001 // 邀请码空间耗尽
	ErrCodePersistence       = 5002 // 持久化存储失败
	ErrCodeInconsistent      = 5003 // 会话状态损坏
	ErrCodeServerMaintenance = 5004 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "未知错误",
	ErrCodeInvalidMsg: "无效的消息格式",
	ErrCodeAuthFailed: "身份验证失败",

	ErrCodeGameNotFound:   "游戏不存在",
	ErrCodeUserNotFound:   "用户不存在",
	ErrCodePlayerNotFound: "您不是该游戏的玩家",
	ErrCodeNotInGame:      "您未加入该游戏",
	ErrCodeGameClosed:     "游戏已开始，无法加入",
	ErrCodeGameFull:       "游戏人数已满",

	ErrCodeNotEnoughPlayers: "玩家人数不足",
	ErrCodeInvalidStatus:    "当前游戏状态不允许该操作",
	ErrCodeNotYourTurn:      "还没轮到您",
	ErrCodeNotAuthor:        "只有创建者可以执行该操作",

	ErrCodeCodeExhausted:     "无法分配邀请码",
	ErrCodePersistence:       "存储服务暂时不可用",
	ErrCodeInconsistent:      "游戏状态异常，已被隔离",
	ErrCodeServerMaintenance: "服务器维护中",
}

// NewErrorMessage 按错误码表生成错误消息
func NewErrorMessage(code int) *Message {
	return NewErrorMessageWithText(code, ErrorMessages[code])
}

// NewErrorMessageWithText 生成带自定义描述的错误消息
func NewErrorMessageWithText(code int, text string) *Message {
	return MustNewMessage(MsgError, ErrorPayload{Code: code, Message: text})
}
