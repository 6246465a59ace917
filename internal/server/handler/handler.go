// Package handler 处理客户端消息的解析、验证与分发
package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/auth"
	"github.com/shattle/shattle-server/internal/game/gamemap"
	"github.com/shattle/shattle-server/internal/game/session"
	"github.com/shattle/shattle-server/internal/protocol"
	"github.com/shattle/shattle-server/internal/types"
)

// 单条消息的处理超时
const handleTimeout = 5 * time.Second

// Deps 处理器的依赖集合
type Deps struct {
	Registry *session.Registry
	Rooms    types.RoomsInterface
	Auth     auth.Authenticator
	Maps     gamemap.Provider
}

// HandlerFunc 消息处理函数
type HandlerFunc func(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error

// Handler 消息分发器
type Handler struct {
	deps     Deps
	handlers map[protocol.MessageType]HandlerFunc
}

// NewHandler 创建消息分发器并注册所有处理函数
func NewHandler(deps Deps) *Handler {
	h := &Handler{deps: deps}
	h.handlers = map[protocol.MessageType]HandlerFunc{
		protocol.MsgPing:         h.handlePing,
		protocol.MsgGameCreate:   h.handleGameCreate,
		protocol.MsgGameJoin:     h.handleGameJoin,
		protocol.MsgGameStart:    h.handleGameStart,
		protocol.MsgPlayerAction: h.handlePlayerAction,
		protocol.MsgGameFinish:   h.handleGameFinish,
	}
	return h
}

// Handle 分发一条客户端消息
// 处理失败时错误只回发给出错的连接，不影响房间内其他成员
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	handlerFunc, ok := h.handlers[msg.Type]
	if !ok {
		log.Printf("⚠️ 未知消息类型: %s (连接 %s)", msg.Type, client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := handlerFunc(ctx, client, msg); err != nil {
		h.sendError(client, err)
	}
}

// sendError 将错误转换为协议错误消息回发给连接
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}

	log.Printf("❌ 处理消息失败 (连接 %s): %v", client.GetID(), err)
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
}
