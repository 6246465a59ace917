package handler

import (
	"context"
	"time"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/protocol"
	"github.com/shattle/shattle-server/internal/types"
)

// handlePing 处理心跳，原样回传客户端时间戳
func (h *Handler) handlePing(_ context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "ping 消息格式错误")
	}

	pong, err := protocol.NewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	client.SendMessage(pong)
	return nil
}
