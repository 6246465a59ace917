package handler

import (
	"context"
	"log"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/game/session"
	"github.com/shattle/shattle-server/internal/protocol"
	"github.com/shattle/shattle-server/internal/protocol/convert"
	"github.com/shattle/shattle-server/internal/types"
)

// handleGameCreate 创建游戏
// 验证 token → 随机选图 → 创建会话 → 将连接加入房间
// 成功响应只发给创建者
func (h *Handler) handleGameCreate(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.GameCreatePayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "game.create 消息格式错误")
	}

	user, err := h.deps.Auth.Authenticate(ctx, payload.AccessToken)
	if err != nil {
		return err
	}

	m, err := h.deps.Maps.RandomMap(ctx)
	if err != nil {
		return apperrors.ErrPersistence
	}
	if m == nil {
		log.Printf("🚨 地图库为空，无法创建游戏")
		return apperrors.New(protocol.ErrCodeServerMaintenance, "暂时无法创建游戏")
	}

	s, err := h.deps.Registry.Create(ctx, m, session.Player{User: user})
	if err != nil {
		return err
	}

	client.BindUser(user.ID)
	h.deps.Rooms.Join(s.ID, client)

	created, err := protocol.NewMessage(protocol.MsgGameCreate, protocol.GameCreatedPayload{
		GameID: s.ID,
		Code:   s.Code,
		MapID:  m.ID,
	})
	if err != nil {
		return err
	}
	client.SendMessage(created)
	return nil
}

// handleGameJoin 通过邀请码加入游戏
// 新成员加入时广播给房间内所有人，重复加入（断线重连）只响应本人
func (h *Handler) handleGameJoin(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.GameJoinPayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "game.join 消息格式错误")
	}

	user, err := h.deps.Auth.Authenticate(ctx, payload.AccessToken)
	if err != nil {
		return err
	}

	s, err := h.deps.Registry.FindByCode(ctx, payload.Code)
	if err != nil {
		return err
	}

	joined := protocol.MustNewMessage(protocol.MsgGameJoin, protocol.GameJoinedPayload{
		GameID: s.ID,
		UserID: user.ID,
	})

	// 广播在会话锁内入队，与落盘提交同序；本人此刻还不在房间里，单独发一份
	added, err := h.deps.Registry.Join(ctx, s, session.Player{User: user}, func() {
		h.deps.Rooms.Publish(s.ID, joined)
		client.SendMessage(joined)
	})
	if err != nil {
		return err
	}

	client.BindUser(user.ID)
	h.deps.Rooms.Join(s.ID, client)

	if added {
		log.Printf("👤 玩家 %s 加入游戏 %s", user.Name, s.ID)
	} else {
		// 断线重连: 名册不变，只需让本人回到房间
		client.SendMessage(joined)
	}
	return nil
}

// handleGameStart 开始游戏，结果广播给房间内所有人
func (h *Handler) handleGameStart(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.GameStartPayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "game.start 消息格式错误")
	}
	if err := verifyIdentity(client, payload.UserID); err != nil {
		return err
	}

	s, err := h.deps.Registry.FindByID(ctx, payload.GameID)
	if err != nil {
		return err
	}
	if !s.HasPlayer(payload.UserID) {
		return apperrors.ErrNotInGame
	}

	started := protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartedPayload{
		GameID: s.ID,
	})
	return h.deps.Registry.Start(ctx, s, func() {
		h.deps.Rooms.Publish(s.ID, started)
	})
}

// handlePlayerAction 提交回合行动
// 行动在进入引擎前做边界校验，提交成功后按落盘顺序广播
func (h *Handler) handlePlayerAction(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.PlayerActionPayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "player.action 消息格式错误")
	}
	if err := verifyIdentity(client, payload.UserID); err != nil {
		return err
	}

	actions, err := convert.ActionsFromInfo(payload.Actions)
	if err != nil {
		return err
	}

	s, err := h.deps.Registry.FindByID(ctx, payload.GameID)
	if err != nil {
		return err
	}

	// 广播在会话锁内入队: 同一会话的回合广播顺序与提交顺序一致
	_, err = h.deps.Registry.SubmitRound(ctx, s, payload.UserID, actions, func(round session.Round) {
		h.deps.Rooms.Publish(s.ID, protocol.MustNewMessage(protocol.MsgPlayerAction, protocol.PlayerRoundPayload{
			History: convert.RoundToInfo(round),
		}))
	})
	return err
}

// handleGameFinish 结束游戏（仅创建者），结果广播给房间内所有人
func (h *Handler) handleGameFinish(ctx context.Context, client types.ClientInterface, msg *protocol.Message) error {
	payload, err := protocol.ParsePayload[protocol.GameFinishPayload](msg)
	if err != nil {
		return apperrors.New(protocol.ErrCodeInvalidMsg, "game.finish 消息格式错误")
	}
	if err := verifyIdentity(client, payload.UserID); err != nil {
		return err
	}

	s, err := h.deps.Registry.FindByID(ctx, payload.GameID)
	if err != nil {
		return err
	}

	finished := protocol.MustNewMessage(protocol.MsgGameFinish, protocol.GameFinishedPayload{
		GameID: s.ID,
	})
	return h.deps.Registry.Finish(ctx, s, payload.UserID, func() {
		h.deps.Rooms.Publish(s.ID, finished)
	})
}

// verifyIdentity 校验 payload 声称的用户与连接绑定的已验证用户一致
// 未经 game.create / game.join 验证的连接不能执行游戏内操作
func verifyIdentity(client types.ClientInterface, userID string) error {
	bound := client.GetUserID()
	if bound == "" || bound != userID {
		return apperrors.ErrAuthFailed
	}
	return nil
}
