// Package convert 负责协议 DTO 与领域类型之间的转换
//
// 客户端输入在这里做边界校验: 非法的行动变体在进入会话引擎之前
// 就被拒绝，引擎内部只处理结构上合法的数据。
package convert

import (
	"fmt"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/game/session"
	"github.com/shattle/shattle-server/internal/protocol"
)

// ActionsFromInfo 将客户端提交的行动列表转换为领域类型并校验
func ActionsFromInfo(infos []protocol.ActionInfo) ([]session.Action, error) {
	if len(infos) == 0 {
		return nil, apperrors.New(protocol.ErrCodeInvalidMsg, "回合至少包含一个行动")
	}

	actions := make([]session.Action, 0, len(infos))
	for i, info := range infos {
		action, err := actionFromInfo(info)
		if err != nil {
			return nil, apperrors.New(protocol.ErrCodeInvalidMsg,
				fmt.Sprintf("第 %d 个行动非法: %v", i+1, err))
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func actionFromInfo(info protocol.ActionInfo) (session.Action, error) {
	switch session.ActionType(info.Type) {
	case session.ActionMove:
		if info.To < 0 {
			return session.Action{}, fmt.Errorf("move 目标格子 %d 非法", info.To)
		}
		return session.Action{Type: session.ActionMove, To: info.To}, nil

	case session.ActionSpell:
		spell := session.SpellKind(info.Spell)
		switch spell {
		case session.SpellFireball, session.SpellHeal, session.SpellShield:
		default:
			return session.Action{}, fmt.Errorf("未知法术 %q", info.Spell)
		}
		direction := session.Direction(info.Direction)
		switch direction {
		case session.DirectionSelf, session.DirectionNorth, session.DirectionEast,
			session.DirectionSouth, session.DirectionWest:
		default:
			return session.Action{}, fmt.Errorf("未知方向 %q", info.Direction)
		}
		return session.Action{Type: session.ActionSpell, Spell: spell, Direction: direction}, nil

	default:
		return session.Action{}, fmt.Errorf("未知行动类型 %q", info.Type)
	}
}

// PlayerToInfo 将玩家转换为传输对象
func PlayerToInfo(p session.Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		UserID:        p.User.ID,
		UserName:      p.User.Name,
		CharacterID:   p.Character.ID,
		CharacterName: p.Character.Name,
	}
}

// RoundToInfo 将回合转换为传输对象（广播用）
func RoundToInfo(r session.Round) protocol.RoundInfo {
	actions := make([]protocol.ActionInfo, 0, len(r.Actions))
	for _, a := range r.Actions {
		actions = append(actions, protocol.ActionInfo{
			Type:      string(a.Type),
			To:        a.To,
			Spell:     string(a.Spell),
			Direction: string(a.Direction),
		})
	}
	return protocol.RoundInfo{
		Player:  PlayerToInfo(r.Player),
		Actions: actions,
	}
}
