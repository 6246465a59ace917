package session

import (
	"github.com/shattle/shattle-server/internal/apperrors"
)

// CurrentPlayer 计算当前回合轮到的玩家
//
// 纯函数，每次读取都重新计算而不是缓存结果：
// players 在对局之间可能增长（后加入者排在末尾，下一圈进入轮转），
// 缓存会产生过期的回合归属。
//
// 规则: history 为空时轮到 players 首位；否则找到最后一个回合的
// 玩家在 players 中的位置，返回它的下一位，末位之后回绕到首位。
// 最后行动的玩家已不在 players 中属于不变量被破坏（成员只增不减），
// 返回 ErrInconsistent 而不是越界。
func CurrentPlayer(players []Player, history []Round) (Player, error) {
	if len(players) == 0 {
		return Player{}, apperrors.ErrInconsistent
	}
	if len(history) == 0 {
		return players[0], nil
	}

	last := history[len(history)-1].Player
	for i, p := range players {
		if p.User.ID == last.User.ID {
			return players[(i+1)%len(players)], nil
		}
	}
	return Player{}, apperrors.ErrInconsistent
}

// CurrentPlayer 计算本局当前轮到的玩家
func (s *Session) CurrentPlayer() (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CurrentPlayer(s.Players, s.History)
}
