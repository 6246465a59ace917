package session

import (
	"sync"
	"time"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/game/gamemap"
)

// MaxPlayers 单局玩家人数上限
const MaxPlayers = 5

// Session 一局游戏的内存态
//
// 持久存储是数据的最终来源，Session 是它的直写缓存：
// 所有变更先应用到内存、写入存储成功后才允许广播。
// 复合变更（校验 + 修改 + 保存）必须经由 Registry 的带锁操作执行，
// 其他组件不得直接修改字段。
type Session struct {
	ID        string
	Code      string // 邀请码，活跃期间全局唯一
	Status    Status
	Map       *gamemap.Map // 创建时绑定，不可变
	Players   []Player     // 顺序即回合顺序，首位是创建者
	History   []Round      // 只追加，不原地修改
	CreatedAt time.Time

	quarantined bool // 状态损坏后被隔离，拒绝一切操作

	mu sync.Mutex
}

// Author 返回创建者（players 首位）
func (s *Session) Author() (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Players) == 0 {
		return Player{}, apperrors.ErrInconsistent
	}
	return s.Players[0], nil
}

// AddPlayer 添加玩家
// 已是成员时为无操作（幂等），人数达到上限时返回 ErrGameFull
func (s *Session) AddPlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.addPlayerLocked(p)
	return err
}

// AppendRound 追加一个回合，仅在 InProgress 状态下允许
func (s *Session) AppendRound(r Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendRoundLocked(r)
}

// SetStatus 变更状态，只允许单向前进
func (s *Session) SetStatus(status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setStatusLocked(status)
}

// GetStatus 读取当前状态
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status
}

// GetPlayers 返回玩家列表的副本
func (s *Session) GetPlayers() []Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]Player, len(s.Players))
	copy(players, s.Players)
	return players
}

// GetHistory 返回回合历史的副本
func (s *Session) GetHistory() []Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Round, len(s.History))
	copy(history, s.History)
	return history
}

// HasPlayer 检查用户是否已是玩家
func (s *Session) HasPlayer(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.findPlayerLocked(userID)
	return ok
}

// --- 带锁内部操作，调用方必须持有 s.mu ---

// addPlayerLocked 返回是否实际新增了玩家
func (s *Session) addPlayerLocked(p Player) (bool, error) {
	if _, ok := s.findPlayerLocked(p.User.ID); ok {
		return false, nil // 幂等：重复加入不是错误
	}
	if len(s.Players) >= MaxPlayers {
		return false, apperrors.ErrGameFull
	}
	s.Players = append(s.Players, p)
	return true, nil
}

func (s *Session) appendRoundLocked(r Round) error {
	if s.Status != StatusInProgress {
		return apperrors.ErrInvalidStatus
	}
	s.History = append(s.History, r)
	return nil
}

func (s *Session) setStatusLocked(status Status) error {
	if status < s.Status {
		return apperrors.ErrInvalidStatus
	}
	s.Status = status
	return nil
}

func (s *Session) findPlayerLocked(userID string) (Player, bool) {
	for _, p := range s.Players {
		if p.User.ID == userID {
			return p, true
		}
	}
	return Player{}, false
}
