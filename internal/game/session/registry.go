package session

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shattle/shattle-server/internal/apperrors"
	"github.com/shattle/shattle-server/internal/game/gamemap"
	"github.com/shattle/shattle-server/internal/storage"
)

const (
	codeLength = 6            // 邀请码长度
	codeChars  = "0123456789" // 邀请码字符集

	// 拒绝采样的尝试上限，超过即认为码空间耗尽
	maxCodeAttempts = 1000
)

// Store 游戏文档的持久存储（最终数据来源）
type Store interface {
	SaveGame(ctx context.Context, data *storage.GameData) error
	LoadGame(ctx context.Context, id string) (*storage.GameData, error)
	FindGameByCode(ctx context.Context, code string) (*storage.GameData, error)
	ReleaseGameCode(ctx context.Context, code string) error
}

// Policies 引擎行为策略（见配置 game 段）
type Policies struct {
	// AllowOutOfTurn 允许任意成员乱序提交回合（旧版行为）
	// 默认 false: 服务端强制回合顺序
	AllowOutOfTurn bool

	// SeedOpeningRounds 开始游戏时为每名玩家播种一个随机移动回合
	// 默认 false: 开局时 history 为空
	SeedOpeningRounds bool
}

// Registry 进程级活跃会话注册表
//
// Registry 独占 id/邀请码 → 活跃 Session 的映射，
// 并持有持久存储句柄，所有会话状态变更（加入/开始/提交回合/结束）
// 都经由它的带锁操作: 同一会话的变更串行执行，先落盘后才允许广播，
// 不同会话之间完全并行。
type Registry struct {
	store    Store
	maps     gamemap.Provider
	policies Policies

	sessions    map[string]*Session // id -> 会话
	codes       map[string]string   // 邀请码 -> id（仅未结束的会话）
	quarantined map[string]struct{} // 被隔离的会话 id
	mu          sync.RWMutex
}

// NewRegistry 创建会话注册表
func NewRegistry(store Store, maps gamemap.Provider, policies Policies) *Registry {
	return &Registry{
		store:       store,
		maps:        maps,
		policies:    policies,
		sessions:    make(map[string]*Session),
		codes:       make(map[string]string),
		quarantined: make(map[string]struct{}),
	}
}

// Create 创建新游戏并直写持久存储
//
// 邀请码对所有未结束的活跃游戏唯一。持久存储是最终数据来源，
// 活跃游戏可能只存在于存储中（重启后尚未重建内存态），
// 所以采样要同时检查注册表和存储的邀请码索引。
func (r *Registry) Create(ctx context.Context, m *gamemap.Map, creator Player) (*Session, error) {
	s := &Session{
		ID:        uuid.New().String(),
		Status:    StatusWaiting,
		Map:       m,
		Players:   []Player{creator},
		CreatedAt: time.Now(),
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode()

		r.mu.RLock()
		_, taken := r.codes[code]
		r.mu.RUnlock()
		if taken {
			continue
		}

		data, err := r.store.FindGameByCode(ctx, code)
		if err != nil {
			log.Printf("💾 检查邀请码 %s 占用失败: %v", code, err)
			return nil, apperrors.ErrPersistence
		}
		if data != nil {
			continue
		}

		r.mu.Lock()
		if _, raced := r.codes[code]; raced {
			// 并发创建抢先占用了该码，重新采样
			r.mu.Unlock()
			continue
		}
		s.Code = code
		r.sessions[s.ID] = s
		r.codes[code] = s.ID
		r.mu.Unlock()

		if err := r.store.SaveGame(ctx, s.ToGameData()); err != nil {
			r.Remove(s.ID)
			log.Printf("💾 保存新游戏 %s 失败: %v", s.ID, err)
			return nil, apperrors.ErrPersistence
		}

		log.Printf("🎲 游戏 %s 已创建，邀请码 %s，创建者 %s", s.ID, code, creator.User.Name)
		return s, nil
	}

	return nil, apperrors.ErrCodeExhausted
}

// FindByCode 通过邀请码查找会话
// 注册表未命中时回退到持久存储并重建内存态（断线重连场景）
func (r *Registry) FindByCode(ctx context.Context, code string) (*Session, error) {
	r.mu.RLock()
	id, ok := r.codes[code]
	s := r.sessions[id]
	r.mu.RUnlock()
	if ok && s != nil {
		return s, nil
	}

	data, err := r.store.FindGameByCode(ctx, code)
	if err != nil {
		log.Printf("💾 查找游戏（邀请码 %s）失败: %v", code, err)
		return nil, apperrors.ErrPersistence
	}
	if data == nil {
		return nil, apperrors.ErrGameNotFound
	}
	return r.rehydrate(ctx, data)
}

// FindByID 通过 id 查找会话，未命中时回退到持久存储
func (r *Registry) FindByID(ctx context.Context, id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	_, bad := r.quarantined[id]
	r.mu.RUnlock()
	if bad {
		return nil, apperrors.ErrInconsistent
	}
	if ok {
		return s, nil
	}

	data, err := r.store.LoadGame(ctx, id)
	if err != nil {
		log.Printf("💾 加载游戏 %s 失败: %v", id, err)
		return nil, apperrors.ErrPersistence
	}
	if data == nil {
		return nil, apperrors.ErrGameNotFound
	}
	return r.rehydrate(ctx, data)
}

// Remove 从注册表移除会话（持久数据不受影响）
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		delete(r.codes, s.Code)
		delete(r.sessions, id)
	}
}

// Count 返回注册表中的活跃会话数
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// --- 带守护的状态迁移 ---
//
// 每个迁移接受一个可选的 publish 回调，在落盘成功后、会话锁释放前调用。
// 同一会话的迁移串行执行，所以回调中的广播入队顺序与提交顺序一致。
// 回调内只允许非阻塞操作（向带缓冲的发送通道入队）。

// Join 将玩家加入游戏
// 返回是否实际新增了成员: 重复加入是幂等的无操作，不触发落盘也不广播
func (r *Registry) Join(ctx context.Context, s *Session, p Player, publish func()) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quarantined {
		return false, apperrors.ErrInconsistent
	}
	if _, ok := s.findPlayerLocked(p.User.ID); ok {
		return false, nil
	}
	// 已开局的游戏对新成员关闭
	if s.Status != StatusWaiting {
		return false, apperrors.ErrGameClosed
	}
	if _, err := s.addPlayerLocked(p); err != nil {
		return false, err
	}

	if err := r.store.SaveGame(ctx, s.toGameDataLocked()); err != nil {
		s.Players = s.Players[:len(s.Players)-1]
		log.Printf("💾 保存游戏 %s 失败（加入玩家 %s 已回滚）: %v", s.ID, p.User.ID, err)
		return false, apperrors.ErrPersistence
	}
	if publish != nil {
		publish()
	}
	return true, nil
}

// Start 开始游戏: Waiting → InProgress
// 按策略可为每名玩家播种一个随机移动的开局回合
func (r *Registry) Start(ctx context.Context, s *Session, publish func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quarantined {
		return apperrors.ErrInconsistent
	}
	if s.Status != StatusWaiting {
		return apperrors.ErrInvalidStatus
	}
	if len(s.Players) < 2 {
		return apperrors.ErrNotEnoughPlayers
	}

	prevHistory := len(s.History)
	if r.policies.SeedOpeningRounds && s.Map != nil && len(s.Map.MapTiles) > 0 {
		for _, p := range s.Players {
			s.History = append(s.History, Round{
				Player: p,
				Actions: []Action{{
					Type: ActionMove,
					To:   s.Map.MapTiles[rand.IntN(len(s.Map.MapTiles))].ID,
				}},
			})
		}
	}
	s.Status = StatusInProgress

	if err := r.store.SaveGame(ctx, s.toGameDataLocked()); err != nil {
		s.History = s.History[:prevHistory]
		s.Status = StatusWaiting
		log.Printf("💾 保存游戏 %s 失败（开始已回滚）: %v", s.ID, err)
		return apperrors.ErrPersistence
	}
	if publish != nil {
		publish()
	}

	log.Printf("🚀 游戏 %s 已开始，%d 名玩家", s.ID, len(s.Players))
	return nil
}

// SubmitRound 提交一名玩家的回合
func (r *Registry) SubmitRound(ctx context.Context, s *Session, userID string, actions []Action, publish func(Round)) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quarantined {
		return Round{}, apperrors.ErrInconsistent
	}
	if s.Status != StatusInProgress {
		return Round{}, apperrors.ErrInvalidStatus
	}

	player, ok := s.findPlayerLocked(userID)
	if !ok {
		return Round{}, apperrors.ErrPlayerNotFound
	}

	if !r.policies.AllowOutOfTurn {
		current, err := CurrentPlayer(s.Players, s.History)
		if err != nil {
			// 回合归属无法解析说明会话已损坏，隔离并拒绝后续操作
			r.quarantineLocked(s)
			return Round{}, apperrors.ErrInconsistent
		}
		if current.User.ID != userID {
			return Round{}, apperrors.ErrNotYourTurn
		}
	}

	round := Round{Player: player, Actions: actions}
	s.History = append(s.History, round)

	if err := r.store.SaveGame(ctx, s.toGameDataLocked()); err != nil {
		s.History = s.History[:len(s.History)-1]
		log.Printf("💾 保存游戏 %s 失败（回合已回滚）: %v", s.ID, err)
		return Round{}, apperrors.ErrPersistence
	}
	if publish != nil {
		publish(round)
	}
	return round, nil
}

// Finish 结束游戏，仅创建者可执行
// 结束后邀请码被释放，会话从注册表移除
func (r *Registry) Finish(ctx context.Context, s *Session, userID string, publish func()) error {
	s.mu.Lock()

	if s.quarantined {
		s.mu.Unlock()
		return apperrors.ErrInconsistent
	}
	if len(s.Players) == 0 || s.Players[0].User.ID != userID {
		s.mu.Unlock()
		return apperrors.ErrNotAuthor
	}
	if s.Status == StatusFinished {
		s.mu.Unlock()
		return apperrors.ErrInvalidStatus
	}

	prev := s.Status
	s.Status = StatusFinished

	if err := r.store.SaveGame(ctx, s.toGameDataLocked()); err != nil {
		s.Status = prev
		s.mu.Unlock()
		log.Printf("💾 保存游戏 %s 失败（结束已回滚）: %v", s.ID, err)
		return apperrors.ErrPersistence
	}
	if publish != nil {
		publish()
	}
	code := s.Code
	s.mu.Unlock()

	// 结束后邀请码可被新游戏复用
	if err := r.store.ReleaseGameCode(ctx, code); err != nil {
		log.Printf("⚠️ 释放邀请码 %s 失败: %v", code, err)
	}
	r.Remove(s.ID)

	log.Printf("🏁 游戏 %s 已结束", s.ID)
	return nil
}

// --- 内部方法 ---

// randomCode 生成一个候选邀请码
func randomCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeChars[rand.IntN(len(codeChars))]
	}
	return string(code)
}

// rehydrate 从游戏文档重建会话并放回注册表
func (r *Registry) rehydrate(ctx context.Context, data *storage.GameData) (*Session, error) {
	var m *gamemap.Map
	if data.MapID != "" {
		var err error
		m, err = r.maps.LoadMap(ctx, data.MapID)
		if err != nil {
			log.Printf("💾 加载游戏 %s 的地图 %s 失败: %v", data.ID, data.MapID, err)
			return nil, apperrors.ErrPersistence
		}
		if m == nil {
			log.Printf("🚨 游戏 %s 引用了不存在的地图 %s", data.ID, data.MapID)
			return nil, apperrors.ErrInconsistent
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, bad := r.quarantined[data.ID]; bad {
		return nil, apperrors.ErrInconsistent
	}
	// 并发重建时保留先到者
	if existing, ok := r.sessions[data.ID]; ok {
		return existing, nil
	}

	s := sessionFromData(data, m)
	r.sessions[s.ID] = s
	if s.Status != StatusFinished && s.Code != "" {
		r.codes[s.Code] = s.ID
	}

	log.Printf("📦 游戏 %s 已从持久存储恢复", s.ID)
	return s, nil
}

// quarantineLocked 隔离损坏的会话，调用方必须持有 s.mu
func (r *Registry) quarantineLocked(s *Session) {
	s.quarantined = true

	r.mu.Lock()
	r.quarantined[s.ID] = struct{}{}
	delete(r.codes, s.Code)
	delete(r.sessions, s.ID)
	r.mu.Unlock()

	log.Printf("🚨 游戏 %s 状态损坏，已隔离", s.ID)
}
