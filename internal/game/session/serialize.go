package session

import (
	"time"

	"github.com/shattle/shattle-server/internal/game/gamemap"
	"github.com/shattle/shattle-server/internal/storage"
)

// ToGameData 将 Session 转换为可序列化的游戏文档
func (s *Session) ToGameData() *storage.GameData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toGameDataLocked()
}

func (s *Session) toGameDataLocked() *storage.GameData {
	data := &storage.GameData{
		ID:        s.ID,
		Code:      s.Code,
		Status:    int(s.Status),
		Players:   make([]storage.PlayerData, 0, len(s.Players)),
		History:   make([]storage.RoundData, 0, len(s.History)),
		CreatedAt: s.CreatedAt.Unix(),
	}
	if s.Map != nil {
		data.MapID = s.Map.ID
	}

	for _, p := range s.Players {
		data.Players = append(data.Players, playerToData(p))
	}
	for _, r := range s.History {
		actions := make([]storage.ActionData, 0, len(r.Actions))
		for _, a := range r.Actions {
			actions = append(actions, storage.ActionData{
				Type:      string(a.Type),
				To:        a.To,
				Spell:     string(a.Spell),
				Direction: string(a.Direction),
			})
		}
		data.History = append(data.History, storage.RoundData{
			Player:  playerToData(r.Player),
			Actions: actions,
		})
	}
	return data
}

// sessionFromData 从游戏文档重建 Session（重连时从持久存储恢复）
func sessionFromData(data *storage.GameData, m *gamemap.Map) *Session {
	s := &Session{
		ID:        data.ID,
		Code:      data.Code,
		Status:    Status(data.Status),
		Map:       m,
		Players:   make([]Player, 0, len(data.Players)),
		History:   make([]Round, 0, len(data.History)),
		CreatedAt: time.Unix(data.CreatedAt, 0),
	}

	for _, p := range data.Players {
		s.Players = append(s.Players, playerFromData(p))
	}
	for _, r := range data.History {
		actions := make([]Action, 0, len(r.Actions))
		for _, a := range r.Actions {
			actions = append(actions, Action{
				Type:      ActionType(a.Type),
				To:        a.To,
				Spell:     SpellKind(a.Spell),
				Direction: Direction(a.Direction),
			})
		}
		s.History = append(s.History, Round{
			Player:  playerFromData(r.Player),
			Actions: actions,
		})
	}
	return s
}

func playerToData(p Player) storage.PlayerData {
	return storage.PlayerData{
		UserID:        p.User.ID,
		UserName:      p.User.Name,
		CharacterID:   p.Character.ID,
		CharacterName: p.Character.Name,
	}
}

func playerFromData(data storage.PlayerData) Player {
	return Player{
		User:      User{ID: data.UserID, Name: data.UserName},
		Character: Character{ID: data.CharacterID, Name: data.CharacterName},
	}
}
