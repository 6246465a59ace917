package session

// Status 游戏状态，只能单向前进: Waiting → InProgress → Finished
type Status int

const (
	StatusWaiting Status = iota
	StatusInProgress
	StatusFinished
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// User 游戏用户
type User struct {
	ID   string
	Name string
}

// Character 玩家选择的角色
type Character struct {
	ID   string
	Name string
}

// Player 游戏中的玩家（用户 + 角色）
// players 切片的顺序即回合顺序，首位是创建者
type Player struct {
	User      User
	Character Character
}

// ActionType 行动类型
type ActionType string

const (
	ActionMove  ActionType = "move"
	ActionSpell ActionType = "spell"
)

// SpellKind 法术类型
type SpellKind string

const (
	SpellFireball SpellKind = "fireball"
	SpellHeal     SpellKind = "heal"
	SpellShield   SpellKind = "shield"
)

// Direction 法术方向
type Direction string

const (
	DirectionSelf  Direction = "self"
	DirectionNorth Direction = "north"
	DirectionEast  Direction = "east"
	DirectionSouth Direction = "south"
	DirectionWest  Direction = "west"
)

// Action 回合行动，move 和 spell 二选一的带标签变体
type Action struct {
	Type ActionType

	// move
	To int // 目标格子 ID

	// spell
	Spell     SpellKind
	Direction Direction
}

// Round 一名玩家提交的完整回合，包含至少一个行动
type Round struct {
	Player  Player
	Actions []Action
}
