// Package ui 终端客户端界面（bubbletea）
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shattle/shattle-server/internal/client"
	"github.com/shattle/shattle-server/internal/protocol"
)

// 界面状态
type state int

const (
	stateLobby    state = iota // 创建或输入邀请码
	stateWaiting               // 等待玩家加入
	statePlaying               // 游戏进行中
	stateFinished              // 游戏已结束
)

// serverMsg 从服务器收到的一条消息
type serverMsg struct {
	msg *protocol.Message
}

// connClosedMsg 连接已断开
type connClosedMsg struct{}

// Model 在线对局的界面模型
type Model struct {
	client *client.Client
	userID string

	state  state
	gameID string
	code   string // 邀请码
	mapID  string

	roster  []string // 玩家 ID，顺序即回合顺序
	history []string // 已完成回合的展示行
	last    string   // 最后一个提交回合的玩家 ID

	input   textinput.Model
	errText string
	latency int64

	width  int
	height int
}

// NewModel 创建界面模型并连接服务器
func NewModel(c *client.Client, userID string) *Model {
	input := textinput.New()
	input.Placeholder = "输入邀请码加入，或输入 c 创建游戏"
	input.Focus()
	input.CharLimit = 64

	m := &Model{
		client: c,
		userID: userID,
		state:  stateLobby,
		input:  input,
	}
	c.OnLatencyUpdate = func(latency int64) { m.latency = latency }
	return m
}

// Init 启动消息接收循环
func (m *Model) Init() tea.Cmd {
	m.client.StartHeartbeat()
	return m.waitForMessage()
}

// waitForMessage 阻塞等待下一条服务器消息
func (m *Model) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return connClosedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

// currentTurn 返回当前应行动的玩家 ID
// 与服务端的回合轮转保持一致: 名册顺序循环，从上一个提交者的下一位开始
func (m *Model) currentTurn() string {
	if len(m.roster) == 0 {
		return ""
	}
	if m.last == "" {
		return m.roster[0]
	}
	for i, id := range m.roster {
		if id == m.last {
			return m.roster[(i+1)%len(m.roster)]
		}
	}
	return ""
}
