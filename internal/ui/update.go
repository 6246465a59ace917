package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shattle/shattle-server/internal/protocol"
)

// Update 处理按键与服务器消息
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		}

	case serverMsg:
		m.handleServerMessage(msg.msg)
		return m, m.waitForMessage()

	case connClosedMsg:
		m.errText = "与服务器的连接已断开"
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit 处理输入框回车
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.errText = ""

	switch m.state {
	case stateLobby:
		if text == "c" {
			if err := m.client.CreateGame(); err != nil {
				m.errText = err.Error()
			}
			return m, nil
		}
		if text != "" {
			if err := m.client.JoinGame(text); err != nil {
				m.errText = err.Error()
			}
		}

	case stateWaiting:
		if text == "s" {
			if err := m.client.StartGame(m.userID, m.gameID); err != nil {
				m.errText = err.Error()
			}
		}

	case statePlaying:
		m.submitCommand(text)
	}
	return m, nil
}

// submitCommand 解析并提交游戏内命令
// 支持: move <格子> | spell <法术> <方向> | finish
func (m *Model) submitCommand(text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "move":
		if len(fields) != 2 {
			m.errText = "用法: move <格子编号>"
			return
		}
		to, err := strconv.Atoi(fields[1])
		if err != nil || to < 0 {
			m.errText = "格子编号必须是非负整数"
			return
		}
		m.sendActions([]protocol.ActionInfo{{Type: "move", To: to}})

	case "spell":
		if len(fields) != 3 {
			m.errText = "用法: spell <fireball|heal|shield> <self|north|east|south|west>"
			return
		}
		m.sendActions([]protocol.ActionInfo{{Type: "spell", Spell: fields[1], Direction: fields[2]}})

	case "finish":
		if err := m.client.FinishGame(m.userID, m.gameID); err != nil {
			m.errText = err.Error()
		}

	default:
		m.errText = fmt.Sprintf("未知命令: %s", fields[0])
	}
}

func (m *Model) sendActions(actions []protocol.ActionInfo) {
	if err := m.client.SubmitActions(m.userID, m.gameID, actions); err != nil {
		m.errText = err.Error()
	}
}

// handleServerMessage 处理服务器推送
func (m *Model) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgGameCreate:
		payload, err := protocol.ParsePayload[protocol.GameCreatedPayload](msg)
		if err != nil {
			return
		}
		m.gameID = payload.GameID
		m.code = payload.Code
		m.mapID = payload.MapID
		m.roster = []string{m.userID}
		m.state = stateWaiting
		m.input.Placeholder = "输入 s 开始游戏"

	case protocol.MsgGameJoin:
		payload, err := protocol.ParsePayload[protocol.GameJoinedPayload](msg)
		if err != nil {
			return
		}
		if m.gameID == "" {
			// 本人加入成功
			m.gameID = payload.GameID
			m.state = stateWaiting
			m.input.Placeholder = "等待创建者开始游戏"
		}
		m.addToRoster(payload.UserID)

	case protocol.MsgGameStart:
		m.state = statePlaying
		m.input.Placeholder = "move <格子> | spell <法术> <方向> | finish"

	case protocol.MsgPlayerAction:
		payload, err := protocol.ParsePayload[protocol.PlayerRoundPayload](msg)
		if err != nil {
			return
		}
		round := payload.History
		m.addToRoster(round.Player.UserID)
		m.last = round.Player.UserID
		m.history = append(m.history, formatRound(round))

	case protocol.MsgGameFinish:
		m.state = stateFinished

	case protocol.MsgError:
		payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return
		}
		m.errText = fmt.Sprintf("[%d] %s", payload.Code, payload.Message)
	}
}

// addToRoster 按服务端广播顺序维护名册
func (m *Model) addToRoster(userID string) {
	for _, id := range m.roster {
		if id == userID {
			return
		}
	}
	m.roster = append(m.roster, userID)
}

// formatRound 将回合格式化为一行展示文本
func formatRound(r protocol.RoundInfo) string {
	parts := make([]string, 0, len(r.Actions))
	for _, a := range r.Actions {
		switch a.Type {
		case "move":
			parts = append(parts, fmt.Sprintf("移动到 %d", a.To))
		case "spell":
			parts = append(parts, fmt.Sprintf("施放 %s (%s)", a.Spell, a.Direction))
		default:
			parts = append(parts, a.Type)
		}
	}
	name := r.Player.UserName
	if name == "" {
		name = r.Player.UserID
	}
	return fmt.Sprintf("%s: %s", name, strings.Join(parts, ", "))
}
