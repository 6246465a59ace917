package ui

import (
	"fmt"
	"strings"
)

// View 渲染界面
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle("⚔️ Shattle"))
	b.WriteString("\n\n")

	switch m.state {
	case stateLobby:
		b.WriteString("欢迎！创建新游戏或通过邀请码加入。\n")

	case stateWaiting:
		b.WriteString(fmt.Sprintf("邀请码: %s\n", CodeStyle.Render(m.code)))
		b.WriteString(fmt.Sprintf("玩家 (%d/5):\n", len(m.roster)))
		for i, id := range m.roster {
			marker := "  "
			if i == 0 {
				marker = "👑"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", marker, m.displayName(id)))
		}

	case statePlaying:
		b.WriteString(m.renderHistory())
		b.WriteString("\n")
		turn := m.currentTurn()
		if turn == m.userID {
			b.WriteString(TurnStyle.Render("轮到你了！"))
		} else {
			b.WriteString(DimStyle.Render(fmt.Sprintf("等待 %s 行动...", m.displayName(turn))))
		}
		b.WriteString("\n")

	case stateFinished:
		b.WriteString(m.renderHistory())
		b.WriteString("\n")
		b.WriteString(TitleStyle("🏁 游戏结束"))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	if m.state != stateFinished {
		b.WriteString(PromptStyle.Render(m.input.View()))
		b.WriteString("\n")
	}

	if m.latency > 0 {
		b.WriteString(DimStyle.Render(fmt.Sprintf("\n延迟: %dms", m.latency)))
	}
	b.WriteString(DimStyle.Render("\nEsc 退出"))

	return DocStyle.Render(b.String())
}

// renderHistory 渲染最近的回合记录
func (m *Model) renderHistory() string {
	if len(m.history) == 0 {
		return DimStyle.Render("还没有回合记录")
	}

	// 只展示最近 10 条
	start := 0
	if len(m.history) > 10 {
		start = len(m.history) - 10
	}
	return BoxStyle.Render(strings.Join(m.history[start:], "\n"))
}

// displayName 玩家展示名，自己标记出来
func (m *Model) displayName(userID string) string {
	if userID == m.userID {
		return userID + " (你)"
	}
	return userID
}
