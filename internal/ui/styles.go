package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss 样式
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	CodeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	TurnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
)
