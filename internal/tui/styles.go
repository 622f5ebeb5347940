package tui

import "github.com/charmbracelet/lipgloss"

// 配色
var (
	primaryColor = lipgloss.Color("#0EA5E9") // 蓝
	successColor = lipgloss.Color("#10B981") // 绿
	dangerColor  = lipgloss.Color("#EF4444") // 红
	mutedColor   = lipgloss.Color("#6B7280") // 灰
)

// 基础样式
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Width(13).
			Align(lipgloss.Right)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(1, 0, 0, 0)

	chipStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)
