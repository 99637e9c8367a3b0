package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/noteboard/internal/note"
)

var (
	accentColor = lipgloss.Color("#F7B801")
	borderColor = lipgloss.Color("#444444")
	mutedColor  = lipgloss.Color("#888888")
	faintColor  = lipgloss.Color("#AAAAAA")
	errorColor  = lipgloss.Color("#FF6B6B")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	subtitleStyle     = lipgloss.NewStyle().Foreground(faintColor)
	mutedStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	tabStyle          = lipgloss.NewStyle().Padding(0, 1).Foreground(faintColor)
	activeTabStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#111111")).Background(accentColor)
	chipStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	activeChipStyle   = chipStyle.BorderForeground(accentColor).Bold(true)
	cardTitleStyle    = lipgloss.NewStyle().Bold(true)
	toastStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(errorColor).Padding(0, 1)
	infoToastStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#111111")).Background(lipgloss.Color("#4CAF50")).Padding(0, 1)
	popoverStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	cursorStyle       = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

// cardStyle returns the border style for a note card.
func cardStyle(n note.Note, width int, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(max(10, width))
	if hex, ok := note.ColorHex(n.ColorKey()); ok {
		style = style.Background(lipgloss.Color(hex))
	}
	if selected {
		style = style.BorderForeground(accentColor).Bold(true)
	}
	return style
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
