package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorBoard  = lipgloss.Color("#D2B48C")
	colorHole   = lipgloss.Color("#8B7355")
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleGroup     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleEntry     = lipgloss.NewStyle().Foreground(colorWhite)
	styleActive    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	styleError     = lipgloss.NewStyle().Foreground(colorRed)
	styleHole      = lipgloss.NewStyle().Foreground(colorHole).Background(colorBoard)
	styleRect      = lipgloss.NewStyle().Foreground(colorCyan).Background(colorBoard)
	stylePreviewOK = lipgloss.NewStyle().Foreground(colorGreen).Background(colorBoard)
	stylePreviewNo = lipgloss.NewStyle().Foreground(colorRed).Background(colorBoard)
	styleTrash     = lipgloss.NewStyle().Foreground(colorRed).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	styleTrashHot  = styleTrash.BorderForeground(colorRed).Bold(true)
)

// itemStyle paints a placed item in its own color; selected items are bold
// and underlined so they stand out on any color.
func itemStyle(hex string, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color(hex))
	if selected {
		s = s.Bold(true).Underline(true)
	}
	return s
}
