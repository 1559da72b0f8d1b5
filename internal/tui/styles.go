package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorAccent   = lipgloss.Color("57")
	ColorAccentFg = lipgloss.Color("229")
	ColorMuted    = lipgloss.Color("244")
	ColorBorder   = lipgloss.Color("240")
	ColorCritical = lipgloss.Color("196")
	ColorInfo     = lipgloss.Color("39")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccentFg).
			Background(ColorAccent)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccentFg).
			Background(ColorAccent).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	TabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			BorderBottom(true)

	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
