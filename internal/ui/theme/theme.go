package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — muted, something you can stare at for a long session
var (
	Primary   = lipgloss.Color("#7C9E6F") // Sage
	Secondary = lipgloss.Color("#5B8AA6") // Steel Blue
	Accent    = lipgloss.Color("#D4A24E") // Amber
	Success   = lipgloss.Color("#4CAF6E") // Green
	Error     = lipgloss.Color("#C75450") // Brick
	Text      = lipgloss.Color("#E8E6E1") // Warm White
	TextDim   = lipgloss.Color("#8A8F98") // Gray
	BgCard    = lipgloss.Color("#21262E") // Dark Slate
	Border    = lipgloss.Color("#3A4150") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
