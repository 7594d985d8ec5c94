package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jkowalczyk/retain/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a label.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewProgressBar creates a progress bar. Percent is clamped to [0, 1].
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	barWidth := p.Width
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}

	bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	label := ""
	if p.Label != "" {
		label = theme.Hint.Render(p.Label) + " "
	}
	return fmt.Sprintf("%s%s %3.0f%%", label, bar, p.Percent*100)
}
