package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal theme: reusable styles and a few icons.

const (
	iconSeedling = "🌱"
	iconCoin     = "🪙"
	iconStreak   = "🔥"
	iconDone     = "✅"
	iconLocked   = "🔒"
	iconChart    = "📊"
)

var (
	cPrimary = lipgloss.Color("42")  // green
	cAccent  = lipgloss.Color("205") // magenta
	cGold    = lipgloss.Color("220") // gold
	cMuted   = lipgloss.Color("244") // gray
	cBad     = lipgloss.Color("196") // red
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	styleKey   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	styleGood  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	styleGold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	styleMuted = lipgloss.NewStyle().Foreground(cMuted)
	styleBad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cMuted).
			Padding(0, 1)
)

func heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return styleTitle.Render(icon + title)
}

func labelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", styleKey.Render(label+":"), value)
}

// bar renders a simple horizontal bar scaled to width
func bar(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	n := value * width / max
	if n > width {
		n = width
	}
	return styleGood.Render(strings.Repeat("█", n)) + styleMuted.Render(strings.Repeat("░", width-n))
}
