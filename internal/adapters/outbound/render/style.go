package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rdc-cli/rdc/internal/domain"
)

// ── Warm palette shared by the terminal renderers ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	addedStyle    = lipgloss.NewStyle().Foreground(success)
	deletedStyle  = lipgloss.NewStyle().Foreground(danger)
	modifiedStyle = lipgloss.NewStyle().Foreground(warning)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusAdded:
		return addedStyle
	case domain.StatusDeleted:
		return deletedStyle
	case domain.StatusModified:
		return modifiedStyle
	default:
		return dimStyle
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// orDash renders a missing or empty value as "-".
func orDash[T any](v *T, format func(T) string) string {
	if v == nil {
		return "-"
	}
	s := format(*v)
	if s == "" {
		return "-"
	}
	return s
}
