package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#005B9A", Dark: "#4FA3FF"}
	colorText      = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#E6E6E6"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#9A9A9A"}
	colorWarning   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	colorDanger    = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF8A80"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6F6F6F"}
	colorSelectBg  = lipgloss.AdaptiveColor{Light: "#DDEBFF", Dark: "#2B4C7E"}
	colorSelectFg  = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelectFg).
			Background(colorSelectBg)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	errorRowStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	statsStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			MarginBottom(1)

	barFilledStyle = lipgloss.NewStyle().Foreground(colorPrimary)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	warnBadge      = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
)

// FormatSize formats a block count, expressed in bytes (512-byte blocks
// converted the way internal/probe reports them), for display.
func FormatSize(blocks int64) string {
	return humanize.Bytes(uint64(blocks) * 512)
}

// FormatCount formats a count for display.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
