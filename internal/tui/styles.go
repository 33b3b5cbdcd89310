package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
	ColorFocusBg = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	subtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	tabStyle     = lipgloss.NewStyle().Foreground(ColorSubtext)
	activeTab    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorPrimary)
	relatedStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	focusStyle   = lipgloss.NewStyle().Background(ColorFocusBg)
	statusStyle  = lipgloss.NewStyle().Foreground(ColorDanger)
)
