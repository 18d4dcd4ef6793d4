package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	// neighborhood outlines are drawn red over the districts
	emphasisFg = lipgloss.Color("#EF4444")
	markerFg   = lipgloss.Color("#FFA500")

	appStyle      = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(baseDimFg)
	emphasisStyle = lipgloss.NewStyle().Foreground(emphasisFg)
	markerStyle   = lipgloss.NewStyle().Foreground(markerFg).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(accentFg)
)
