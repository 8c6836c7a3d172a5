package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, trimmed to what the dashboard uses
var (
	colorSurface0 = lipgloss.Color("#313244")
	colorSurface1 = lipgloss.Color("#45475a")
	colorSubtext0 = lipgloss.Color("#a6adc8")
	colorText     = lipgloss.Color("#cdd6f4")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorRed      = lipgloss.Color("#f38ba8")
	colorMauve    = lipgloss.Color("#cba6f7")
	colorYellow   = lipgloss.Color("#f9e2af")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMauve).
			Background(colorSurface0).
			Padding(0, 1)

	highStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	lowStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	signalNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	tableBaseStyle = lipgloss.NewStyle().
			BorderForeground(colorSurface1).
			Foreground(colorText)

	risingStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	fallingStyle = lipgloss.NewStyle().Foreground(colorYellow)
)
