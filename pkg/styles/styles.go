// Package styles defines the shared lipgloss color palette for terminal
// output.
package styles

import "github.com/charmbracelet/lipgloss"

// Color roles used across console rendering. Adaptive colors keep output
// readable on both light and dark terminals.
var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD700"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}
	ColorPurple  = lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#AF87FF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

// Base styles shared by message formatting.
var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)
