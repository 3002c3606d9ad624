package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. AdaptiveColor picks the variant matching the terminal background.
var (
	headingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	codeColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}

	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}

	// One color per output kind
	scriptColor     = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	stylesheetColor = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}
	markupColor     = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
	copyColor       = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
)

// Styles shared by the printers and the CLI.
var (
	TitleStyle   = lipgloss.NewStyle().Foreground(headingColor).Bold(true)
	PathStyle    = lipgloss.NewStyle().Foreground(pathColor).Italic(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	CodeStyle    = lipgloss.NewStyle().Foreground(codeColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(infoColor)
)

// kindStyles are keyed by the markup tag KindTag returns.
var kindStyles = map[string]lipgloss.Style{
	"script":     lipgloss.NewStyle().Foreground(scriptColor).Bold(true),
	"stylesheet": lipgloss.NewStyle().Foreground(stylesheetColor).Bold(true),
	"markup":     lipgloss.NewStyle().Foreground(markupColor).Bold(true),
	"copy":       lipgloss.NewStyle().Foreground(copyColor).Bold(true),
}

// ErrorIndicator marks a failed file in styled output.
var ErrorIndicator = ErrorStyle.Render("✗")
