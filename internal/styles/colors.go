package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/xcode96/SOC/internal/content"
)

// Monokai Pro color palette
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, emphasis

	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	// Outline styles
	KindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Cyan))

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)

// paletteColors maps the guide palette onto terminal colors
var paletteColors = map[content.Color]string{
	content.Green:   Green,
	content.Fuchsia: "#FF79C6",
	content.Yellow:  Yellow,
	content.Red:     Red,
	content.Purple:  Blue,
	content.Blue:    "#6699FF",
	content.Cyan:    Cyan,
	content.Indigo:  "#7A7FF0",
}

// Palette returns the style used to show text in a guide palette color
func Palette(c content.Color) lipgloss.Style {
	hex, ok := paletteColors[c]
	if !ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
