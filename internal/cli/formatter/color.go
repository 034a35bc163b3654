package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WorkStatusLabel is the plain-text label for a work status. The switch is
// exhaustive over domain.WorkStatuses; unknown values fall through to the raw
// string so a new status is visible rather than blank.
func WorkStatusLabel(s domain.WorkStatus) string {
	switch s {
	case domain.WorkNotStarted:
		return "Not started"
	case domain.WorkRunning:
		return "Running"
	case domain.WorkOnHold:
		return "On hold"
	case domain.WorkEnded:
		return "Ended"
	default:
		return string(s)
	}
}

// WorkStatusStyle returns the color for a work status.
func WorkStatusStyle(s domain.WorkStatus) lipgloss.Style {
	switch s {
	case domain.WorkRunning:
		return StyleGreen
	case domain.WorkOnHold:
		return StyleYellow
	case domain.WorkEnded:
		return StyleBlue
	case domain.WorkNotStarted:
		return StyleDim
	default:
		return StyleRed
	}
}

// WorkStatusPill returns a colored indicator such as "● Running".
func WorkStatusPill(s domain.WorkStatus) string {
	var glyph string
	switch s {
	case domain.WorkNotStarted:
		glyph = "○"
	case domain.WorkRunning:
		glyph = "●"
	case domain.WorkOnHold:
		glyph = "◐"
	case domain.WorkEnded:
		glyph = "✔"
	default:
		glyph = "?"
	}
	return WorkStatusStyle(s).Render(glyph + " " + WorkStatusLabel(s))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
