package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/hours"
	"github.com/alexanderramin/tempo/internal/timer"
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

// RemainingStyle colors a remaining-hours figure: red when over budget,
// yellow when low, green otherwise.
func RemainingStyle(remaining float64) lipgloss.Style {
	switch {
	case remaining < 0:
		return StyleRed
	case hours.IsLow(remaining):
		return StyleYellow
	default:
		return StyleGreen
	}
}

// TimerStatePill returns a colored indicator such as "● RUNNING".
func TimerStatePill(s timer.State) string {
	switch s {
	case timer.Running:
		return StyleGreen.Render("● RUNNING")
	case timer.Paused:
		return StyleYellow.Render("○ PAUSED")
	case timer.Finished:
		return StyleBlue.Render("✔ FINISHED")
	default:
		return StyleDim.Render("○ IDLE")
	}
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

// Success renders a one-line confirmation.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}

// Failure renders a one-line error for the user.
func Failure(text string) string {
	return StyleRed.Render("✖ " + text)
}
