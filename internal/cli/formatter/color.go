// Package formatter renders progress views for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
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

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// ModuleLabel returns a capitalized, purple module name.
func ModuleLabel(m domain.Module) string {
	if m == "" {
		return StyleDim.Render("--")
	}
	s := string(m)
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// LevelStars renders a difficulty level as filled and empty stars.
func LevelStars(level int) string {
	level = domain.ClampLevel(level)
	filled := strings.Repeat("★", level)
	empty := strings.Repeat("☆", domain.MaxLevel-level)
	return StyleYellow.Render(filled) + StyleDim.Render(empty)
}

// FeedbackText is the child-facing line for a feedback signal.
func FeedbackText(f domain.Feedback, streak int) string {
	switch f {
	case domain.FeedbackPraise:
		return StyleGreen.Render("Great job!")
	case domain.FeedbackEncouragement:
		return StyleYellow.Render("Nice try, keep going!")
	case domain.FeedbackStreakMilestone:
		return StylePurple.Render(fmt.Sprintf("%d in a row!", streak))
	default:
		return StyleDim.Render(string(f))
	}
}

// AccuracyStyled colors an accuracy ratio: green from 80%, yellow from 50%.
func AccuracyStyled(acc float64, attempts int) string {
	if attempts == 0 {
		return StyleDim.Render("--")
	}
	text := fmt.Sprintf("%.0f%%", acc*100)
	switch {
	case acc >= 0.8:
		return StyleGreen.Render(text)
	case acc >= 0.5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
