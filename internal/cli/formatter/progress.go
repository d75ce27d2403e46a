package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45%, green from 66%,
// yellow from 33%, red below.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// FormatMinutes converts raw minutes into "1h 5m" form.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// DueLabel describes how overdue a review is.
func DueLabel(overdueDays int) string {
	switch {
	case overdueDays <= 0:
		return StyleGreen.Render("today")
	case overdueDays == 1:
		return StyleYellow.Render("1 day late")
	default:
		return StyleRed.Render(fmt.Sprintf("%d days late", overdueDays))
	}
}

// kv renders an aligned "label  value" line.
func kv(label string, value any) string {
	return fmt.Sprintf("%s %v", Dim(fmt.Sprintf("%-16s", label)), value)
}
