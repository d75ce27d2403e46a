package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/service"
)

func limitText(min int) string {
	if min <= 0 {
		return Dim("none")
	}
	return FormatMinutes(min)
}

func onOff(v bool) string {
	if v {
		return StyleGreen.Render("on")
	}
	return Dim("off")
}

// FormatParentSettings renders the parent controls. Secrets are never shown.
func FormatParentSettings(p domain.ParentSettings) string {
	window := Dim("any time")
	if p.AllowedStartHour != nil && p.AllowedEndHour != nil {
		window = fmt.Sprintf("%02d:00-%02d:00", *p.AllowedStartHour, *p.AllowedEndHour)
	}
	lines := []string{
		kv("Daily limit", limitText(p.DailyLimitMin)),
		kv("Session limit", limitText(p.SessionLimitMin)),
		kv("Weekend bonus", limitText(p.WeekendBonusMin)),
		kv("Allowed hours", window),
		kv("Hour lock", onOff(p.TimeLockEnabled)),
		kv("Lock", onOff(p.LockEnabled)),
	}
	return RenderBox("Parent controls", strings.Join(lines, "\n")) + "\n"
}

// FormatSessionCheck renders a gate check.
func FormatSessionCheck(c service.SessionCheck) string {
	var b strings.Builder
	switch {
	case c.Blocked():
		b.WriteString(StyleRed.Render("✖ Locked") + "\n")
	case !c.TimeAllowed || c.Limit.Reached():
		b.WriteString(StyleYellow.Render("● Over the limit (lock off)") + "\n")
	default:
		b.WriteString(StyleGreen.Render("● OK to play") + "\n")
	}
	if !c.TimeAllowed {
		b.WriteString(kv("Hours", StyleRed.Render("outside allowed hours")) + "\n")
	}
	if c.Limit.Reached() {
		b.WriteString(kv("Limit", fmt.Sprintf("%s %d/%d min", c.Limit.Kind, c.Limit.Current, c.Limit.Limit)) + "\n")
	} else {
		b.WriteString(kv("Today", FormatMinutes(c.Limit.Current)) + "\n")
	}
	if c.RestDue {
		b.WriteString(StyleYellow.Render("Time for a short rest!") + "\n")
	}
	return b.String()
}

// FormatNotifications lists parent notifications, newest first.
func FormatNotifications(list []domain.Notification) string {
	if len(list) == 0 {
		return Dim("No notifications.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		n := list[i]
		rows = append(rows, []string{Dim(n.Time), n.Kind, n.Message})
	}
	return RenderTable([]string{"TIME", "KIND", "MESSAGE"}, rows)
}
