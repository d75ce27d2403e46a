// Package parental holds the advisory parent controls: allowed hours,
// time limits, rest reminders and the parent password.
package parental

import (
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

// TimeAllowed reports whether now falls inside the configured hour window.
// The window is [start, end); a window with start > end wraps past
// midnight. Without both bounds, or with the time lock off, every hour is
// allowed.
func TimeAllowed(p domain.ParentSettings, now time.Time) bool {
	if !p.TimeLockEnabled || p.AllowedStartHour == nil || p.AllowedEndHour == nil {
		return true
	}
	start, end := *p.AllowedStartHour, *p.AllowedEndHour
	if start == end {
		return true
	}
	h := now.Hour()
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}

// LimitStatus is the outcome of a time-limit check.
type LimitStatus struct {
	Kind    domain.LimitKind `json:"kind"`
	Current int              `json:"current"`
	Limit   int              `json:"limit"`
}

// Reached reports whether any limit was hit.
func (l LimitStatus) Reached() bool {
	return l.Kind != domain.LimitNone
}

// DailyLimit returns the daily cap in minutes for now's weekday, including
// the weekend bonus. Zero means no cap.
func DailyLimit(p domain.ParentSettings, now time.Time) int {
	if p.DailyLimitMin <= 0 {
		return 0
	}
	limit := p.DailyLimitMin
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		limit += p.WeekendBonusMin
	}
	return limit
}

// TimeLimitReached checks the running session and today's total (minutes
// already recorded plus the running session) against the parent caps.
// The session limit is checked first.
func TimeLimitReached(s *domain.Snapshot, sessionMinutes int, now time.Time) LimitStatus {
	p := s.Parent
	sessionMinutes = domain.NonNegative(sessionMinutes)

	if p.SessionLimitMin > 0 && sessionMinutes >= p.SessionLimitMin {
		return LimitStatus{Kind: domain.LimitSession, Current: sessionMinutes, Limit: p.SessionLimitMin}
	}

	today := sessionMinutes
	if s.DailyPlan.Date == domain.DateOf(now) {
		today += s.DailyPlan.TodayMinutes
	}
	if limit := DailyLimit(p, now); limit > 0 && today >= limit {
		return LimitStatus{Kind: domain.LimitDaily, Current: today, Limit: limit}
	}
	return LimitStatus{Current: today}
}

// RestReminderDue reports whether a new rest interval has elapsed since the
// last reminder. It returns the minute marker to record when due.
func RestReminderDue(plan domain.DailyPlan, sessionMinutes int, interval time.Duration) (bool, int) {
	step := int(interval.Minutes())
	if step <= 0 || sessionMinutes < step {
		return false, plan.LastRestReminder
	}
	marker := (sessionMinutes / step) * step
	if marker <= plan.LastRestReminder {
		return false, plan.LastRestReminder
	}
	return true, marker
}
