package progress

import (
	"errors"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/parental"
	"github.com/google/uuid"
)

// SetParentPassword replaces the parent password with a bcrypt hash and
// discards any legacy plaintext value.
func (s *Store) SetParentPassword(password string) error {
	hash, err := parental.HashPassword(password, s.passwordCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Parent.PasswordHash = hash
	s.snap.Parent.Password = ""
	s.dirty.Store(true)
	return nil
}

// VerifyParentPassword checks password. A matching legacy plaintext
// password is upgraded to a hash in place.
func (s *Store) VerifyParentPassword(password string) error {
	s.mu.Lock()
	settings := s.snap.Parent
	s.mu.Unlock()

	upgrade, err := parental.CheckPassword(settings, password)
	if err != nil {
		if errors.Is(err, parental.ErrWrongPassword) {
			s.logger.Warn("parent password rejected")
		}
		return err
	}
	if upgrade {
		hash, err := parental.HashPassword(password, s.passwordCost)
		if err != nil {
			s.logger.Error("upgrading legacy parent password", "error", err)
			return nil
		}
		if s.upgradeLegacyPassword(password, hash) {
			s.logger.Info("legacy parent password upgraded to hash")
		}
	}
	return nil
}

// upgradeLegacyPassword stores hash only while the plaintext password that
// was verified is still the one configured.
func (s *Store) upgradeLegacyPassword(plain, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &s.snap.Parent
	if p.PasswordHash != "" || p.Password != plain {
		return false
	}
	p.PasswordHash = hash
	p.Password = ""
	s.dirty.Store(true)
	return true
}

// HasParentPassword reports whether a parent password is configured.
func (s *Store) HasParentPassword() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Parent.HasPassword()
}

// Limits is a partial update of the parent controls; nil fields keep their
// current value. Hours outside [0,24] and negative minutes are clamped; an
// end hour of 24 means midnight.
type Limits struct {
	DailyLimitMin    *int  `json:"daily_limit_min,omitempty" yaml:"daily_limit_min,omitempty"`
	SessionLimitMin  *int  `json:"session_limit_min,omitempty" yaml:"session_limit_min,omitempty"`
	WeekendBonusMin  *int  `json:"weekend_bonus_min,omitempty" yaml:"weekend_bonus_min,omitempty"`
	AllowedStartHour *int  `json:"allowed_start_hour,omitempty" yaml:"allowed_start_hour,omitempty"`
	AllowedEndHour   *int  `json:"allowed_end_hour,omitempty" yaml:"allowed_end_hour,omitempty"`
	TimeLockEnabled  *bool `json:"time_lock_enabled,omitempty" yaml:"time_lock_enabled,omitempty"`
	LockEnabled      *bool `json:"lock_enabled,omitempty" yaml:"lock_enabled,omitempty"`
}

func clampHour(h int) *int {
	h = min(max(h, 0), 24)
	return &h
}

// SetParentLimits applies a partial update and returns the resulting
// settings with secrets stripped.
func (s *Store) SetParentLimits(l Limits) domain.ParentSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.snap.Parent
	p.DailyLimitMin = domain.NonNegative(domain.IntFromPtrWithDefault(p.DailyLimitMin, l.DailyLimitMin))
	p.SessionLimitMin = domain.NonNegative(domain.IntFromPtrWithDefault(p.SessionLimitMin, l.SessionLimitMin))
	p.WeekendBonusMin = domain.NonNegative(domain.IntFromPtrWithDefault(p.WeekendBonusMin, l.WeekendBonusMin))
	if l.AllowedStartHour != nil {
		p.AllowedStartHour = clampHour(*l.AllowedStartHour)
	}
	if l.AllowedEndHour != nil {
		p.AllowedEndHour = clampHour(*l.AllowedEndHour)
	}
	if l.TimeLockEnabled != nil {
		p.TimeLockEnabled = *l.TimeLockEnabled
	}
	if l.LockEnabled != nil {
		p.LockEnabled = *l.LockEnabled
	}
	s.dirty.Store(true)
	return publicSettings(s.snap.Clone().Parent)
}

// ParentSettings returns the parent controls with secrets stripped.
func (s *Store) ParentSettings() domain.ParentSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return publicSettings(s.snap.Clone().Parent)
}

func publicSettings(p domain.ParentSettings) domain.ParentSettings {
	p.PasswordHash = ""
	p.Password = ""
	return p
}

// AddNotification appends a message to the parent log, keeping the newest
// MaxNotifications entries.
func (s *Store) AddNotification(kind, message string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := domain.Notification{
		ID:      uuid.NewString(),
		Time:    s.now().Format(time.RFC3339),
		Kind:    kind,
		Message: message,
	}
	list := append(s.snap.Parent.Notifications, n)
	if over := len(list) - domain.MaxNotifications; over > 0 {
		list = append([]domain.Notification(nil), list[over:]...)
	}
	s.snap.Parent.Notifications = list
	s.dirty.Store(true)
	return n
}

// Notifications returns the parent log, oldest first.
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.snap.Parent.Notifications...)
}

// Access is the outcome of the advisory parent checks at the current time.
type Access struct {
	TimeAllowed bool                 `json:"time_allowed"`
	Limit       parental.LimitStatus `json:"limit"`
	LockEnabled bool                 `json:"lock_enabled"`
}

// Blocked reports whether the caller should lock the child out.
func (a Access) Blocked() bool {
	return a.LockEnabled && (!a.TimeAllowed || a.Limit.Reached())
}

// CheckAccess evaluates the hour window and time limits for a session that
// has been running for sessionMinutes.
func (s *Store) CheckAccess(sessionMinutes int) Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.today()
	return Access{
		TimeAllowed: parental.TimeAllowed(s.snap.Parent, now),
		Limit:       parental.TimeLimitReached(s.snap, sessionMinutes, now),
		LockEnabled: s.snap.Parent.LockEnabled,
	}
}
