package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

// ErrEmptyDocument is returned when a persisted document has no content.
var ErrEmptyDocument = errors.New("empty snapshot document")

// Encode serializes a snapshot as indented JSON. Non-ASCII text (Chinese
// question content) is written verbatim.
func Encode(s *domain.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, errors.New("encode snapshot: nil snapshot")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a persisted document and merges it over the compile-time
// defaults: the document is overlaid onto a fresh snapshot, so absent fields
// keep their default values, and Normalize repairs anything out of bounds.
// now stamps the creation date when the document carries none.
func Decode(data []byte, now time.Time) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	s := domain.NewSnapshot(now)
	// Reset the fields that the overlay must be able to leave untouched
	// without inheriting "today" from the fresh snapshot.
	s.Version = 0
	s.UserInfo.CreatedAt = ""
	s.DailyPlan.Date = ""

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := migrate(s); err != nil {
		return nil, err
	}
	Normalize(s, now)
	return s, nil
}

// migrate upgrades older document versions in place.
func migrate(s *domain.Snapshot) error {
	switch {
	case s.Version > domain.SchemaVersion:
		return fmt.Errorf("decode snapshot: unsupported version %d", s.Version)
	case s.Version <= 1:
		// v1 documents stored the plaintext parent password only and had no
		// challenge streak; both fields default cleanly.
		s.Version = domain.SchemaVersion
	}
	return nil
}

// Normalize fills defaults and clamps every bounded field. It is idempotent.
func Normalize(s *domain.Snapshot, now time.Time) {
	s.EnsureCollections()
	s.UserInfo.CreatedAt = domain.CoalesceStr(s.UserInfo.CreatedAt, domain.DateOf(now))
	s.UserInfo.Age = domain.NonNegative(s.UserInfo.Age)

	o := &s.Overall
	o.TotalScore = domain.NonNegative(o.TotalScore)
	o.TotalCorrect = domain.NonNegative(o.TotalCorrect)
	o.TotalWrong = domain.NonNegative(o.TotalWrong)
	o.DaysLearned = domain.NonNegative(o.DaysLearned)
	o.TotalMinutes = domain.NonNegative(o.TotalMinutes)
	o.CurrentStreak = domain.NonNegative(o.CurrentStreak)
	if o.BestStreak < o.CurrentStreak {
		o.BestStreak = o.CurrentStreak
	}
	if n := len(o.DailyMinutes); n > domain.MaxMinuteHistory {
		o.DailyMinutes = o.DailyMinutes[n-domain.MaxMinuteHistory:]
	}

	for k, m := range s.Modules {
		if m == nil {
			s.Modules[k] = &domain.ModuleStats{Level: domain.MinLevel}
			continue
		}
		m.Score = domain.NonNegative(m.Score)
		m.Correct = domain.NonNegative(m.Correct)
		m.Wrong = domain.NonNegative(m.Wrong)
		m.TimeSpentM = domain.NonNegative(m.TimeSpentM)
		m.Level = domain.ClampLevel(m.Level)
	}

	s.Rewards.Stars = domain.NonNegative(s.Rewards.Stars)
	s.Rewards.Badges = domain.Dedupe(s.Rewards.Badges)
	s.Rewards.Achievements = domain.Dedupe(s.Rewards.Achievements)

	for k, list := range s.WrongQuestions {
		if len(list) == 0 {
			delete(s.WrongQuestions, k)
			continue
		}
		if len(list) > domain.MaxWrongQuestions {
			s.WrongQuestions[k] = list[len(list)-domain.MaxWrongQuestions:]
		}
	}
	for k, list := range s.Mastered {
		if len(list) == 0 {
			delete(s.Mastered, k)
			continue
		}
		s.Mastered[k] = domain.Dedupe(list)
	}

	p := &s.DailyPlan
	p.TargetQuestions = domain.PositiveOr(p.TargetQuestions, domain.DefaultTargetQuestions)
	p.TargetMinutes = domain.PositiveOr(p.TargetMinutes, domain.DefaultTargetMinutes)

	for cat, items := range s.Reviews {
		for key, it := range items {
			if it == nil {
				delete(items, key)
				continue
			}
			normalizeReviewItem(key, it, now)
		}
		if len(items) == 0 {
			delete(s.Reviews, cat)
		}
	}

	if n := len(s.Parent.Notifications); n > domain.MaxNotifications {
		s.Parent.Notifications = s.Parent.Notifications[n-domain.MaxNotifications:]
	}
	s.Parent.DailyLimitMin = domain.NonNegative(s.Parent.DailyLimitMin)
	s.Parent.SessionLimitMin = domain.NonNegative(s.Parent.SessionLimitMin)
	s.Parent.WeekendBonusMin = domain.NonNegative(s.Parent.WeekendBonusMin)
	s.Parent.AllowedStartHour = clampHour(s.Parent.AllowedStartHour)
	s.Parent.AllowedEndHour = clampHour(s.Parent.AllowedEndHour)

	s.Challenges.Completed = domain.Dedupe(s.Challenges.Completed)
	s.Challenges.Streak = domain.NonNegative(s.Challenges.Streak)
	s.Challenges.TotalCompleted = domain.NonNegative(s.Challenges.TotalCompleted)
}

func normalizeReviewItem(key string, it *domain.ReviewItem, now time.Time) {
	it.Content = domain.CoalesceStr(it.Content, key)
	if _, ok := domain.ParseDate(it.LearnDate, time.Local); !ok {
		it.LearnDate = domain.DateOf(now)
	}
	it.ReviewCount = domain.NonNegative(it.ReviewCount)
	it.CorrectStreak = domain.NonNegative(it.CorrectStreak)
	if it.EaseFactor == 0 || math.IsNaN(it.EaseFactor) {
		it.EaseFactor = domain.DefaultEaseFactor
	}
	it.EaseFactor = domain.ClampEase(it.EaseFactor)
	if domain.DaysBetween(it.LearnDate, it.NextReview) < 1 {
		it.NextReview = domain.AddDays(it.LearnDate, 1)
	}
}

func clampHour(h *int) *int {
	if h == nil {
		return nil
	}
	v := *h
	if v < 0 {
		v = 0
	}
	if v > 24 {
		v = 24
	}
	return &v
}
