package progress

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/leveling"
)

const (
	// correctPerStar is how many cumulative correct answers earn one star.
	correctPerStar = 3
	// milestoneEvery is the consecutive-correct cadence of milestone feedback.
	milestoneEvery = 5
)

// AnswerResult reports what a single answer changed.
type AnswerResult struct {
	Unlocks
	Module       domain.Module     `json:"module"`
	Accepted     bool              `json:"accepted"`
	Correct      bool              `json:"correct"`
	Points       int               `json:"points"`
	Feedback     []domain.Feedback `json:"feedback,omitempty"`
	Streak       int               `json:"streak"`
	StarsAwarded int               `json:"stars_awarded"`
	LevelChange  *leveling.Change  `json:"level_change,omitempty"`
}

// RecordAnswer applies one answered question to the module, overall and
// daily counters, the streak and stars, then runs leveling (every fifth
// answer in the module), challenge completion and achievements.
//
// An unknown module key is logged and ignored. Negative points are clamped
// to zero.
func (s *Store) RecordAnswer(module string, points int, correct bool) AnswerResult {
	m, ok := domain.ParseModule(module)
	if !ok {
		s.logger.Warn("answer rejected: unknown module", "module", module)
		return AnswerResult{Module: m}
	}
	if points < 0 {
		s.logger.Warn("negative points clamped", "module", string(m), "points", points)
		points = 0
	}

	s.mu.Lock()
	res := s.recordAnswer(m, points, correct)
	s.mu.Unlock()

	s.metrics.ObserveAnswer(string(m), correct)
	if res.LevelChange != nil {
		s.metrics.ObserveLevelChange(string(m), res.LevelChange.Direction())
		s.logger.Info("level changed", "module", string(m),
			"from", res.LevelChange.From, "to", res.LevelChange.To)
	}
	s.afterUnlock(res.Unlocks)
	return res
}

func (s *Store) recordAnswer(m domain.Module, points int, correct bool) AnswerResult {
	_, day := s.today()
	snap := s.snap
	ms := snap.Modules[m]
	o := &snap.Overall
	plan := &snap.DailyPlan

	res := AnswerResult{Module: m, Accepted: true, Correct: correct}

	plan.TodayQuestions++
	if correct {
		res.Points = points
		ms.Correct++
		ms.Score += points
		o.TotalCorrect++
		o.TotalScore += points
		plan.TodayCorrect++
		plan.ModuleCorrect[m]++

		o.CurrentStreak++
		o.BestStreak = max(o.BestStreak, o.CurrentStreak)
		plan.BestStreakToday = max(plan.BestStreakToday, o.CurrentStreak)

		if o.TotalCorrect%correctPerStar == 0 {
			snap.Rewards.Stars++
			res.StarsAwarded++
		}
		res.Feedback = append(res.Feedback, domain.FeedbackPraise)
		if o.CurrentStreak%milestoneEvery == 0 {
			res.Feedback = append(res.Feedback, domain.FeedbackStreakMilestone)
		}
	} else {
		ms.Wrong++
		o.TotalWrong++
		o.CurrentStreak = 0
		res.Feedback = append(res.Feedback, domain.FeedbackEncouragement)
	}
	res.Streak = o.CurrentStreak
	s.touchActiveDay(day)

	if leveling.Due(*ms) {
		from := domain.ClampLevel(ms.Level)
		next, delta := leveling.NextLevel(*ms)
		ms.Level = next
		if delta != 0 {
			res.LevelChange = &leveling.Change{Module: m, From: from, To: next}
		}
	}

	res.Unlocks = s.settle()
	for _, c := range res.CompletedChallenges {
		res.StarsAwarded += c.Reward
	}
	return res
}

// SessionResult reports an ended play session.
type SessionResult struct {
	Unlocks
	Module  domain.Module `json:"module,omitempty"`
	Minutes int           `json:"minutes"`
}

// EndSession adds the session's elapsed minutes to the overall, daily and
// (when module is known) module totals and to the rolling daily history.
// An empty module records time without attributing it.
func (s *Store) EndSession(module string, elapsed time.Duration) SessionResult {
	var m domain.Module
	if strings.TrimSpace(module) != "" {
		var ok bool
		if m, ok = domain.ParseModule(module); !ok {
			s.logger.Warn("session module unknown, recording time only", "module", module)
			m = ""
		}
	}
	if elapsed < 0 {
		s.logger.Warn("negative session duration clamped", "elapsed", elapsed.String())
		elapsed = 0
	}
	minutes := int(math.Round(elapsed.Minutes()))

	s.mu.Lock()
	_, day := s.today()
	snap := s.snap
	snap.Overall.TotalMinutes += minutes
	snap.DailyPlan.TodayMinutes += minutes
	snap.DailyPlan.LastRestReminder = 0
	if m != "" {
		snap.Modules[m].TimeSpentM += minutes
	}
	if minutes > 0 {
		snap.Overall.DailyMinutes = appendDayMinutes(snap.Overall.DailyMinutes, day, minutes)
		s.touchActiveDay(day)
	}
	res := SessionResult{Module: m, Minutes: minutes, Unlocks: s.settle()}
	s.mu.Unlock()

	s.afterUnlock(res.Unlocks)
	return res
}

// appendDayMinutes adds minutes to day's history entry, keeping only the
// most recent MaxMinuteHistory days.
func appendDayMinutes(hist []domain.DayMinutes, day string, minutes int) []domain.DayMinutes {
	if n := len(hist); n > 0 && hist[n-1].Date == day {
		hist[n-1].Minutes += minutes
	} else {
		hist = append(hist, domain.DayMinutes{Date: day, Minutes: minutes})
	}
	if over := len(hist) - domain.MaxMinuteHistory; over > 0 {
		hist = append([]domain.DayMinutes(nil), hist[over:]...)
	}
	return hist
}

// LevelResult reports a manual level override.
type LevelResult struct {
	Unlocks
	Module domain.Module `json:"module"`
	From   int           `json:"from"`
	To     int           `json:"to"`
}

// Changed reports whether the override moved the level.
func (r LevelResult) Changed() bool { return r.From != r.To }

// SetLevel overrides a module's difficulty, clamped to [1,3]. The previous
// level is read under the same lock as the write. It returns false for an
// unknown module.
func (s *Store) SetLevel(module string, level int) (LevelResult, bool) {
	m, ok := domain.ParseModule(module)
	if !ok {
		s.logger.Warn("level override rejected: unknown module", "module", module)
		return LevelResult{}, false
	}
	clamped := domain.ClampLevel(level)
	if clamped != level {
		s.logger.Warn("level override clamped", "module", string(m), "requested", level, "stored", clamped)
	}

	s.mu.Lock()
	s.today()
	ms := s.snap.Modules[m]
	res := LevelResult{Module: m, From: domain.ClampLevel(ms.Level), To: clamped}
	ms.Level = clamped
	res.Unlocks = s.settle()
	s.mu.Unlock()

	s.afterUnlock(res.Unlocks)
	return res, true
}

// Stats is a read-only view of cumulative progress.
type Stats struct {
	UserInfo      domain.UserInfo                      `json:"user_info"`
	Overall       domain.Overall                       `json:"overall"`
	Modules       map[domain.Module]domain.ModuleStats `json:"modules"`
	Rewards       domain.Rewards                       `json:"rewards"`
	Accuracy      float64                              `json:"accuracy"`
	TotalMastered int                                  `json:"total_mastered"`
	TotalReviews  int                                  `json:"total_reviews"`
	WrongCount    int                                  `json:"wrong_questions"`
}

// GetStats returns a copy of the cumulative counters.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	snap := s.snap.Clone()
	st := Stats{
		UserInfo:      snap.UserInfo,
		Overall:       snap.Overall,
		Modules:       make(map[domain.Module]domain.ModuleStats, len(snap.Modules)),
		Rewards:       snap.Rewards,
		TotalMastered: snap.TotalMastered(),
		TotalReviews:  snap.TotalReviews(),
	}
	for k, v := range snap.Modules {
		st.Modules[k] = *v
	}
	for _, wq := range snap.WrongQuestions {
		st.WrongCount += len(wq)
	}
	if n := snap.Overall.TotalCorrect + snap.Overall.TotalWrong; n > 0 {
		st.Accuracy = float64(snap.Overall.TotalCorrect) / float64(n)
	}
	return st
}

// ResetAll is the ResetProgress target that clears every module.
const ResetAll = "all"

// ResetProgress clears one module's stats, wrong questions, mastered items
// and review items, or with ResetAll the whole snapshot. UserInfo, parent
// settings and unlocked badges survive either form. It returns false for an
// unknown module.
func (s *Store) ResetProgress(target string) bool {
	target = strings.ToLower(strings.TrimSpace(target))

	s.mu.Lock()
	defer s.mu.Unlock()

	if target == ResetAll {
		fresh := domain.NewSnapshot(s.now())
		fresh.UserInfo = s.snap.UserInfo
		fresh.Parent = s.snap.Parent
		fresh.Rewards.Badges = s.snap.Rewards.Badges
		fresh.DailyPlan.TargetQuestions = s.snap.DailyPlan.TargetQuestions
		fresh.DailyPlan.TargetMinutes = s.snap.DailyPlan.TargetMinutes
		s.snap = fresh
		s.today()
		s.dirty.Store(true)
		s.logger.Info("progress reset", "target", ResetAll)
		return true
	}

	m, ok := domain.ParseModule(target)
	if !ok {
		s.logger.Warn("reset rejected: unknown module", "module", target)
		return false
	}
	s.today()
	s.snap.Modules[m] = &domain.ModuleStats{Level: domain.MinLevel}
	delete(s.snap.WrongQuestions, m)
	delete(s.snap.Mastered, string(m))
	delete(s.snap.Reviews, string(m))
	s.dirty.Store(true)
	s.logger.Info("progress reset", "target", string(m))
	return true
}
