package progress

import (
	"github.com/alexanderramin/sprout/internal/challenge"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/parental"
)

const (
	maxTargetQuestions = 200
	maxTargetMinutes   = 240
)

// PlanView is today's plan with completion ratios in [0,1].
type PlanView struct {
	domain.DailyPlan
	TodayWrong       int     `json:"today_wrong"`
	QuestionProgress float64 `json:"question_progress"`
	MinuteProgress   float64 `json:"minute_progress"`
	Complete         bool    `json:"complete"`
}

func ratio(done, target int) float64 {
	if target <= 0 {
		return 0
	}
	return min(float64(done)/float64(target), 1)
}

// GetDailyPlan returns today's counters, rolling them over first if the
// stored day is stale.
func (s *Store) GetDailyPlan() PlanView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	p := s.snap.Clone().DailyPlan
	v := PlanView{
		DailyPlan:        p,
		TodayWrong:       p.TodayWrong(),
		QuestionProgress: ratio(p.TodayQuestions, p.TargetQuestions),
		MinuteProgress:   ratio(p.TodayMinutes, p.TargetMinutes),
	}
	v.Complete = v.QuestionProgress >= 1 && v.MinuteProgress >= 1
	return v
}

// SetDailyTargets sets the question and minute goals, clamped to
// [1,200] questions and [1,240] minutes.
func (s *Store) SetDailyTargets(questions, minutes int) (int, int) {
	q := min(max(questions, 1), maxTargetQuestions)
	m := min(max(minutes, 1), maxTargetMinutes)
	if q != questions || m != minutes {
		s.logger.Warn("daily targets clamped",
			"questions", questions, "minutes", minutes, "stored_questions", q, "stored_minutes", m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()
	s.snap.DailyPlan.TargetQuestions = q
	s.snap.DailyPlan.TargetMinutes = m
	s.dirty.Store(true)
	return q, m
}

// ChallengeView is today's challenge set with live progress.
type ChallengeView struct {
	Date           string             `json:"date"`
	Streak         int                `json:"streak"`
	TotalCompleted int                `json:"total_completed"`
	Challenges     []challenge.Status `json:"challenges"`
}

// GetDailyChallenges returns today's challenges, generating them on the
// first access of the day.
func (s *Store) GetDailyChallenges() ChallengeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	dc := s.snap.Challenges
	return ChallengeView{
		Date:           dc.Date,
		Streak:         dc.Streak,
		TotalCompleted: dc.TotalCompleted,
		Challenges:     challenge.Statuses(s.snap),
	}
}

// CheckCompletion completes any challenge whose target has been reached
// and evaluates achievements.
func (s *Store) CheckCompletion() Unlocks {
	s.mu.Lock()
	s.today()
	u := s.settle()
	s.mu.Unlock()

	s.afterUnlock(u)
	return u
}

// CheckRestReminder reports whether the child has played another full rest
// interval in the running session. It fires once per interval.
func (s *Store) CheckRestReminder(sessionMinutes int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	due, marker := parental.RestReminderDue(s.snap.DailyPlan, sessionMinutes, s.restInterval)
	if due {
		s.snap.DailyPlan.LastRestReminder = marker
		s.dirty.Store(true)
	}
	return due
}
