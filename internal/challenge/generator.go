package challenge

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/alexanderramin/sprout/internal/domain"
)

// Generate draws PerDay distinct templates, uniformly at random, using a
// generator seeded from the calendar day so the same day always yields the
// same set.
func Generate(day string, pool []domain.Challenge) []domain.Challenge {
	n := PerDay
	if n > len(pool) {
		n = len(pool)
	}
	rng := rand.New(rand.NewPCG(daySeed(day), 0x5eed))
	perm := rng.Perm(len(pool))
	out := make([]domain.Challenge, 0, n)
	for _, i := range perm[:n] {
		out = append(out, pool[i])
	}
	return out
}

func daySeed(day string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(day))
	return h.Sum64()
}

// Rollover starts a new challenge day when the stored date is not today.
// The streak continues only when yesterday's set had at least one completed
// challenge; otherwise it resets to zero. Returns true when it changed dc.
func Rollover(dc *domain.DailyChallenges, today string, pool []domain.Challenge) bool {
	if dc.Date == today && len(dc.Challenges) > 0 {
		return false
	}
	if dc.Date != today {
		if dc.Date == domain.Yesterday(today) && len(dc.Completed) > 0 {
			dc.Streak++
		} else {
			dc.Streak = 0
		}
		dc.Completed = []string{}
	}
	dc.Date = today
	dc.Challenges = Generate(today, pool)
	return true
}

// Progress computes how far the live snapshot is toward c's target.
func Progress(s *domain.Snapshot, c domain.Challenge) int {
	p := s.DailyPlan
	switch c.Type {
	case domain.ChallengeCorrect:
		return p.TodayCorrect
	case domain.ChallengeStreak:
		return p.BestStreakToday
	case domain.ChallengeModuleCorrect:
		return p.ModuleCorrect[c.Module]
	case domain.ChallengeTime:
		return p.TodayMinutes
	case domain.ChallengeReview:
		return p.TodayReviews
	case domain.ChallengePerfect:
		if p.TodayWrong() > 0 {
			return 0
		}
		return p.TodayCorrect
	default:
		return 0
	}
}

// Status is a challenge with its live progress.
type Status struct {
	domain.Challenge
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// Statuses reports progress for every challenge of the day.
func Statuses(s *domain.Snapshot) []Status {
	out := make([]Status, 0, len(s.Challenges.Challenges))
	for _, c := range s.Challenges.Challenges {
		prog := Progress(s, c)
		if prog > c.Target {
			prog = c.Target
		}
		out = append(out, Status{
			Challenge: c,
			Progress:  prog,
			Completed: s.Challenges.IsCompleted(c.ID),
		})
	}
	return out
}

// CheckCompletion marks every challenge whose progress reached its target,
// once, awarding its star reward. Returns the newly completed challenges.
func CheckCompletion(s *domain.Snapshot) []domain.Challenge {
	var done []domain.Challenge
	for _, c := range s.Challenges.Challenges {
		if s.Challenges.IsCompleted(c.ID) {
			continue
		}
		if Progress(s, c) < c.Target {
			continue
		}
		s.Challenges.Completed = append(s.Challenges.Completed, c.ID)
		s.Challenges.TotalCompleted++
		s.Rewards.Stars += c.Reward
		done = append(done, c)
	}
	return done
}
