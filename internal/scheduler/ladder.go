package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

// Ladder is the base review interval in days, indexed by review count.
var Ladder = []int{1, 2, 4, 7, 15, 30}

const (
	easeStepCorrect = 0.1
	easeStepWrong   = 0.2

	masteredReviews = 5
	masteredStreak  = 3
)

// NewItem creates a review item first learned on today. The first review is
// due the next day.
func NewItem(content string, today time.Time) *domain.ReviewItem {
	learn := domain.DateOf(today)
	return &domain.ReviewItem{
		Content:    content,
		LearnDate:  learn,
		NextReview: domain.AddDays(learn, 1),
		EaseFactor: domain.DefaultEaseFactor,
	}
}

// Interval computes the next interval in days for an item that has been
// reviewed reviewCount times with the given ease factor.
//
// interval = round(Ladder[min(reviewCount, len-1)] * ease / 2.5), at least 1.
func Interval(reviewCount int, ease float64) int {
	idx := reviewCount
	if idx < 0 {
		idx = 0
	}
	if idx > len(Ladder)-1 {
		idx = len(Ladder) - 1
	}
	days := int(math.Round(float64(Ladder[idx]) * ease / domain.DefaultEaseFactor))
	if days < 1 {
		days = 1
	}
	return days
}

// Apply records one review outcome on item and returns the new next-review
// day. A wrong answer resets the streak, lowers the ease factor and brings
// the item back tomorrow.
func Apply(item *domain.ReviewItem, correct bool, today time.Time) string {
	item.ReviewCount++
	var interval int
	if correct {
		item.CorrectStreak++
		item.EaseFactor = roundEase(domain.ClampEase(item.EaseFactor + easeStepCorrect))
		interval = Interval(item.ReviewCount, item.EaseFactor)
	} else {
		item.CorrectStreak = 0
		item.EaseFactor = roundEase(domain.ClampEase(item.EaseFactor - easeStepWrong))
		interval = 1
	}

	day := domain.DateOf(today)
	if _, ok := domain.ParseDate(item.LearnDate, time.Local); !ok {
		item.LearnDate = day
	}
	next := domain.AddDays(day, interval)
	// The clock may have been wound back past the learn date; keep the
	// next review strictly after it.
	if domain.DaysBetween(item.LearnDate, next) < 1 {
		next = domain.AddDays(item.LearnDate, 1)
	}
	item.LastReview = day
	item.NextReview = next
	return next
}

// IsMastered reports whether an item has been reviewed enough, with a long
// enough correct streak, to count as retained.
func IsMastered(item *domain.ReviewItem) bool {
	return item.ReviewCount >= masteredReviews && item.CorrectStreak >= masteredStreak
}

// roundEase strips float drift so repeated steps land on exact tenths.
func roundEase(ef float64) float64 {
	return math.Round(ef*100) / 100
}
