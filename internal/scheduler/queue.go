package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
)

// DueItem is a review item together with its category.
type DueItem struct {
	Category    string            `json:"category"`
	Item        domain.ReviewItem `json:"item"`
	OverdueDays int               `json:"overdue_days"`
}

// Due returns every item whose next review is on or before today, most
// overdue first. An empty category selects all categories.
func Due(reviews map[string]map[string]*domain.ReviewItem, category string, today time.Time) []DueItem {
	day := domain.DateOf(today)
	var out []DueItem
	for cat, items := range reviews {
		if category != "" && cat != category {
			continue
		}
		for _, it := range items {
			if it.NextReview > day {
				continue
			}
			out = append(out, DueItem{
				Category:    cat,
				Item:        *it,
				OverdueDays: domain.DaysBetween(it.NextReview, day),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Item.NextReview != out[j].Item.NextReview {
			return out[i].Item.NextReview < out[j].Item.NextReview
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Item.Content < out[j].Item.Content
	})
	return out
}

// CategoryStats summarizes one category of review items.
type CategoryStats struct {
	Total    int `json:"total"`
	DueToday int `json:"due_today"`
	Mastered int `json:"mastered"`
}

// Stats summarizes all review items, overall and per category.
type Stats struct {
	CategoryStats
	Categories map[string]CategoryStats `json:"categories"`
}

// Summarize computes review totals as of today.
func Summarize(reviews map[string]map[string]*domain.ReviewItem, today time.Time) Stats {
	day := domain.DateOf(today)
	st := Stats{Categories: make(map[string]CategoryStats, len(reviews))}
	for cat, items := range reviews {
		var cs CategoryStats
		for _, it := range items {
			cs.Total++
			if it.NextReview <= day {
				cs.DueToday++
			}
			if IsMastered(it) {
				cs.Mastered++
			}
		}
		st.Categories[cat] = cs
		st.Total += cs.Total
		st.DueToday += cs.DueToday
		st.Mastered += cs.Mastered
	}
	return st
}

// CalendarDay is the number of reviews falling due on Date.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Calendar returns due counts for today and each of the following days-1
// days. Overdue items are counted on today.
func Calendar(reviews map[string]map[string]*domain.ReviewItem, today time.Time, days int) []CalendarDay {
	if days <= 0 {
		return nil
	}
	day := domain.DateOf(today)
	out := make([]CalendarDay, days)
	for i := range out {
		out[i].Date = domain.AddDays(day, i)
	}
	for _, items := range reviews {
		for _, it := range items {
			offset := domain.DaysBetween(day, it.NextReview)
			if offset < 0 {
				offset = 0
			}
			if offset < days {
				out[offset].Count++
			}
		}
	}
	return out
}
