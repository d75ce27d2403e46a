package formatter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
	"github.com/alexanderramin/sprout/internal/scheduler"
)

// FormatDueReviews lists items due today or earlier.
func FormatDueReviews(items []scheduler.DueItem) string {
	if len(items) == 0 {
		return StyleGreen.Render("Nothing to review today.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Category,
			Bold(it.Item.Content),
			DueLabel(it.OverdueDays),
			strconv.Itoa(it.Item.ReviewCount),
			fmt.Sprintf("%.2f", it.Item.EaseFactor),
		})
	}
	return RenderTable([]string{"CATEGORY", "ITEM", "DUE", "REVIEWS", "EASE"}, rows)
}

// FormatReviewUpdate renders the outcome of one review.
func FormatReviewUpdate(category, content string, u progress.ReviewUpdate) string {
	if !u.Found {
		return StyleYellow.Render(fmt.Sprintf("No review item %q in %q.", content, category)) + "\n"
	}
	line := fmt.Sprintf("%s next review on %s", Bold(content), u.NextReview)
	if u.Mastered {
		line += " " + StylePurple.Render("(mastered)")
	}
	return line + "\n" + FormatUnlocks(u.Unlocks)
}

// FormatReviewStats renders review totals per category.
func FormatReviewStats(s scheduler.Stats) string {
	cats := make([]string, 0, len(s.Categories))
	for c := range s.Categories {
		cats = append(cats, c)
	}
	slices.Sort(cats)

	rows := make([][]string, 0, len(cats)+1)
	for _, c := range cats {
		cs := s.Categories[c]
		rows = append(rows, []string{c, strconv.Itoa(cs.Total), strconv.Itoa(cs.DueToday), strconv.Itoa(cs.Mastered)})
	}
	rows = append(rows, []string{Bold("total"), strconv.Itoa(s.Total), strconv.Itoa(s.DueToday), strconv.Itoa(s.Mastered)})
	return RenderTable([]string{"CATEGORY", "ITEMS", "DUE", "MASTERED"}, rows)
}

// FormatCalendar renders upcoming due counts as a small bar chart.
func FormatCalendar(days []scheduler.CalendarDay) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}
	var b strings.Builder
	for _, d := range days {
		bar := ""
		if peak > 0 {
			bar = StyleBlue.Render(strings.Repeat(filledBlock, d.Count*barWidth/peak))
		}
		b.WriteString(fmt.Sprintf("%s %3d %s\n", Dim(d.Date), d.Count, bar))
	}
	return b.String()
}

// FormatWrongQuestions renders the wrong-question books in module order.
func FormatWrongQuestions(books map[domain.Module][]domain.WrongQuestion) string {
	var rows [][]string
	for _, m := range domain.Modules {
		for _, q := range books[m] {
			rows = append(rows, []string{
				ModuleLabel(m),
				q.Question,
				domain.CoalesceStr(q.Answer, "--"),
				strconv.Itoa(q.WrongCount),
				q.LastSeen,
			})
		}
	}
	if len(rows) == 0 {
		return StyleGreen.Render("The wrong-question book is empty.") + "\n"
	}
	return RenderTable([]string{"MODULE", "QUESTION", "ANSWER", "MISSES", "LAST SEEN"}, rows)
}

// FormatMastered renders mastered ids grouped by category.
func FormatMastered(items map[string][]string) string {
	if len(items) == 0 {
		return Dim("Nothing mastered yet.") + "\n"
	}
	cats := make([]string, 0, len(items))
	for c := range items {
		cats = append(cats, c)
	}
	slices.Sort(cats)

	var b strings.Builder
	for _, c := range cats {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(c+":"), strings.Join(items[c], ", ")))
	}
	return b.String()
}
