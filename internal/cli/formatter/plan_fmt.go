package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/progress"
)

const barWidth = 20

// FormatPlan renders today's counters against the daily targets.
func FormatPlan(p progress.PlanView) string {
	lines := []string{
		kv("Date", p.Date),
		kv("Questions", fmt.Sprintf("%s %d/%d", RenderProgress(p.QuestionProgress, barWidth), p.TodayQuestions, p.TargetQuestions)),
		kv("Minutes", fmt.Sprintf("%s %d/%d", RenderProgress(p.MinuteProgress, barWidth), p.TodayMinutes, p.TargetMinutes)),
		kv("Correct", fmt.Sprintf("%d (%d wrong)", p.TodayCorrect, p.TodayWrong)),
		kv("Reviews", p.TodayReviews),
		kv("Best streak", p.BestStreakToday),
	}
	if p.Complete {
		lines = append(lines, "", StyleGreen.Render("✔ Daily goal reached!"))
	}
	return RenderBox("Today", strings.Join(lines, "\n")) + "\n"
}

// FormatChallenges renders today's challenges with progress.
func FormatChallenges(v progress.ChallengeView) string {
	var b strings.Builder
	b.WriteString(Header("Daily challenges "+v.Date) + "\n")
	rows := make([][]string, 0, len(v.Challenges))
	for _, c := range v.Challenges {
		state := fmt.Sprintf("%d/%d", c.Progress, c.Target)
		if c.Completed {
			state = StyleGreen.Render("✔ " + state)
		}
		rows = append(rows, []string{
			c.Title,
			state,
			StyleYellow.Render(fmt.Sprintf("+%d★", c.Reward)),
		})
	}
	b.WriteString(RenderTable([]string{"CHALLENGE", "PROGRESS", "REWARD"}, rows))
	b.WriteString(Dim(fmt.Sprintf("Streak %d days · %d completed all time", v.Streak, v.TotalCompleted)) + "\n")
	return b.String()
}
