package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/sprout/internal/achievement"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/progress"
)

// FormatAnswer renders the outcome of one answer for the child.
func FormatAnswer(r progress.AnswerResult) string {
	if !r.Accepted {
		return StyleRed.Render(fmt.Sprintf("Unknown module %q, answer not recorded.", string(r.Module))) + "\n"
	}
	var b strings.Builder
	for _, f := range r.Feedback {
		b.WriteString(FeedbackText(f, r.Streak) + "\n")
	}
	b.WriteString(kv("Module", ModuleLabel(r.Module)) + "\n")
	b.WriteString(kv("Points", r.Points) + "\n")
	b.WriteString(kv("Streak", r.Streak) + "\n")
	if r.StarsAwarded > 0 {
		b.WriteString(kv("Stars", StyleYellow.Render("+"+strconv.Itoa(r.StarsAwarded))) + "\n")
	}
	if c := r.LevelChange; c != nil {
		arrow := StyleGreen.Render("▲ up")
		if c.Direction() == "down" {
			arrow = StyleYellow.Render("▼ down")
		}
		b.WriteString(kv("Level", fmt.Sprintf("%s %s", LevelStars(c.To), arrow)) + "\n")
	}
	b.WriteString(FormatUnlocks(r.Unlocks))
	return b.String()
}

// FormatSession renders an ended session.
func FormatSession(r progress.SessionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Recorded %s", FormatMinutes(r.Minutes)))
	if r.Module != "" {
		b.WriteString(" of " + ModuleLabel(r.Module))
	}
	b.WriteString("\n")
	b.WriteString(FormatUnlocks(r.Unlocks))
	return b.String()
}

// FormatUnlocks lists new badges and completed challenges, if any.
func FormatUnlocks(u progress.Unlocks) string {
	var b strings.Builder
	for _, badge := range u.NewBadges {
		b.WriteString(StylePurple.Render(fmt.Sprintf("%s Badge unlocked: %s", badge.Icon, badge.Name)) + "\n")
	}
	for _, c := range u.CompletedChallenges {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("✔ Challenge complete: %s (+%d★)", c.Title, c.Reward)) + "\n")
	}
	return b.String()
}

// FormatStats renders the cumulative progress overview.
func FormatStats(s progress.Stats) string {
	var b strings.Builder

	name := s.UserInfo.Name
	if name == "" {
		name = "Learner"
	}
	o := s.Overall
	summary := []string{
		kv("Learner", Bold(name)),
		kv("Score", o.TotalScore),
		kv("Answers", fmt.Sprintf("%d correct, %d wrong", o.TotalCorrect, o.TotalWrong)),
		kv("Accuracy", AccuracyStyled(s.Accuracy, o.TotalCorrect+o.TotalWrong)),
		kv("Streak", fmt.Sprintf("%d (best %d)", o.CurrentStreak, o.BestStreak)),
		kv("Days learned", o.DaysLearned),
		kv("Time", FormatMinutes(o.TotalMinutes)),
		kv("Stars", StyleYellow.Render(strconv.Itoa(s.Rewards.Stars)+"★")),
		kv("Reviews", s.TotalReviews),
		kv("Mastered", s.TotalMastered),
		kv("Wrong book", s.WrongCount),
	}
	b.WriteString(RenderBox("Progress", strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(domain.Modules))
	for _, m := range domain.Modules {
		ms := s.Modules[m]
		rows = append(rows, []string{
			ModuleLabel(m),
			LevelStars(ms.Level),
			strconv.Itoa(ms.Score),
			strconv.Itoa(ms.Correct),
			strconv.Itoa(ms.Wrong),
			AccuracyStyled(ms.Accuracy(), ms.Attempts()),
			FormatMinutes(ms.TimeSpentM),
		})
	}
	b.WriteString(RenderTable([]string{"MODULE", "LEVEL", "SCORE", "CORRECT", "WRONG", "ACCURACY", "TIME"}, rows))

	if len(s.Rewards.Badges) > 0 {
		b.WriteString("\n" + Header("Badges") + "\n")
		for _, id := range s.Rewards.Badges {
			if badge, ok := achievement.Lookup(id); ok {
				b.WriteString(fmt.Sprintf("%s %s %s\n", badge.Icon, Bold(badge.Name), Dim(badge.Description)))
			} else {
				b.WriteString(Dim(id) + "\n")
			}
		}
	}
	return b.String()
}
