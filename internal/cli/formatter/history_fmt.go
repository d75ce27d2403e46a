package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/service"
)

// FormatHistory renders a journal summary.
func FormatHistory(h *service.HistorySummary) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Last %d days", h.Days)) + "\n")
	if len(h.Modules) == 0 && h.UnattributedMinutes == 0 {
		b.WriteString(Dim("No activity recorded.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(h.Modules))
	for _, a := range h.Modules {
		rows = append(rows, []string{
			ModuleLabel(a.Module),
			strconv.Itoa(a.Answers),
			AccuracyStyled(a.Accuracy, a.Answers),
			strconv.Itoa(a.Points),
			FormatMinutes(a.Minutes),
			strconv.Itoa(a.LevelChanges),
		})
	}
	b.WriteString(RenderTable([]string{"MODULE", "ANSWERS", "ACCURACY", "POINTS", "TIME", "LEVEL CHANGES"}, rows))
	if h.UnattributedMinutes > 0 {
		b.WriteString(Dim(fmt.Sprintf("Other play time: %s", FormatMinutes(h.UnattributedMinutes))) + "\n")
	}
	b.WriteString(fmt.Sprintf("%s answers · %s\n", Bold(strconv.Itoa(h.TotalAnswers)), Bold(FormatMinutes(h.TotalMinutes))))
	return b.String()
}

// FormatLevelHistory lists a module's level transitions, oldest first.
func FormatLevelHistory(changes []*domain.LevelChangeEvent) string {
	if len(changes) == 0 {
		return Dim("No level changes.") + "\n"
	}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		source := "auto"
		if c.AnswerEventID == nil {
			source = "manual"
		}
		rows = append(rows, []string{
			Dim(c.ChangedAt.Local().Format("2006-01-02 15:04")),
			fmt.Sprintf("%d → %d", c.FromLevel, c.ToLevel),
			source,
		})
	}
	return RenderTable([]string{"WHEN", "LEVEL", "SOURCE"}, rows)
}
