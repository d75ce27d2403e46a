package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().PaddingRight(2)

// RenderTable renders rows under bold headers with a single rule between
// them and no outer border.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(StyleHeader)
			}
			return cellStyle
		})
	return t.String() + "\n"
}
