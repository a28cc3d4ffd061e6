package formatter

import (
	"fmt"
	"strings"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/layout"
)

// Character widths of the sidebar columns, including a trailing gap.
var columnChars = map[layout.Column]int{
	layout.ColumnCost:           10,
	layout.ColumnWeight:         7,
	layout.ColumnQuantity:       7,
	layout.ColumnPlanDuration:   6,
	layout.ColumnActualDuration: 6,
	layout.ColumnPeriod:         16,
	layout.ColumnTeam:           10,
	layout.ColumnProgress:       13,
}

var columnTitles = map[layout.Column]string{
	layout.ColumnCost:           "COST",
	layout.ColumnWeight:         "WT%",
	layout.ColumnQuantity:       "QTY",
	layout.ColumnPlanDuration:   "PLAN",
	layout.ColumnActualDuration: "ACT",
	layout.ColumnPeriod:         "PERIOD",
	layout.ColumnTeam:           "TEAM",
	layout.ColumnProgress:       "PROGRESS",
}

// orderedColumns filters the enabled set into display order.
func orderedColumns(set layout.ColumnSet) []layout.Column {
	var cols []layout.Column
	for _, c := range layout.AllColumns {
		if set[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

func sidebarChars(cols []layout.Column) int {
	total := 0
	for _, c := range cols {
		total += columnChars[c]
	}
	return total
}

func renderColumnTitles(cols []layout.Column) string {
	var b strings.Builder
	for _, c := range cols {
		b.WriteString(StyleDim.Render(padRight(columnTitles[c], columnChars[c])))
	}
	return b.String()
}

// renderColumnCells draws one row's sidebar cells. totalCost scales the
// weight column; groups leave value cells blank since their numbers
// aggregate from children.
func renderColumnCells(cols []layout.Column, row layout.Row, totalCost float64) string {
	t := row.Task
	var b strings.Builder
	for _, c := range cols {
		w := columnChars[c]
		var cell string
		switch c {
		case layout.ColumnCost:
			if !t.IsGroup() && t.Cost != 0 {
				cell = fmt.Sprintf("%.0f", t.Cost)
			}
		case layout.ColumnWeight:
			if !t.IsGroup() && totalCost > 0 {
				cell = fmt.Sprintf("%.1f%%", t.Cost/totalCost*100)
			}
		case layout.ColumnQuantity:
			if !t.IsGroup() && t.Quantity != 0 {
				cell = fmt.Sprintf("%.0f", t.Quantity)
			}
		case layout.ColumnPlanDuration:
			cell = fmt.Sprintf("%dd", t.PlanDuration())
		case layout.ColumnActualDuration:
			if t.ActualStartDate != nil && t.ActualEndDate != nil {
				days := int(domain.Date(*t.ActualEndDate).Sub(domain.Date(*t.ActualStartDate)).Hours()/24) + 1
				cell = fmt.Sprintf("%dd", days)
			}
		case layout.ColumnPeriod:
			cell = PeriodLabel(t.PlanStartDate, t.PlanEndDate)
		case layout.ColumnTeam:
			cell = truncate(t.Responsible, w-1)
		case layout.ColumnProgress:
			if !t.IsGroup() {
				cell = RenderProgress(float64(t.Progress)/100, 6)
			}
		}
		b.WriteString(padRight(cell, w))
	}
	return b.String()
}
