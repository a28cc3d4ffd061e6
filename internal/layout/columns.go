// Package layout computes the geometry of the Gantt view: the sticky
// sidebar column widths and the per-row bar positions.
package layout

// Column is one optional sidebar column toggle.
type Column string

const (
	ColumnCost           Column = "cost"
	ColumnWeight         Column = "weight"
	ColumnQuantity       Column = "quantity"
	ColumnPlanDuration   Column = "planDuration"
	ColumnActualDuration Column = "actualDuration"
	ColumnPeriod         Column = "period"
	ColumnTeam           Column = "team"
	ColumnProgress       Column = "progress"
)

// AllColumns lists every optional column in display order.
var AllColumns = []Column{
	ColumnCost, ColumnWeight, ColumnQuantity, ColumnPlanDuration,
	ColumnActualDuration, ColumnPeriod, ColumnTeam, ColumnProgress,
}

// fixedColumnWidths are the documented pixel widths of the fixed columns.
var fixedColumnWidths = map[Column]float64{
	ColumnCost:           80,
	ColumnWeight:         64,
	ColumnQuantity:       64,
	ColumnPlanDuration:   72,
	ColumnActualDuration: 72,
	ColumnPeriod:         120,
	ColumnProgress:       88,
}

// The team column grows with the number of assignee avatars, capped.
const (
	teamAvatarWidth = 28.0
	teamMaxAvatars  = 5
)

// ColumnSet is a set of enabled sidebar columns.
type ColumnSet map[Column]bool

// NewColumnSet builds a set from the given columns.
func NewColumnSet(cols ...Column) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = true
	}
	return s
}

// ColumnWidth returns the pixel width of a single column. teamSize only
// affects the team column.
func ColumnWidth(col Column, teamSize int) float64 {
	if col == ColumnTeam {
		if teamSize < 1 {
			teamSize = 1
		}
		if teamSize > teamMaxAvatars {
			teamSize = teamMaxAvatars
		}
		return float64(teamSize) * teamAvatarWidth
	}
	return fixedColumnWidths[col]
}

// StickyWidth computes the width of the sticky left sidebar: the fixed label
// column plus every enabled optional column. The result depends only on
// which columns are enabled, never on toggle order.
func StickyWidth(visible ColumnSet, baseWidth float64, teamSize int) float64 {
	width := baseWidth
	for _, col := range AllColumns {
		if visible[col] {
			width += ColumnWidth(col, teamSize)
		}
	}
	return width
}
