package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mfurukawa/girder/internal/layout"
	"github.com/mfurukawa/girder/internal/timeline"
)

// GanttOptions sizes the terminal rendering of a chart.
type GanttOptions struct {
	// ItemChars is the character width of one timeline item.
	ItemChars int
	// LabelChars is the character width of the task label column.
	LabelChars int
	Today      time.Time
	// ShowCursor reserves a selection gutter and highlights the row at
	// Cursor. Off by default so static output has no gutter.
	ShowCursor bool
	Cursor     int
	// Columns enables sidebar columns between the label and the grid,
	// drawn in AllColumns order.
	Columns layout.ColumnSet
}

func (o GanttOptions) defaults() GanttOptions {
	if o.ItemChars <= 0 {
		o.ItemChars = 3
	}
	if o.LabelChars <= 0 {
		o.LabelChars = 28
	}
	return o
}

// RenderGantt draws the laid-out chart as text. The chart's pixel geometry
// is scaled to ItemChars characters per timeline item, so bars stay aligned
// with the header for any cell width the layout was computed with.
func RenderGantt(tl *timeline.Timeline, chart *layout.Chart, cellWidth float64, opts GanttOptions) string {
	opts = opts.defaults()
	scale := float64(opts.ItemChars) / cellWidth
	gridChars := len(tl.Items) * opts.ItemChars

	cols := orderedColumns(opts.Columns)
	sidebar := sidebarChars(cols)
	totalCost := 0.0
	for _, row := range chart.Rows {
		if !row.Task.IsGroup() {
			totalCost += row.Task.Cost
		}
	}

	var b strings.Builder
	writeGanttHeader(&b, tl, opts, sidebar)

	todayCol := -1
	if !opts.Today.IsZero() {
		x := timeline.DateToX(opts.Today, tl.Start, tl.Zoom, cellWidth)
		col := int(math.Round(x * scale))
		if col >= 0 && col < gridChars {
			todayCol = col
		}
	}
	// Column titles share the today-marker line; both sit left of the grid.
	b.WriteString(padRight("", opts.LabelChars))
	b.WriteString(renderColumnTitles(cols))
	if todayCol >= 0 {
		b.WriteString(strings.Repeat(" ", todayCol))
		b.WriteString(StyleRed.Render("▼"))
	}
	b.WriteString("\n")

	for i, row := range chart.Rows {
		labelWidth := opts.LabelChars
		if opts.ShowCursor {
			labelWidth -= 2
			if i == opts.Cursor {
				b.WriteString(StyleGreen.Render("▸ "))
			} else {
				b.WriteString("  ")
			}
		}
		name := strings.Repeat("  ", row.Depth) + row.Task.Name
		label := padRight(truncate(name, labelWidth-1), labelWidth)
		if row.Task.IsGroup() {
			label = StyleBold.Render(label)
		}
		b.WriteString(label)
		b.WriteString(renderColumnCells(cols, row, totalCost))
		b.WriteString(renderBarLine(row, scale, gridChars))
		b.WriteString("\n")
	}
	return b.String()
}

func writeGanttHeader(b *strings.Builder, tl *timeline.Timeline, opts GanttOptions, sidebar int) {
	b.WriteString(padRight("", opts.LabelChars+sidebar))
	for _, g := range tl.Groups {
		w := g.Count * opts.ItemChars
		b.WriteString(StyleHeader.Render(padRight(truncate(tl.GroupLabel(g), w), w)))
	}
	b.WriteString("\n")

	b.WriteString(padRight("", opts.LabelChars+sidebar))
	for _, item := range tl.Items {
		b.WriteString(StyleDim.Render(padRight(truncate(tl.ItemLabel(item), opts.ItemChars), opts.ItemChars)))
	}
	b.WriteString("\n")
}

// renderBarLine draws one grid row: spaces, then the plan bar, with the
// actual overlay drawn in a second color inside it.
func renderBarLine(row layout.Row, scale float64, gridChars int) string {
	planStart, planEnd := barSpan(row.PlanBar, scale, gridChars)

	actStart, actEnd := -1, -1
	if row.ActualBar != nil && row.ActualBar.W > 0 {
		actStart, actEnd = barSpan(*row.ActualBar, scale, gridChars)
	}

	planStyle := StyleBlue
	if row.Task.IsGroup() {
		planStyle = StyleDim
	}

	var b strings.Builder
	col := 0
	emit := func(upTo int, style lipgloss.Style, block string) {
		if upTo <= col {
			return
		}
		if block == " " {
			b.WriteString(strings.Repeat(" ", upTo-col))
		} else {
			b.WriteString(style.Render(strings.Repeat(block, upTo-col)))
		}
		col = upTo
	}

	emit(planStart, StyleDim, " ")
	if actStart >= 0 {
		emit(min(actStart, planEnd), planStyle, "█")
		emit(min(actEnd, gridChars), StyleGreen, "▓")
	}
	emit(planEnd, planStyle, "█")
	emit(gridChars, StyleDim, " ")
	return b.String()
}

// barSpan converts a pixel bar to a character column interval, at least one
// character wide so short tasks stay visible.
func barSpan(bar layout.Bar, scale float64, gridChars int) (int, int) {
	start := int(math.Round(bar.X * scale))
	end := int(math.Round((bar.X + bar.W) * scale))
	if end <= start {
		end = start + 1
	}
	if start < 0 {
		start = 0
	}
	if end > gridChars {
		end = gridChars
	}
	return start, end
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// PeriodLabel formats a plan interval for the period sidebar column.
func PeriodLabel(start, end time.Time) string {
	return fmt.Sprintf("%s – %s", start.Format("01/02"), end.Format("01/02"))
}
