package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/mfurukawa/girder/internal/scurve"
)

// RenderScurve plots the cumulative plan and actual series as a text chart,
// one column per timeline item. The actual line stops at the last date with
// recorded progress.
func RenderScurve(series *scurve.Series, height int) string {
	if len(series.Points) == 0 {
		return StyleDim.Render("no data") + "\n"
	}
	if height < 4 {
		height = 4
	}

	cols := len(series.Points)
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	rowFor := func(pct float64) int {
		r := height - 1 - int(math.Round(pct/100*float64(height-1)))
		if r < 0 {
			r = 0
		}
		if r >= height {
			r = height - 1
		}
		return r
	}

	for i, p := range series.Points {
		grid[rowFor(p.Plan)][i] = '·'
	}
	for i, p := range series.Points {
		if !series.HasActual(p.Date) {
			break
		}
		grid[rowFor(p.Actual)][i] = '●'
	}

	var b strings.Builder
	for i, line := range grid {
		axis := "    "
		switch i {
		case 0:
			axis = "100%"
		case height - 1:
			axis = "  0%"
		}
		b.WriteString(StyleDim.Render(axis + " ┤"))
		b.WriteString(colorLine(string(line)))
		b.WriteString("\n")
	}

	last := series.Points[cols-1]
	b.WriteString(fmt.Sprintf("%s plan %.1f%%", StyleBlue.Render("·"), last.Plan))
	if series.MaxActualDate != nil {
		latest := latestActual(series)
		b.WriteString(fmt.Sprintf("   %s actual %.1f%% (through %s)",
			StyleYellow.Render("●"), latest, series.MaxActualDate.Format("2006-01-02")))
	}
	b.WriteString("\n")
	return b.String()
}

func latestActual(series *scurve.Series) float64 {
	latest := 0.0
	for _, p := range series.Points {
		if series.HasActual(p.Date) {
			latest = p.Actual
		}
	}
	return latest
}

func colorLine(line string) string {
	var b strings.Builder
	for _, r := range line {
		switch r {
		case '·':
			b.WriteString(StyleBlue.Render("·"))
		case '●':
			b.WriteString(StyleYellow.Render("●"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
