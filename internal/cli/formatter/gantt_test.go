package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/layout"
	"github.com/mfurukawa/girder/internal/testutil"
	"github.com/mfurukawa/girder/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildChart(t *testing.T, tasks []*domain.Task, start, end, today time.Time) (*timeline.Timeline, *layout.Chart) {
	t.Helper()
	tl, err := timeline.Generate(start, end, timeline.ZoomDay, time.Monday)
	require.NoError(t, err)
	chart := layout.BuildRows(tasks, layout.Opts{
		Start: start, Zoom: timeline.ZoomDay, CellWidth: 10, Today: today,
	})
	return tl, chart
}

func TestRenderGantt_RowPerTaskWithBars(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 14), date(2024, 1, 8)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "Excavation",
			testutil.WithPlan(date(2024, 1, 3), date(2024, 1, 9))),
		testutil.NewTestTask("p1", "Backfill",
			testutil.WithPlan(date(2024, 1, 10), date(2024, 1, 12))),
	}
	tl, chart := buildChart(t, tasks, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{ItemChars: 2, LabelChars: 16, Today: today})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Two header lines, one today line, one line per task.
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Jan 2024")
	assert.Contains(t, lines[3], "Excavation")
	assert.Contains(t, lines[3], "█")
	assert.Contains(t, lines[4], "Backfill")
}

func TestRenderGantt_BarAlignsWithHeaderColumns(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 10), date(2024, 1, 2)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "A",
			testutil.WithPlan(date(2024, 1, 3), date(2024, 1, 4))),
	}
	tl, chart := buildChart(t, tasks, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{ItemChars: 2, LabelChars: 10, Today: today})
	lines := strings.Split(out, "\n")
	row := stripANSI(lines[3])

	// Jan 3 is the third item: bar starts at label width + 2 item widths.
	bar := []rune(row)[10:]
	assert.Equal(t, strings.Repeat(" ", 4), string(bar[:4]))
	assert.Equal(t, "████", string(bar[4:8]), "two-day bar spans two item cells")
}

func TestRenderGantt_IndentsChildren(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 14), date(2024, 1, 8)
	parent := testutil.NewTestTask("p1", "Phase",
		testutil.WithType(domain.TypeGroup),
		testutil.WithPlan(date(2024, 1, 1), date(2024, 1, 12)))
	child := testutil.NewTestTask("p1", "Dig",
		testutil.WithParent(parent.ID),
		testutil.WithPlan(date(2024, 1, 3), date(2024, 1, 9)))
	tl, chart := buildChart(t, []*domain.Task{parent, child}, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{ItemChars: 2, LabelChars: 16, Today: today})
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(stripANSI(lines[4]), "  Dig"), "children indent under their group")
}

func TestRenderGantt_TruncatesLongNames(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 7), date(2024, 1, 2)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "An unreasonably long construction task name",
			testutil.WithPlan(date(2024, 1, 2), date(2024, 1, 3))),
	}
	tl, chart := buildChart(t, tasks, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{ItemChars: 2, LabelChars: 12, Today: today})
	lines := strings.Split(out, "\n")
	assert.Contains(t, stripANSI(lines[3]), "…")
}

func TestRenderGantt_SidebarColumns(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 14), date(2024, 1, 8)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "Excavation",
			testutil.WithPlan(date(2024, 1, 3), date(2024, 1, 9)),
			testutil.WithCost(500),
			testutil.WithProgress(40, today)),
		testutil.NewTestTask("p1", "Backfill",
			testutil.WithPlan(date(2024, 1, 10), date(2024, 1, 12)),
			testutil.WithCost(1500)),
	}
	tl, chart := buildChart(t, tasks, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{
		ItemChars: 2, LabelChars: 16, Today: today,
		Columns: layout.NewColumnSet(layout.ColumnPeriod, layout.ColumnWeight, layout.ColumnProgress),
	})
	lines := strings.Split(out, "\n")

	assert.Contains(t, stripANSI(lines[2]), "PERIOD")
	assert.Contains(t, stripANSI(lines[2]), "PROGRESS")
	row := stripANSI(lines[3])
	assert.Contains(t, row, "01/03 – 01/09")
	assert.Contains(t, row, "25.0%", "weight is the cost share of the project total")
	assert.Contains(t, row, "40%")
}

func TestRenderGantt_CursorGutter(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 7), date(2024, 1, 2)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "First", testutil.WithPlan(date(2024, 1, 2), date(2024, 1, 3))),
		testutil.NewTestTask("p1", "Second",
			testutil.WithPlan(date(2024, 1, 4), date(2024, 1, 5)),
			testutil.WithOrder(1)),
	}
	tl, chart := buildChart(t, tasks, start, end, today)

	out := RenderGantt(tl, chart, 10, GanttOptions{
		ItemChars: 2, LabelChars: 16, Today: today, ShowCursor: true, Cursor: 1,
	})
	lines := strings.Split(out, "\n")

	assert.True(t, strings.HasPrefix(stripANSI(lines[4]), "▸ Second"))
	assert.True(t, strings.HasPrefix(stripANSI(lines[3]), "  First"))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestPadRightMeasuresVisibleWidth(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("ab")
	assert.Equal(t, 5, lipgloss.Width(padRight(styled, 5)))
}
