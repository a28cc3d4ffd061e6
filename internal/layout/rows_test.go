package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/timeline"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayOpts() Opts {
	return Opts{
		Start:     date(2024, 1, 1),
		Zoom:      timeline.ZoomDay,
		CellWidth: 10,
		Today:     date(2024, 1, 15),
	}
}

func leaf(id, name string, order int, start, end time.Time) *domain.Task {
	return &domain.Task{
		ID: id, Type: domain.TypeTask, Name: name, Order: order,
		PlanStartDate: start, PlanEndDate: end,
		Status: domain.StatusNotStarted,
	}
}

func TestBuildRows_DepthFirstSiblingOrder(t *testing.T) {
	group := &domain.Task{ID: "g", Type: domain.TypeGroup, Name: "Foundation", Order: 1,
		PlanStartDate: date(2024, 1, 1), PlanEndDate: date(2024, 1, 1)}
	a := leaf("a", "Formwork", 2, date(2024, 1, 2), date(2024, 1, 4))
	b := leaf("b", "Rebar", 1, date(2024, 1, 5), date(2024, 1, 8))
	a.ParentTaskID, b.ParentTaskID = strPtr("g"), strPtr("g")
	after := leaf("z", "Backfill", 5, date(2024, 1, 9), date(2024, 1, 10))

	chart := BuildRows([]*domain.Task{after, a, group, b}, dayOpts())
	require.Len(t, chart.Rows, 4)

	assert.Equal(t, "g", chart.Rows[0].Task.ID)
	assert.Equal(t, 0, chart.Rows[0].Depth)
	assert.Equal(t, "b", chart.Rows[1].Task.ID, "siblings sort by Order ascending")
	assert.Equal(t, 1, chart.Rows[1].Depth)
	assert.Equal(t, "a", chart.Rows[2].Task.ID)
	assert.Equal(t, "z", chart.Rows[3].Task.ID)
	for i, r := range chart.Rows {
		assert.Equal(t, i, r.Index)
	}
}

func TestBuildRows_PlanBarEndInclusive(t *testing.T) {
	task := leaf("t", "Excavation", 0, date(2024, 1, 3), date(2024, 1, 5))
	chart := BuildRows([]*domain.Task{task}, dayOpts())

	bar := chart.Rows[0].PlanBar
	assert.Equal(t, 20.0, bar.X)
	assert.Equal(t, 30.0, bar.W, "three inclusive days at 10px each")
}

func TestBuildRows_WeekZoomBarsAlignWithHeaderColumns(t *testing.T) {
	// Mid-week range start: the generated grid snaps back to Monday 01-01,
	// so a task starting on the second week item must begin exactly one
	// column in, not at a fractional offset.
	tl, err := timeline.Generate(date(2024, 1, 3), date(2024, 1, 20), timeline.ZoomWeek, time.Monday)
	require.NoError(t, err)
	require.Len(t, tl.Items, 3)

	task := leaf("t", "Roofing", 0, tl.Items[1], tl.Items[1].AddDate(0, 0, 6))
	chart := BuildRows([]*domain.Task{task}, Opts{
		Start:     tl.Start,
		Zoom:      timeline.ZoomWeek,
		CellWidth: 56,
		Today:     date(2024, 1, 10),
	})

	bar := chart.Rows[0].PlanBar
	assert.Equal(t, 56.0, bar.X, "bar begins at the left edge of week column 1")
	assert.Equal(t, 56.0, bar.W, "one inclusive week fills one column")
}

func TestBuildRows_GroupSpansChildren(t *testing.T) {
	group := &domain.Task{ID: "g", Type: domain.TypeGroup, Name: "Structure",
		PlanStartDate: date(2024, 1, 20), PlanEndDate: date(2024, 1, 20)}
	early := leaf("a", "Columns", 0, date(2024, 1, 2), date(2024, 1, 6))
	late := leaf("b", "Slab", 1, date(2024, 1, 8), date(2024, 1, 12))
	early.ParentTaskID, late.ParentTaskID = strPtr("g"), strPtr("g")

	chart := BuildRows([]*domain.Task{group, early, late}, dayOpts())
	bar := chart.Rows[0].PlanBar
	assert.Equal(t, 10.0, bar.X, "group starts at min child start")
	assert.Equal(t, 120.0, bar.Right(), "group ends at max child end (inclusive)")
}

func TestBuildRows_CollapsedGroupKeepsAggregatedBar(t *testing.T) {
	group := &domain.Task{ID: "g", Type: domain.TypeGroup, Name: "Structure",
		PlanStartDate: date(2024, 1, 1), PlanEndDate: date(2024, 1, 1)}
	child := leaf("a", "Columns", 0, date(2024, 1, 2), date(2024, 1, 6))
	child.ParentTaskID = strPtr("g")

	opts := dayOpts()
	opts.Collapsed = map[string]bool{"g": true}
	chart := BuildRows([]*domain.Task{group, child}, opts)

	require.Len(t, chart.Rows, 1, "descendants hidden")
	assert.Equal(t, 10.0, chart.Rows[0].PlanBar.X, "span still aggregates hidden children")
	assert.Equal(t, 60.0, chart.Rows[0].PlanBar.Right())
}

func TestBuildRows_ActualBar(t *testing.T) {
	opts := dayOpts() // today = Jan 15

	t.Run("absent until work starts", func(t *testing.T) {
		task := leaf("t", "Paint", 0, date(2024, 1, 1), date(2024, 1, 10))
		chart := BuildRows([]*domain.Task{task}, opts)
		assert.Nil(t, chart.Rows[0].ActualBar)
	})

	t.Run("in progress scales by completion", func(t *testing.T) {
		task := leaf("t", "Paint", 0, date(2024, 1, 1), date(2024, 1, 10))
		start := date(2024, 1, 5)
		task.ActualStartDate = &start
		task.Progress = 50
		task.Status = domain.StatusInProgress
		chart := BuildRows([]*domain.Task{task}, opts)

		bar := chart.Rows[0].ActualBar
		require.NotNil(t, bar)
		assert.Equal(t, 40.0, bar.X)
		// Jan 5 .. Jan 15 inclusive = 11 days = 110px, halved by progress.
		assert.Equal(t, 55.0, bar.W)
	})

	t.Run("completed draws full span to actual end", func(t *testing.T) {
		task := leaf("t", "Paint", 0, date(2024, 1, 1), date(2024, 1, 10))
		start, end := date(2024, 1, 2), date(2024, 1, 9)
		task.ActualStartDate, task.ActualEndDate = &start, &end
		task.Progress = 100
		task.Status = domain.StatusCompleted
		chart := BuildRows([]*domain.Task{task}, opts)

		bar := chart.Rows[0].ActualBar
		require.NotNil(t, bar)
		assert.Equal(t, 10.0, bar.X)
		assert.Equal(t, 80.0, bar.W, "Jan 2..9 inclusive, unscaled")
	})

	t.Run("right edge clamps to today", func(t *testing.T) {
		task := leaf("t", "Paint", 0, date(2024, 1, 1), date(2024, 1, 31))
		start := date(2024, 1, 10)
		end := date(2024, 1, 25) // after today
		task.ActualStartDate, task.ActualEndDate = &start, &end
		task.Progress = 100
		task.Status = domain.StatusCompleted
		chart := BuildRows([]*domain.Task{task}, opts)

		bar := chart.Rows[0].ActualBar
		require.NotNil(t, bar)
		assert.Equal(t, 150.0, bar.Right(), "overlay never extends past today")
	})
}

func TestBuildRows_DependencyLinks(t *testing.T) {
	pred := leaf("p", "Excavation", 0, date(2024, 1, 1), date(2024, 1, 5))
	succ := leaf("s", "Footings", 1, date(2024, 1, 4), date(2024, 1, 8))
	succ.Predecessors = []string{"p", "ghost"}

	chart := BuildRows([]*domain.Task{pred, succ}, dayOpts())
	require.Len(t, chart.Links, 1, "unknown predecessor ids are skipped")

	link := chart.Links[0]
	assert.Equal(t, 0, link.FromRow)
	assert.Equal(t, 1, link.ToRow)
	assert.Equal(t, 50.0, link.FromX, "predecessor bar right edge")
	assert.Equal(t, 30.0, link.ToX, "successor bar start, even though it overlaps the predecessor")
}

func strPtr(s string) *string { return &s }
