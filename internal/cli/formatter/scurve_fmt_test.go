package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/scurve"
	"github.com/mfurukawa/girder/internal/testutil"
	"github.com/mfurukawa/girder/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScurve(t *testing.T) {
	start, end, today := date(2024, 1, 1), date(2024, 1, 10), date(2024, 1, 10)
	tl, err := timeline.Generate(start, end, timeline.ZoomDay, time.Monday)
	require.NoError(t, err)

	doneStart, doneEnd := date(2024, 1, 1), date(2024, 1, 5)
	tasks := []*domain.Task{
		testutil.NewTestTask("p1", "Done",
			testutil.WithPlan(date(2024, 1, 1), date(2024, 1, 5)),
			testutil.WithProgress(100, doneEnd),
			testutil.WithActuals(&doneStart, &doneEnd)),
		testutil.NewTestTask("p1", "Pending",
			testutil.WithPlan(date(2024, 1, 6), date(2024, 1, 10))),
	}
	series := scurve.Compute(tasks, tl, scurve.ModePhysical, 10, today)

	out := RenderScurve(series, 6)
	plain := stripANSI(out)

	assert.Contains(t, plain, "100%")
	assert.Contains(t, plain, "0%")
	assert.Contains(t, plain, "plan 100.0%")
	assert.Contains(t, plain, "actual 50.0%")
	assert.Contains(t, plain, "through 2024-01-05")
	assert.Equal(t, 7, strings.Count(out, "\n"), "height rows plus the legend")
}

func TestRenderScurve_Empty(t *testing.T) {
	out := RenderScurve(&scurve.Series{}, 6)
	assert.Contains(t, stripANSI(out), "no data")
}
