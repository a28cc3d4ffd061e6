package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfurukawa/girder/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
view:
  zoom: week
  week_start: sunday
  cell_width_day: 32
  cell_width_week: 64
  label_width: 240
  columns: [cost, team, progress]

colors:
  plan_bar: "#123456"

svg:
  row_height: 32

import:
  default_date: 2024-04-01
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	require.NoError(t, err)

	assert.Equal(t, "week", cfg.View.Zoom)
	assert.Equal(t, time.Sunday, cfg.WeekStart())
	assert.Equal(t, 32.0, cfg.View.CellWidthDay)
	assert.Equal(t, 64.0, cfg.CellWidth("week"))
	assert.Equal(t, 240.0, cfg.View.LabelWidth)
	assert.Equal(t, "#123456", cfg.Colors.PlanBar)
	assert.Equal(t, 32.0, cfg.SVG.RowHeight)

	cols := cfg.VisibleColumns()
	assert.True(t, cols[layout.ColumnCost])
	assert.True(t, cols[layout.ColumnTeam])
	assert.False(t, cols[layout.ColumnPeriod])
}

func TestParse_EmptyGetsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "day", cfg.View.Zoom)
	assert.Equal(t, time.Monday, cfg.WeekStart())
	assert.Equal(t, 24.0, cfg.CellWidth("day"))
	assert.Equal(t, 56.0, cfg.CellWidth("week"))
	assert.Equal(t, 96.0, cfg.CellWidth("month"))
	assert.NotEmpty(t, cfg.Colors.ActualBar)
	assert.True(t, cfg.VisibleColumns()[layout.ColumnProgress])
}

func TestParse_PartialKeepsDefaultsElsewhere(t *testing.T) {
	cfg, err := Parse([]byte("view:\n  zoom: month\n"))
	require.NoError(t, err)
	assert.Equal(t, "month", cfg.View.Zoom)
	assert.Equal(t, "monday", cfg.View.WeekStart)
	assert.Equal(t, 96.0, cfg.CellWidth("month"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("view:\n  zoom: fortnight\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown zoom")

	_, err = Parse([]byte("view:\n  week_start: caturday\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weekday")

	_, err = Parse([]byte("view:\n  columns: [bogus]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")

	_, err = Parse([]byte("import:\n  default_date: 01-02-2024\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "day", cfg.View.Zoom)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "girder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  zoom: week\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "week", cfg.View.Zoom)
}
