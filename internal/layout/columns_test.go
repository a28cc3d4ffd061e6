package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStickyWidth_Deterministic(t *testing.T) {
	allOn := NewColumnSet(AllColumns...)
	initial := StickyWidth(allOn, 200, 3)

	// Toggle everything off and back on; same width must come back.
	toggled := NewColumnSet()
	for _, c := range AllColumns {
		toggled[c] = false
	}
	assert.Equal(t, 200.0, StickyWidth(toggled, 200, 3), "all off leaves only the base label column")
	for _, c := range AllColumns {
		toggled[c] = true
	}
	assert.Equal(t, initial, StickyWidth(toggled, 200, 3))
}

func TestStickyWidth_OrderIndependent(t *testing.T) {
	a := NewColumnSet(ColumnCost, ColumnTeam, ColumnProgress)
	b := NewColumnSet(ColumnProgress, ColumnCost, ColumnTeam)
	assert.Equal(t, StickyWidth(a, 180, 2), StickyWidth(b, 180, 2))
}

func TestStickyWidth_SumsEnabledColumns(t *testing.T) {
	visible := NewColumnSet(ColumnCost, ColumnWeight)
	assert.Equal(t, 200+80+64.0, StickyWidth(visible, 200, 1))
}

func TestColumnWidth_TeamCapped(t *testing.T) {
	assert.Equal(t, teamAvatarWidth, ColumnWidth(ColumnTeam, 0), "empty team still reserves one avatar")
	assert.Equal(t, 3*teamAvatarWidth, ColumnWidth(ColumnTeam, 3))
	assert.Equal(t, float64(teamMaxAvatars)*teamAvatarWidth, ColumnWidth(ColumnTeam, 12), "avatar count caps")
}
