package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func vgrid(n, dte int) Grid {
	return Grid{DataSize: n, DimensionToExtent: dte, Vertical: true}
}

func TestNextIndex_ColumnMoves(t *testing.T) {
	// Three columns: down from 5 reaches 8 only when 8 exists.
	assert.Equal(t, 8, NextIndex(vgrid(9, 3), 5, Down).Index)
	assert.False(t, NextIndex(vgrid(8, 3), 5, Down).Found())

	g := vgrid(8, 3)
	g.Wrap = true
	res := NextIndex(g, 5, Down)
	assert.Equal(t, 2, res.Index)
	assert.True(t, res.IsWrapped)
	assert.False(t, res.Forward, "a forward wrap approaches from above")
}

func TestNextIndex_Table(t *testing.T) {
	tests := []struct {
		name      string
		grid      Grid
		from      int
		dir       Direction
		want      int
		isWrapped bool
	}{
		{"up from top row propagates", vgrid(12, 3), 1, Up, -1, false},
		{"up", vgrid(12, 3), 7, Up, 4, false},
		{"right within row", vgrid(12, 3), 3, Right, 4, false},
		{"right at row end propagates", vgrid(12, 3), 5, Right, -1, false},
		{"left at row start propagates", vgrid(12, 3), 6, Left, -1, false},
		{"left", vgrid(12, 3), 8, Left, 7, false},
		{"right at data end propagates", vgrid(11, 3), 10, Right, -1, false},
		{"plain list down", vgrid(5, 1), 2, Down, 3, false},
		{"plain list right propagates", vgrid(5, 1), 2, Right, -1, false},
		{"out of range", vgrid(5, 1), 7, Down, -1, false},
		{"negative", vgrid(5, 1), -1, Down, -1, false},
		{"wrap up into partial last row skips it", Grid{DataSize: 8, DimensionToExtent: 3, Vertical: true, Wrap: true}, 2, Up, 5, true},
		{"wrap up lands in last row", Grid{DataSize: 8, DimensionToExtent: 3, Vertical: true, Wrap: true}, 1, Up, 7, true},
		{"wrap never applies to secondary moves", Grid{DataSize: 9, DimensionToExtent: 3, Vertical: true, Wrap: true}, 2, Right, -1, false},
		{"rtl swaps left and right", Grid{DataSize: 9, DimensionToExtent: 3, Vertical: true, RTL: true}, 1, Left, 2, false},
		{"horizontal right is primary", Grid{DataSize: 12, DimensionToExtent: 4}, 1, Right, 5, false},
		{"horizontal down is secondary", Grid{DataSize: 12, DimensionToExtent: 4}, 1, Down, 2, false},
		{"horizontal rtl left is primary forward", Grid{DataSize: 12, DimensionToExtent: 4, RTL: true}, 1, Left, 5, false},
		{"none", vgrid(9, 3), 4, None, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NextIndex(tt.grid, tt.from, tt.dir)
			assert.Equal(t, tt.want, res.Index)
			assert.Equal(t, tt.isWrapped, res.IsWrapped)
		})
	}
}

func TestNextIndex_SkipsDisabled(t *testing.T) {
	g := vgrid(12, 3)
	g.Disabled = func(i int) bool { return i == 4 || i == 7 }

	assert.Equal(t, 10, NextIndex(g, 1, Down).Index)
	assert.Equal(t, 5, NextIndex(g, 3, Right).Index)
	assert.Equal(t, 3, NextIndex(g, 5, Left).Index)

	g.Disabled = func(i int) bool { return i%3 == 1 && i > 1 }
	assert.False(t, NextIndex(g, 1, Down).Found())
}

func TestNextIndex_Direction(t *testing.T) {
	g := vgrid(30, 3)
	assert.True(t, NextIndex(g, 4, Down).Forward)
	assert.False(t, NextIndex(g, 4, Up).Forward)
	assert.True(t, NextIndex(g, 4, Down).Primary)
	assert.False(t, NextIndex(g, 4, Right).Primary)

	g.Wrap = true
	res := NextIndex(g, 1, Up)
	assert.True(t, res.IsWrapped)
	assert.True(t, res.Forward, "a backward wrap approaches from below")
	assert.Equal(t, 28, res.Index)
}

func TestJumpIndex(t *testing.T) {
	g := vgrid(100, 3)

	assert.Equal(t, 16, JumpIndex(g, 1, Down, 5).Index)
	assert.Equal(t, 1, JumpIndex(g, 16, Up, 5).Index)
	assert.Equal(t, 1, JumpIndex(g, 7, Up, 10).Index)
	// Last row holding column 2 is row 32 (index 98); 99 would be column 0.
	assert.Equal(t, 98, JumpIndex(g, 89, Down, 10).Index)
	assert.Equal(t, 97, JumpIndex(g, 91, Down, 10).Index)
	assert.False(t, JumpIndex(g, 98, Down, 4).Found())
	assert.False(t, JumpIndex(g, 4, Right, 4).Found())
	assert.False(t, JumpIndex(g, 4, Down, 0).Found())

	g.Disabled = func(i int) bool { return i == 16 }
	assert.Equal(t, 13, JumpIndex(g, 1, Down, 5).Index)
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection(" Up ")
	assert.True(t, ok)
	assert.Equal(t, Up, d)
	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, "down", Down.String())
}
