// Package spatial implements directional (D-pad) navigation over a
// virtualized grid: the pure next-index math, a reducer that turns key
// events into effects, a coordinator that executes those effects against a
// focus host and a scroll host, and the focus-driven scroll sync.
package spatial

import "strings"

// Direction is a D-pad direction.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return None, false
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

// Grid is the snapshot of layout facts the navigation math needs.
type Grid struct {
	DataSize          int
	DimensionToExtent int
	Vertical          bool
	RTL               bool
	Wrap              bool
	Disabled          func(index int) bool
}

func (g Grid) disabled(i int) bool {
	return g.Disabled != nil && g.Disabled(i)
}

// axisMove classifies a direction against the grid's orientation.
type axisMove int

const (
	moveNone axisMove = iota
	movePrimaryForward
	movePrimaryBackward
	moveSecondaryForward
	moveSecondaryBackward
)

func (g Grid) classify(d Direction) axisMove {
	right, left := d == Right, d == Left
	if g.RTL {
		right, left = left, right
	}
	if g.Vertical {
		switch {
		case d == Down:
			return movePrimaryForward
		case d == Up:
			return movePrimaryBackward
		case right:
			return moveSecondaryForward
		case left:
			return moveSecondaryBackward
		}
		return moveNone
	}
	switch {
	case right:
		return movePrimaryForward
	case left:
		return movePrimaryBackward
	case d == Down:
		return moveSecondaryForward
	case d == Up:
		return moveSecondaryBackward
	}
	return moveNone
}

// Result is the outcome of a next-index lookup. Index is -1 when there is no
// target and the input should propagate.
type Result struct {
	Index     int
	IsWrapped bool
	Forward   bool // approach moves toward higher lines
	Primary   bool // move crossed lines
}

// Found reports whether the lookup produced a target.
func (r Result) Found() bool { return r.Index >= 0 }

// NextIndex returns the item reached from index by moving in d.
//
// Primary moves keep the column and skip disabled items. A target past the
// data (a partial last line) counts as missing. With wrapping on, a missing
// target restarts from the opposite edge in the same column. Secondary
// moves stay inside the line, skip disabled items and never wrap.
// An out-of-range index has no next index.
func NextIndex(g Grid, index int, d Direction) Result {
	res := Result{Index: -1}
	n, dte := g.DataSize, g.DimensionToExtent
	if index < 0 || index >= n || dte < 1 {
		return res
	}

	row, col := index/dte, index%dte
	lastRow := (n - 1) / dte

	switch g.classify(d) {
	case moveSecondaryForward:
		res.Forward = true
		for i := index + 1; i < n && i/dte == row; i++ {
			if !g.disabled(i) {
				res.Index = i
				return res
			}
		}

	case moveSecondaryBackward:
		for i := index - 1; i >= 0 && i/dte == row; i-- {
			if !g.disabled(i) {
				res.Index = i
				return res
			}
		}

	case movePrimaryForward:
		res.Forward, res.Primary = true, true
		for r := row + 1; r <= lastRow; r++ {
			if i := r*dte + col; i < n && !g.disabled(i) {
				res.Index = i
				return res
			}
		}
		if g.Wrap {
			for r := 0; r < row; r++ {
				if i := r*dte + col; !g.disabled(i) {
					res.Index, res.IsWrapped, res.Forward = i, true, false
					return res
				}
			}
		}

	case movePrimaryBackward:
		res.Primary = true
		for r := row - 1; r >= 0; r-- {
			if i := r*dte + col; !g.disabled(i) {
				res.Index = i
				return res
			}
		}
		if g.Wrap {
			for r := lastRow; r > row; r-- {
				if i := r*dte + col; i < n && !g.disabled(i) {
					res.Index, res.IsWrapped, res.Forward = i, true, true
					return res
				}
			}
		}
	}
	return res
}

// JumpIndex moves lines whole lines along the primary axis in d, stopping at
// the first or last line that holds the column. It never wraps and returns
// -1 when index cannot move.
func JumpIndex(g Grid, index int, d Direction, lines int) Result {
	res := Result{Index: -1, Primary: true}
	n, dte := g.DataSize, g.DimensionToExtent
	if index < 0 || index >= n || dte < 1 || lines < 1 {
		return res
	}
	row, col := index/dte, index%dte
	lastRow := (n - 1) / dte
	if lastRow*dte+col >= n {
		lastRow--
	}

	var target int
	switch g.classify(d) {
	case movePrimaryForward:
		res.Forward = true
		target = min(row+lines, lastRow)
		for ; target > row && g.disabled(target*dte+col); target-- {
		}
	case movePrimaryBackward:
		target = max(row-lines, 0)
		for ; target < row && g.disabled(target*dte+col); target++ {
		}
	default:
		return res
	}
	if target == row {
		return res
	}
	res.Index = target*dte + col
	return res
}
