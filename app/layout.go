package app

import "github.com/miosa/osa-vnav/ui/vlist"

const (
	toolbarHeight = 1
	statusHeight  = 1
	scrollbarSize = 1

	// Below this the list is clamped rather than shrunk further.
	minListWidth  = 8
	minListHeight = 3
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth  int
	TermHeight int
	ListWidth  int
	ListHeight int

	// The scrollbar runs along the scrolling axis: a column right of a
	// vertical list, a row under a horizontal one.
	Orientation vlist.Orientation
}

// ComputeLayout calculates the layout dimensions from the terminal size.
func ComputeLayout(termW, termH int, o vlist.Orientation) Layout {
	l := Layout{TermWidth: termW, TermHeight: termH, Orientation: o}
	l.ListWidth = termW
	l.ListHeight = termH - toolbarHeight - statusHeight
	if o == vlist.Horizontal {
		l.ListHeight -= scrollbarSize
	} else {
		l.ListWidth -= scrollbarSize
	}
	l.ListWidth = max(l.ListWidth, minListWidth)
	l.ListHeight = max(l.ListHeight, minListHeight)
	return l
}

// ListTop is the screen row of the first list line.
func (l Layout) ListTop() int { return toolbarHeight }
