package vlist

import (
	"fmt"
	"math"
)

// Unbounded threshold edges.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Threshold is the hysteresis band on the primary scroll axis. The window
// shifts only when the scroll position leaves [Min, Max].
type Threshold struct {
	Min  int
	Max  int
	Base int
}

func (t Threshold) String() string {
	edge := func(v int) string {
		switch v {
		case NegInf:
			return "-inf"
		case PosInf:
			return "+inf"
		default:
			return fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("[%s, %s]/%d", edge(t.Min), edge(t.Max), t.Base)
}

// Window is the contiguous index range that currently owns render slots.
type Window struct {
	FirstIndex    int
	NumOfItems    int
	MaxFirstIndex int
}

// End is the exclusive upper index of the window, capped at dataSize.
func (w Window) End(dataSize int) int {
	return min(w.FirstIndex+w.NumOfItems, dataSize)
}

// Contains reports whether index is inside the window and the data.
func (w Window) Contains(index, dataSize int) bool {
	return index >= w.FirstIndex && index < w.End(dataSize)
}

// DefaultOverhang is the number of extra grid lines kept rendered beyond
// the visible client area.
const DefaultOverhang = 3

// MinOverhang is the smallest overhang that keeps the visible area covered
// while the threshold band lags behind the scroll position.
const MinOverhang = 2

// WindowManager owns firstIndex and the threshold band.
type WindowManager struct {
	metrics        Metrics
	overhang       int
	dataSize       int
	window         Window
	threshold      Threshold
	scrollPosition int
	direction      int
	ready          bool
}

// Window returns the current window.
func (w *WindowManager) Window() Window { return w.window }

// Threshold returns the current hysteresis band.
func (w *WindowManager) Threshold() Threshold { return w.threshold }

// ScrollPosition returns the last primary position seen by DidScroll.
func (w *WindowManager) ScrollPosition() int { return w.scrollPosition }

// Direction returns the sign of the last scroll movement: -1, 0 or 1.
func (w *WindowManager) Direction() int { return w.direction }

// Recompute recalculates numOfItems and maxFirstIndex from fresh metrics and
// picks a firstIndex.
//
// On the first call, or when the geometry changed, firstIndex is anchored
// one line before the line under scrollPos. When only the data size changed
// and the window sat at its maximum, growth of at least one full line
// re-anchors from scrollPos and smaller growth keeps firstIndex as is.
// Otherwise firstIndex is kept and clamped to the new maximum. The threshold
// is always re-derived from the resulting firstIndex, never widened in place.
func (w *WindowManager) Recompute(m Metrics, dataSize, overhang, scrollPos int) Window {
	if overhang < MinOverhang {
		overhang = MinOverhang
	}
	if dataSize < 0 {
		dataSize = 0
	}

	prev := w.window
	prevDataSize := w.dataSize
	wasAtMax := w.ready && prev.FirstIndex == prev.MaxFirstIndex
	geometryChanged := !w.ready ||
		m.DimensionToExtent != w.metrics.DimensionToExtent ||
		m.Primary.GridSize != w.metrics.Primary.GridSize ||
		m.Primary.ClientSize != w.metrics.Primary.ClientSize ||
		overhang != w.overhang

	w.metrics = m
	w.overhang = overhang
	w.dataSize = dataSize
	w.scrollPosition = scrollPos

	dte := m.DimensionToExtent
	lines := ceilDiv(m.Primary.ClientSize, m.Primary.GridSize) + overhang
	num := min(dataSize, dte*lines)
	maxFirst := 0
	if dataSize > num {
		maxFirst = ceilDiv(dataSize-num, dte) * dte
	}
	w.window.NumOfItems = num
	w.window.MaxFirstIndex = maxFirst

	var first int
	switch {
	case geometryChanged:
		first = w.anchor(scrollPos)
	case wasAtMax && dataSize > prevDataSize:
		if dataSize-prevDataSize < dte {
			first = prev.FirstIndex
		} else {
			first = w.anchor(scrollPos)
		}
	default:
		first = prev.FirstIndex
	}

	w.window.FirstIndex = clamp(first-first%dte, 0, maxFirst)
	w.syncThreshold()
	w.ready = true
	return w.window
}

// DidScroll feeds a new primary scroll position and shifts the window when
// the position leaves the threshold band. It reports whether firstIndex
// changed.
func (w *WindowManager) DidScroll(pos int) bool {
	switch {
	case pos > w.scrollPosition:
		w.direction = 1
	case pos < w.scrollPosition:
		w.direction = -1
	}
	w.scrollPosition = pos
	if !w.ready {
		return false
	}

	g := w.metrics.Primary.GridSize
	dte := w.metrics.DimensionToExtent
	th := w.threshold
	first := w.window.FirstIndex

	switch {
	case th.Max != PosInf && pos > th.Max:
		first += ceilDiv(pos-th.Max, g) * dte
	case th.Min != NegInf && pos < th.Min:
		first -= ceilDiv(th.Min-pos, g) * dte
	default:
		return false
	}

	first = clamp(first, 0, w.window.MaxFirstIndex)
	if first == w.window.FirstIndex {
		w.syncThreshold()
		return false
	}
	w.window.FirstIndex = first
	w.syncThreshold()
	return true
}

// anchor returns the aligned firstIndex for a window starting one line
// before the line under pos.
func (w *WindowManager) anchor(pos int) int {
	line := pos/w.metrics.Primary.GridSize - 1
	if line < 0 {
		line = 0
	}
	first := line * w.metrics.DimensionToExtent
	return clamp(first, 0, w.window.MaxFirstIndex)
}

// syncThreshold derives the band from firstIndex. The band starts at the
// first rendered line and spans Base; either edge is unbounded when the
// window cannot move further in that direction.
func (w *WindowManager) syncThreshold() {
	g := w.metrics.Primary.GridSize
	base := w.metrics.ThresholdBase
	lo := (w.window.FirstIndex / w.metrics.DimensionToExtent) * g
	th := Threshold{Min: lo, Max: lo + base, Base: base}
	if w.window.FirstIndex <= 0 {
		th.Min = NegInf
	}
	if w.window.FirstIndex >= w.window.MaxFirstIndex {
		th.Max = PosInf
	}
	w.threshold = th
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
