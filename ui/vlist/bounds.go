package vlist

// ScrollBounds describes the scrollable extent on both physical axes.
type ScrollBounds struct {
	ClientWidth  int
	ClientHeight int
	ScrollWidth  int
	ScrollHeight int
	MaxLeft      int
	MaxTop       int
}

// MaxScroll returns the maximum offset on the primary axis of o.
func (b ScrollBounds) MaxScroll(o Orientation) int {
	if o == Horizontal {
		return b.MaxLeft
	}
	return b.MaxTop
}

// CalculateBounds derives the virtual extent of dataSize items laid out with m.
func CalculateBounds(m Metrics, dataSize int) ScrollBounds {
	primary := 0
	if lines := m.Lines(dataSize); lines > 0 {
		primary = lines*m.Primary.GridSize - m.Spacing
	}
	secondary := m.DimensionToExtent*m.Secondary.GridSize - m.Spacing
	if secondary < m.Secondary.ClientSize {
		secondary = m.Secondary.ClientSize
	}

	b := ScrollBounds{}
	if m.Orientation == Horizontal {
		b.ClientWidth, b.ClientHeight = m.Primary.ClientSize, m.Secondary.ClientSize
		b.ScrollWidth, b.ScrollHeight = primary, secondary
	} else {
		b.ClientWidth, b.ClientHeight = m.Secondary.ClientSize, m.Primary.ClientSize
		b.ScrollWidth, b.ScrollHeight = secondary, primary
	}
	b.MaxLeft = max(0, b.ScrollWidth-b.ClientWidth)
	b.MaxTop = max(0, b.ScrollHeight-b.ClientHeight)
	return b
}

// BoundsTracker keeps the last computed bounds and detects when a shrink
// left the scroll position past the new maximum.
type BoundsTracker struct {
	bounds ScrollBounds
}

// Bounds returns the last computed bounds.
func (t *BoundsTracker) Bounds() ScrollBounds { return t.bounds }

// Update recomputes the bounds. When pos exceeds the new primary maximum it
// returns the corrected position and true; the caller is expected to issue a
// non-animated scroll to it.
func (t *BoundsTracker) Update(m Metrics, dataSize, pos int) (ScrollBounds, int, bool) {
	t.bounds = CalculateBounds(m, dataSize)
	maxPos := t.bounds.MaxScroll(m.Orientation)
	if pos > maxPos {
		return t.bounds, maxPos, true
	}
	return t.bounds, pos, false
}
