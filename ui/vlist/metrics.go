// Package vlist provides a virtualized list/grid engine: it derives item
// geometry from the container size, keeps a bounded window of render slots
// over an arbitrarily large dataset, and recycles that slot pool as the
// viewport scrolls.
//
// Key properties:
//   - Geometry is recomputed only on mount, resize, data-size or item-size
//     changes; scrolling never touches it.
//   - The window moves at grid-line granularity. A hysteresis band
//     (Threshold) absorbs scroll ticks that do not cross a line boundary.
//   - Render slots form a ring keyed by index mod pool size. Slots are
//     relabeled or hidden, never destroyed.
//   - Geometry, window and positioning are always recomputed in that order
//     inside the same call.
package vlist

// Orientation selects which physical axis scrolls.
type Orientation int

const (
	Vertical   Orientation = iota // rows stack top to bottom, primary axis is y
	Horizontal                    // columns stack left to right, primary axis is x
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ItemSize describes item geometry. A plain list sets Size, the fixed extent
// along the primary axis. An auto-fitting grid sets MinWidth and MinHeight
// instead; the engine then fits as many columns as the secondary axis allows.
type ItemSize struct {
	Size      int
	MinWidth  int
	MinHeight int
}

// IsGrid reports whether s describes an auto-fitting grid.
func (s ItemSize) IsGrid() bool {
	return s.MinWidth > 0 && s.MinHeight > 0
}

// Axis carries the geometry of one axis.
type Axis struct {
	ClientSize int // visible extent of the container
	ItemSize   int // extent of one item
	GridSize   int // ItemSize + spacing
}

// Metrics is the output of the metrics calculator.
type Metrics struct {
	Orientation       Orientation
	Primary           Axis
	Secondary         Axis
	Spacing           int
	DimensionToExtent int // items per line, always >= 1
	ThresholdBase     int // 2 × Primary.GridSize
}

// minClientSize is the smallest primary client size the engine works with.
const minClientSize = 1

// CalculateMetrics derives per-axis geometry from the container size, the
// item size and the spacing.
//
// Degenerate input is clamped rather than rejected: non-positive client sizes
// become the minimum that still yields one item per line, non-positive item
// sizes become 1, and negative spacing becomes 0.
func CalculateMetrics(width, height int, size ItemSize, spacing int, o Orientation) Metrics {
	if spacing < 0 {
		spacing = 0
	}

	primaryClient, secondaryClient := height, width
	minPrimary, minSecondary := size.MinHeight, size.MinWidth
	if o == Horizontal {
		primaryClient, secondaryClient = width, height
		minPrimary, minSecondary = size.MinWidth, size.MinHeight
	}
	if primaryClient < minClientSize {
		primaryClient = minClientSize
	}

	m := Metrics{Orientation: o, Spacing: spacing}

	if size.IsGrid() {
		if secondaryClient < minSecondary {
			secondaryClient = minSecondary
		}
		dte := (secondaryClient + spacing) / (minSecondary + spacing)
		if dte < 1 {
			dte = 1
		}
		secondaryItem := (secondaryClient - spacing*(dte-1)) / dte
		if secondaryItem < 1 {
			secondaryItem = 1
		}
		// Scale the primary extent with the secondary one to keep the aspect ratio.
		primaryItem := minPrimary * secondaryItem / minSecondary
		if primaryItem < 1 {
			primaryItem = 1
		}
		m.DimensionToExtent = dte
		m.Primary = Axis{ClientSize: primaryClient, ItemSize: primaryItem, GridSize: primaryItem + spacing}
		m.Secondary = Axis{ClientSize: secondaryClient, ItemSize: secondaryItem, GridSize: secondaryItem + spacing}
	} else {
		if secondaryClient < minClientSize {
			secondaryClient = minClientSize
		}
		item := size.Size
		if item < 1 {
			item = 1
		}
		m.DimensionToExtent = 1
		m.Primary = Axis{ClientSize: primaryClient, ItemSize: item, GridSize: item + spacing}
		m.Secondary = Axis{ClientSize: secondaryClient, ItemSize: secondaryClient, GridSize: secondaryClient + spacing}
	}

	m.ThresholdBase = 2 * m.Primary.GridSize
	return m
}

// Lines returns the number of grid lines needed for dataSize items.
func (m Metrics) Lines(dataSize int) int {
	if dataSize <= 0 {
		return 0
	}
	return ceilDiv(dataSize, m.DimensionToExtent)
}

// GridPosition returns the primary and secondary offsets of index.
func (m Metrics) GridPosition(index int) (primary, secondary int) {
	dte := m.DimensionToExtent
	return (index / dte) * m.Primary.GridSize, (index % dte) * m.Secondary.GridSize
}

// IndexFromPosition maps a primary/secondary offset back to the index whose
// cell contains it. The secondary column is clamped to the line.
func (m Metrics) IndexFromPosition(primary, secondary int) int {
	if primary < 0 {
		primary = 0
	}
	if secondary < 0 {
		secondary = 0
	}
	line := primary / m.Primary.GridSize
	col := secondary / m.Secondary.GridSize
	if col >= m.DimensionToExtent {
		col = m.DimensionToExtent - 1
	}
	return line*m.DimensionToExtent + col
}

// ceilDiv is integer ceiling division for a >= 0, b > 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
