package vlist

// Item identifies what a render slot should show.
type Item struct {
	Index int // logical data index
	Key   int // slot key, Index mod pool size
}

// RenderFunc produces the node for an item. It must be pure with respect to
// the index: the recycler calls it only when a slot is relabeled.
type RenderFunc[N any] func(Item) N

// Position is the physical offset of a slot inside the virtual canvas.
type Position struct {
	X int
	Y int
}

// Slot is one entry of the render pool.
type Slot[N any] struct {
	Key      int
	Index    int
	Position Position
	Visible  bool
	Node     N
}

// UpdateRange is the half-open index range repositioned by one pass.
type UpdateRange struct {
	From int
	To   int
}

// Empty reports whether the range touches no index.
func (r UpdateRange) Empty() bool { return r.To <= r.From }

// Recycler owns the ring of render slots. A slot's key is index mod pool
// size, so a forward shift relabels the slots that fell off the leading
// edge and everything else stays put.
type Recycler[N any] struct {
	render     RenderFunc[N]
	slots      []Slot[N]
	numOfItems int
	firstIndex int
	updateTo   int
	primed     bool
	renders    int
}

// NewRecycler returns an empty pool backed by render.
func NewRecycler[N any](render RenderFunc[N]) *Recycler[N] {
	return &Recycler[N]{render: render}
}

// Renders returns the number of render calls made so far.
func (r *Recycler[N]) Renders() int { return r.renders }

// Invalidate forces the next Position call to relabel the whole window.
func (r *Recycler[N]) Invalidate() { r.primed = false }

// Position brings the pool in line with w. With full set, or after a pool
// resize, every slot in the window is relabeled; otherwise only the indices
// that entered the window are. Slots whose index would lie past dataSize are
// hidden.
func (r *Recycler[N]) Position(w Window, m Metrics, dataSize int, rtl, full bool) UpdateRange {
	n := w.NumOfItems
	if n != r.numOfItems {
		for len(r.slots) < n {
			r.slots = append(r.slots, Slot[N]{Key: len(r.slots), Index: -1})
		}
		// Slots past the pool size are kept around hidden for later growth.
		for k := n; k < len(r.slots); k++ {
			r.slots[k].Visible = false
		}
		r.numOfItems = n
		full = true
	}
	if n == 0 {
		r.firstIndex, r.updateTo, r.primed = w.FirstIndex, 0, true
		return UpdateRange{}
	}

	first := w.FirstIndex
	end := min(first+n, dataSize)

	var rng UpdateRange
	diff := first - r.firstIndex
	switch {
	case full || !r.primed || abs(diff) >= n:
		rng = UpdateRange{From: first, To: end}
	case diff > 0:
		rng = UpdateRange{From: r.firstIndex + n, To: end}
	case diff < 0:
		rng = UpdateRange{From: first, To: min(r.firstIndex, end)}
	default:
		rng = UpdateRange{From: end, To: end}
	}
	// Growth inside an unchanged window exposes indices the last pass clamped away.
	if !full && r.primed && end > r.updateTo && diff >= 0 {
		rng.From = min(rng.From, max(r.updateTo, first))
		rng.To = end
	}

	for i := rng.From; i < rng.To; i++ {
		s := &r.slots[i%n]
		s.Key = i % n
		s.Index = i
		s.Position = r.positionOf(i, m, rtl)
		s.Visible = true
		s.Node = r.render(Item{Index: i, Key: s.Key})
		r.renders++
	}

	// Keys whose index in [first, first+n) runs past the data have nothing to show.
	for i := end; i < first+n; i++ {
		r.slots[i%n].Visible = false
	}

	r.firstIndex = first
	r.updateTo = end
	r.primed = true
	return rng
}

// Slots returns the visible slots ordered by index.
func (r *Recycler[N]) Slots() []Slot[N] {
	out := make([]Slot[N], 0, r.numOfItems)
	if r.numOfItems == 0 {
		return out
	}
	for i := r.firstIndex; i < r.updateTo; i++ {
		if s := r.slots[i%r.numOfItems]; s.Visible && s.Index == i {
			out = append(out, s)
		}
	}
	return out
}

// Slot returns the slot currently showing index.
func (r *Recycler[N]) Slot(index int) (Slot[N], bool) {
	if r.numOfItems == 0 || index < 0 {
		return Slot[N]{}, false
	}
	s := r.slots[index%r.numOfItems]
	if !s.Visible || s.Index != index {
		return Slot[N]{}, false
	}
	return s, true
}

// positionOf maps an index to physical coordinates. In RTL the x axis is
// mirrored against the client width.
func (r *Recycler[N]) positionOf(index int, m Metrics, rtl bool) Position {
	primary, secondary := m.GridPosition(index)
	var p Position
	var itemWidth, clientWidth int
	if m.Orientation == Horizontal {
		p = Position{X: primary, Y: secondary}
		itemWidth, clientWidth = m.Primary.ItemSize, m.Primary.ClientSize
	} else {
		p = Position{X: secondary, Y: primary}
		itemWidth, clientWidth = m.Secondary.ItemSize, m.Secondary.ClientSize
	}
	if rtl {
		p.X = clientWidth - p.X - itemWidth
	}
	return p
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
