package vlist

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("vlist: invalid config")

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config is the layout configuration of a List.
type Config struct {
	Orientation Orientation
	ItemSize    ItemSize
	Spacing     int
	Overhang    int
	RTL         bool
}

// DefaultConfig returns a vertical list of single-line items.
func DefaultConfig() Config {
	return Config{
		Orientation: Vertical,
		ItemSize:    ItemSize{Size: 1},
		Overhang:    DefaultOverhang,
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.Orientation != Vertical && c.Orientation != Horizontal {
		errs = append(errs, fmt.Errorf("%w: unknown orientation %d", ErrInvalidConfig, c.Orientation))
	}
	s := c.ItemSize
	switch {
	case s.MinWidth < 0 || s.MinHeight < 0:
		errs = append(errs, fmt.Errorf("%w: negative minimum item size %dx%d", ErrInvalidConfig, s.MinWidth, s.MinHeight))
	case (s.MinWidth > 0) != (s.MinHeight > 0):
		errs = append(errs, fmt.Errorf("%w: grid items need both a minimum width and height", ErrInvalidConfig))
	case !s.IsGrid() && s.Size <= 0:
		errs = append(errs, fmt.Errorf("%w: item size must be positive, got %d", ErrInvalidConfig, s.Size))
	}
	if c.Spacing < 0 {
		errs = append(errs, fmt.Errorf("%w: negative spacing %d", ErrInvalidConfig, c.Spacing))
	}
	if c.Overhang < MinOverhang {
		errs = append(errs, fmt.Errorf("%w: overhang must be at least %d, got %d", ErrInvalidConfig, MinOverhang, c.Overhang))
	}
	return errors.Join(errs...)
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Scroller receives corrective scrolls issued by the list.
type Scroller interface {
	ScrollTo(offset int, animate bool)
}

type options struct {
	width    int
	height   int
	dataSize int
	logger   *slog.Logger
	scroller Scroller
}

// Option is a functional option for New.
type Option func(*options)

// WithSize sets the initial container size.
func WithSize(w, h int) Option {
	return func(o *options) { o.width, o.height = w, h }
}

// WithDataSize sets the initial number of items.
func WithDataSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.dataSize = n
		}
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithScroller sets the host that receives corrective scrolls.
func WithScroller(s Scroller) Option {
	return func(o *options) { o.scroller = s }
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// Descriptor is the snapshot a layout host needs to size its scroll canvas.
type Descriptor struct {
	Metrics   Metrics
	Window    Window
	Threshold Threshold
	Bounds    ScrollBounds
	DataSize  int
}

// List composes metrics, window, bounds and recycler into one virtualized
// list. N is the node type produced by the render function.
type List[N any] struct {
	cfg      Config
	width    int
	height   int
	dataSize int

	metrics  Metrics
	windows  WindowManager
	bounds   BoundsTracker
	recycler *Recycler[N]

	scroller Scroller
	logger   *slog.Logger
}

// New builds and mounts a list.
func New[N any](cfg Config, render RenderFunc[N], opts ...Option) (*List[N], error) {
	if render == nil {
		return nil, fmt.Errorf("%w: nil render function", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	l := &List[N]{
		cfg:      cfg,
		width:    o.width,
		height:   o.height,
		dataSize: o.dataSize,
		recycler: NewRecycler(render),
		scroller: o.scroller,
		logger:   o.logger,
	}
	l.relayout(true)
	return l, nil
}

// SetScroller sets the host that receives corrective scrolls.
func (l *List[N]) SetScroller(s Scroller) { l.scroller = s }

// SetSize updates the container size.
func (l *List[N]) SetSize(w, h int) {
	if w == l.width && h == l.height {
		return
	}
	l.width, l.height = w, h
	l.relayout(true)
}

// SetDataSize updates the number of items.
func (l *List[N]) SetDataSize(n int) {
	if n < 0 {
		n = 0
	}
	if n == l.dataSize {
		return
	}
	l.dataSize = n
	l.relayout(false)
}

// SetConfig replaces the layout configuration.
func (l *List[N]) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.cfg = cfg
	l.relayout(true)
	return nil
}

// Refresh re-renders every slot in the window, e.g. after item content changed.
func (l *List[N]) Refresh() {
	l.recycler.Invalidate()
	l.recycler.Position(l.windows.Window(), l.metrics, l.dataSize, l.cfg.RTL, true)
}

// DidScroll feeds the primary scroll position from the scroll host. It
// reports whether the window moved.
func (l *List[N]) DidScroll(pos int) bool {
	old := l.windows.Window().FirstIndex
	if !l.windows.DidScroll(pos) {
		return false
	}
	w := l.windows.Window()
	rng := l.recycler.Position(w, l.metrics, l.dataSize, l.cfg.RTL, false)
	l.logger.Debug("vlist: window shifted",
		"pos", pos,
		"from", old,
		"to", w.FirstIndex,
		"threshold", l.windows.Threshold().String(),
		"updated", rng.To-rng.From,
	)
	return true
}

// relayout runs metrics, window, positioning and bounds in order. A shrink
// that leaves the position past the new maximum is corrected with a
// non-animated scroll.
func (l *List[N]) relayout(geometry bool) {
	l.metrics = CalculateMetrics(l.width, l.height, l.cfg.ItemSize, l.cfg.Spacing, l.cfg.Orientation)
	pos := l.windows.ScrollPosition()
	w := l.windows.Recompute(l.metrics, l.dataSize, l.cfg.Overhang, pos)
	l.recycler.Position(w, l.metrics, l.dataSize, l.cfg.RTL, geometry)

	_, corrected, needs := l.bounds.Update(l.metrics, l.dataSize, pos)
	l.logger.Debug("vlist: relayout",
		"size", fmt.Sprintf("%dx%d", l.width, l.height),
		"dataSize", l.dataSize,
		"dte", l.metrics.DimensionToExtent,
		"first", w.FirstIndex,
		"items", w.NumOfItems,
		"maxFirst", w.MaxFirstIndex,
	)
	if needs {
		l.logger.Info("vlist: corrective scroll", "pos", pos, "max", corrected)
		if l.scroller != nil {
			l.scroller.ScrollTo(corrected, false)
		} else {
			l.DidScroll(corrected)
		}
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Config returns the layout configuration.
func (l *List[N]) Config() Config { return l.cfg }

// Metrics returns the current geometry.
func (l *List[N]) Metrics() Metrics { return l.metrics }

// Window returns the current window.
func (l *List[N]) Window() Window { return l.windows.Window() }

// Threshold returns the current hysteresis band.
func (l *List[N]) Threshold() Threshold { return l.windows.Threshold() }

// Bounds returns the current scroll bounds.
func (l *List[N]) Bounds() ScrollBounds { return l.bounds.Bounds() }

// Descriptor returns a snapshot of the layout state.
func (l *List[N]) Descriptor() Descriptor {
	return Descriptor{
		Metrics:   l.metrics,
		Window:    l.windows.Window(),
		Threshold: l.windows.Threshold(),
		Bounds:    l.bounds.Bounds(),
		DataSize:  l.dataSize,
	}
}

// Slots returns the visible slots ordered by index.
func (l *List[N]) Slots() []Slot[N] { return l.recycler.Slots() }

// Slot returns the slot showing index, if it is rendered.
func (l *List[N]) Slot(index int) (Slot[N], bool) { return l.recycler.Slot(index) }

// Renders returns how many times the render function has been called.
func (l *List[N]) Renders() int { return l.recycler.Renders() }

// ScrollPosition returns the last primary position seen by DidScroll.
func (l *List[N]) ScrollPosition() int { return l.windows.ScrollPosition() }

// ScrollDirection returns the sign of the last scroll movement.
func (l *List[N]) ScrollDirection() int { return l.windows.Direction() }

// DataSize returns the number of items.
func (l *List[N]) DataSize() int { return l.dataSize }

// DimensionToExtent returns the number of items per line.
func (l *List[N]) DimensionToExtent() int { return l.metrics.DimensionToExtent }

// Vertical reports whether the primary axis is y.
func (l *List[N]) Vertical() bool { return l.cfg.Orientation == Vertical }

// RTL reports whether the x axis is mirrored.
func (l *List[N]) RTL() bool { return l.cfg.RTL }

// ClientSize returns the visible extent of the primary axis.
func (l *List[N]) ClientSize() int { return l.metrics.Primary.ClientSize }

// MaxScroll returns the maximum primary scroll offset.
func (l *List[N]) MaxScroll() int { return l.bounds.Bounds().MaxScroll(l.cfg.Orientation) }

// LinesPerPage returns the number of fully visible lines, at least one.
func (l *List[N]) LinesPerPage() int {
	return max(1, l.metrics.Primary.ClientSize/l.metrics.Primary.GridSize)
}

// IsRendered reports whether index currently owns a visible slot.
func (l *List[N]) IsRendered(index int) bool {
	_, ok := l.recycler.Slot(index)
	return ok
}

// ItemExtent returns the primary-axis span [start, end) of index.
func (l *List[N]) ItemExtent(index int) (start, end int) {
	start, _ = l.metrics.GridPosition(index)
	return start, start + l.metrics.Primary.ItemSize
}

// OffsetForIndex returns the clamped scroll offset that aligns index with the
// leading edge of the viewport, or with the trailing edge when leading is
// false. Items larger than the viewport always align to the leading edge.
func (l *List[N]) OffsetForIndex(index int, leading bool) int {
	start, end := l.ItemExtent(index)
	target := start
	if client := l.ClientSize(); !leading && end-start <= client {
		target = end - client
	}
	return clamp(target, 0, l.MaxScroll())
}

// IndexAt maps a point in viewport coordinates, given the current primary
// scroll offset, to the item index under it. It returns -1 for empty space.
func (l *List[N]) IndexAt(x, y, offset int) int {
	m := l.metrics
	primary, secondary := y+offset, x
	if m.Orientation == Horizontal {
		primary, secondary = x+offset, y
		if l.cfg.RTL {
			primary = m.Primary.ClientSize - 1 - x + offset
		}
	} else if l.cfg.RTL {
		secondary = m.Secondary.ClientSize - 1 - x
	}
	if primary < 0 || secondary < 0 {
		return -1
	}
	if primary%m.Primary.GridSize >= m.Primary.ItemSize ||
		secondary%m.Secondary.GridSize >= m.Secondary.ItemSize ||
		secondary/m.Secondary.GridSize >= m.DimensionToExtent {
		return -1
	}
	i := m.IndexFromPosition(primary, secondary)
	if i >= l.dataSize {
		return -1
	}
	return i
}

// ScrollToIndex asks the scroller to bring index into view.
func (l *List[N]) ScrollToIndex(index int, leading, animate bool) {
	if index < 0 || index >= l.dataSize || l.scroller == nil {
		return
	}
	l.scroller.ScrollTo(l.OffsetForIndex(index, leading), animate)
}

// ScrollToPosition asks the scroller to move to pos, clamped to the bounds.
func (l *List[N]) ScrollToPosition(pos int, animate bool) {
	if l.scroller == nil {
		return
	}
	l.scroller.ScrollTo(clamp(pos, 0, l.MaxScroll()), animate)
}
