package spatial

import (
	"log/slog"
	"strconv"

	"github.com/miosa/osa-vnav/ui/pause"
)

// Coordinator intercepts directional keys for one list container and
// executes the reducer's effects against the focus and scroll hosts.
//
// It is not safe for concurrent use; drive it from the UI loop.
type Coordinator struct {
	opts     Options
	nodes    Nodes
	layout   Layout
	scroll   ScrollHost
	focus    FocusHost
	accel    Accelerator
	disabled func(int) bool
	sync     *ScrollSync
	logger   *slog.Logger

	state       State
	hold        pause.Token
	deferred    *Key
	placeholder bool
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithOptions sets the reducer options.
func WithOptions(o Options) CoordinatorOption {
	return func(c *Coordinator) { c.opts = o }
}

// WithAccelerator throttles repeated keys through a.
func WithAccelerator(a Accelerator) CoordinatorOption {
	return func(c *Coordinator) { c.accel = a }
}

// WithDisabled marks items that cannot take focus.
func WithDisabled(fn func(index int) bool) CoordinatorOption {
	return func(c *Coordinator) { c.disabled = fn }
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCoordinator wires a coordinator to its hosts. Deferred keys are
// replayed when the focus host resumes.
func NewCoordinator(nodes Nodes, layout Layout, scroll ScrollHost, focus FocusHost, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		opts:   DefaultOptions(),
		nodes:  nodes,
		layout: layout,
		scroll: scroll,
		focus:  focus,
		state:  InitialState(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sync = NewScrollSync(layout, scroll, focus, c.logger)
	c.sync.SetAnimate(c.opts.Animate)
	focus.OnResume(c.replay)
	return c
}

// Options returns the reducer options.
func (c *Coordinator) Options() Options { return c.opts }

// SetOptions replaces the reducer options.
func (c *Coordinator) SetOptions(o Options) {
	c.opts = o
	c.sync.SetAnimate(o.Animate)
}

// State returns the reducer state.
func (c *Coordinator) State() State { return c.state }

// Sync returns the focus-driven scroll sync.
func (c *Coordinator) Sync() *ScrollSync { return c.sync }

// Nodes returns the ID scheme of the container.
func (c *Coordinator) Nodes() Nodes { return c.nodes }

// PlaceholderActive reports whether the placeholder node exists.
func (c *Coordinator) PlaceholderActive() bool { return c.placeholder }

// Deferred returns the key waiting for the focus host to resume, if any.
func (c *Coordinator) Deferred() (Key, bool) {
	if c.deferred == nil {
		return Key{}, false
	}
	return *c.deferred, true
}

// HandleKey processes a directional key before the focus host sees it. It
// returns false when the key should propagate to an outer scope.
func (c *Coordinator) HandleKey(k Key) bool {
	if k.Repeat && c.accel != nil && !c.accel.ShouldProcessRepeat(k) {
		return true
	}
	if c.focus.IsPaused() {
		// Only the latest intent survives the pause.
		c.deferred = &k
		c.logger.Debug("spatial: key deferred", "dir", k.Direction.String())
		return true
	}

	from := -1
	if i, ok := c.nodes.IndexOf(c.focus.Current()); ok {
		from = i
	}
	return c.dispatch(KeyDown{Key: k, From: from, Snapshot: c.snapshot()})
}

// DidRender tells the coordinator the window was repositioned.
func (c *Coordinator) DidRender() {
	c.dispatch(Rendered{Snapshot: c.snapshot()})
	c.sync.Settle()
}

// ScrollSettled tells the coordinator the scroll host came to rest. A key
// deferred behind a follow scroll is replayed here.
func (c *Coordinator) ScrollSettled() {
	c.dispatch(Settled{Snapshot: c.snapshot()})
	c.sync.Settle()
}

// FocusChanged observes focus moving to id.
func (c *Coordinator) FocusChanged(id string) {
	if id == c.nodes.PlaceholderID() {
		return
	}
	idx, ok := c.nodes.IndexOf(id)
	if !ok {
		idx = -1
	}
	c.dispatch(FocusChanged{Index: idx})
	if ok {
		c.sync.OnFocus(idx)
	}
}

// FocusIndex moves focus to index, scrolling first when it is not rendered.
func (c *Coordinator) FocusIndex(index int) bool {
	if index < 0 || index >= c.layout.DataSize() || c.isDisabled(index) {
		return false
	}
	c.dispatch(Target{Index: index, Stick: c.stickFor(index), Snapshot: c.snapshot()})
	return true
}

// ---------------------------------------------------------------------------
// Container hooks
// ---------------------------------------------------------------------------

// Contains reports whether id is a focusable node of this container.
func (c *Coordinator) Contains(id string) bool {
	if id == c.nodes.PlaceholderID() {
		return c.placeholder
	}
	i, ok := c.nodes.IndexOf(id)
	return ok && i < c.layout.DataSize() && c.layout.IsRendered(i) && !c.isDisabled(i)
}

// DefaultElement returns the first enabled item, scrolling to it if needed.
func (c *Coordinator) DefaultElement() string {
	for i := 0; i < c.layout.DataSize(); i++ {
		if !c.isDisabled(i) {
			return c.target(i)
		}
	}
	return ""
}

// PersistLastFocused turns a focus target into a restorable key. Items are
// stored by index since their nodes are recycled.
func (c *Coordinator) PersistLastFocused(id string) string {
	if id == c.nodes.PlaceholderID() {
		if c.state.Pending >= 0 {
			return strconv.Itoa(c.state.Pending)
		}
		return ""
	}
	if i, ok := c.nodes.IndexOf(id); ok {
		return strconv.Itoa(i)
	}
	return ""
}

// RestoreLastFocused re-targets the index stored by PersistLastFocused and
// returns the node that took focus.
func (c *Coordinator) RestoreLastFocused(key string) string {
	i, err := strconv.Atoi(key)
	n := c.layout.DataSize()
	if err != nil || i < 0 || n == 0 {
		return ""
	}
	if i >= n {
		i = n - 1
	}
	if c.isDisabled(i) {
		return ""
	}
	return c.target(i)
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (c *Coordinator) target(index int) string {
	c.dispatch(Target{Index: index, Stick: c.stickFor(index), Snapshot: c.snapshot()})
	return c.focus.Current()
}

func (c *Coordinator) dispatch(ev Event) bool {
	st, effects := Reduce(c.opts, c.state, ev)
	if st.Phase != c.state.Phase {
		c.logger.Debug("spatial: transition", "from", c.state.Phase.String(), "to", st.Phase.String(), "route", st.Route.String())
	}
	c.state = st
	return c.apply(effects)
}

func (c *Coordinator) apply(effects []Effect) bool {
	handled := true
	for _, e := range effects {
		switch e := e.(type) {
		case FocusItem:
			c.placeholder = false
			if !c.focus.Focus(c.nodes.ItemID(e.Index)) {
				c.logger.Warn("spatial: item refused focus", "index", e.Index)
				c.focus.Focus(c.nodes.Container)
			}
		case FocusPlaceholder:
			c.placeholder = true
			if !c.focus.Focus(c.nodes.PlaceholderID()) {
				c.placeholder = false
				c.focus.Focus(c.nodes.Container)
			}
		case FocusContainer:
			c.placeholder = false
			c.focus.Focus(c.nodes.Container)
		case ScrollToIndex:
			offset := c.layout.OffsetForIndex(e.Index, e.Stick == StickLeading)
			if c.scroll.IsAnimatingToward(offset) {
				continue
			}
			c.scroll.Stop()
			c.scroll.ScrollTo(offset, e.Animate)
		case HoldNavigation:
			if !c.hold.Valid() {
				c.hold = c.focus.Pause("navigation")
			}
		case ReleaseNavigation:
			if c.hold.Valid() {
				t := c.hold
				c.hold = pause.Token{}
				c.focus.Resume(t)
			}
		case Propagate:
			handled = false
		}
	}
	return handled
}

func (c *Coordinator) replay() {
	if c.deferred == nil {
		return
	}
	k := *c.deferred
	c.deferred = nil
	c.logger.Debug("spatial: replaying deferred key", "dir", k.Direction.String())
	c.HandleKey(k)
}

func (c *Coordinator) snapshot() Snapshot {
	return Snapshot{
		Grid: Grid{
			DataSize:          c.layout.DataSize(),
			DimensionToExtent: c.layout.DimensionToExtent(),
			Vertical:          c.layout.Vertical(),
			RTL:               c.layout.RTL(),
			Wrap:              c.opts.Wrap != WrapOff,
			Disabled:          c.disabled,
		},
		Rendered: c.layout.IsRendered,
	}
}

func (c *Coordinator) stickFor(index int) StickTo {
	start, _ := c.layout.ItemExtent(index)
	if start > c.scroll.Offset() {
		return StickTrailing
	}
	return StickLeading
}

func (c *Coordinator) isDisabled(i int) bool {
	return c.disabled != nil && c.disabled(i)
}
