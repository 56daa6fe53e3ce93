package spatial

import (
	"fmt"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// WrapMode controls what a primary move does at the first or last line.
type WrapMode int

const (
	WrapOff         WrapMode = iota // input propagates at the edge
	WrapOn                          // jump to the opposite edge, animated
	WrapNoAnimation                 // jump to the opposite edge without animating the scroll
)

func (w WrapMode) String() string {
	switch w {
	case WrapOff:
		return "off"
	case WrapOn:
		return "on"
	case WrapNoAnimation:
		return "noAnimation"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(w))
	}
}

// ParseWrapMode accepts "off", "on" and "noAnimation" (case-insensitive).
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "false":
		return WrapOff, nil
	case "on", "true":
		return WrapOn, nil
	case "noanimation", "no-animation":
		return WrapNoAnimation, nil
	}
	return WrapOff, fmt.Errorf("spatial: unknown wrap mode %q", s)
}

// Options are the behavior switches of the reducer.
type Options struct {
	Wrap    WrapMode
	Animate bool
}

// DefaultOptions returns animated scrolling with wrapping off.
func DefaultOptions() Options {
	return Options{Wrap: WrapOff, Animate: true}
}

// ---------------------------------------------------------------------------
// State
// ---------------------------------------------------------------------------

// Phase is the navigation state machine position.
type Phase int

const (
	Idle Phase = iota
	Resolving
	FocusDirect
	AwaitingRender
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case FocusDirect:
		return "focusDirect"
	case AwaitingRender:
		return "awaitingRender"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// StickTo selects the viewport edge a scrolled-to item aligns with.
type StickTo int

const (
	StickLeading StickTo = iota
	StickTrailing
)

func (s StickTo) String() string {
	if s == StickTrailing {
		return "trailing"
	}
	return "leading"
}

// State is the reducer state. Phase is Idle or AwaitingRender between
// events; Route records which branch the last resolution took.
type State struct {
	Phase   Phase
	Route   Phase
	Focused int // logical focus, -1 when unknown
	Pending int // index awaiting render, -1 when none
	Last    Result
}

// InitialState returns an idle state with nothing focused.
func InitialState() State {
	return State{Phase: Idle, Route: Idle, Focused: -1, Pending: -1, Last: Result{Index: -1}}
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// Key is a directional input.
type Key struct {
	Direction Direction
	Lines     int // > 1 for page moves
	Repeat    bool
	At        time.Time
}

// Snapshot carries the layout facts at the time of an event.
type Snapshot struct {
	Grid     Grid
	Rendered func(index int) bool
}

func (s Snapshot) rendered(i int) bool {
	return s.Rendered != nil && i >= 0 && i < s.Grid.DataSize && s.Rendered(i)
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

// KeyDown is a directional key seen in the capture phase. From is the index
// that currently holds focus, or -1.
type KeyDown struct {
	Key      Key
	From     int
	Snapshot Snapshot
}

// Target asks for focus on Index, scrolling it into view if needed.
type Target struct {
	Index    int
	Stick    StickTo
	Snapshot Snapshot
}

// Rendered reports that the window was repositioned.
type Rendered struct {
	Snapshot Snapshot
}

// Settled reports that the scroll host stopped moving.
type Settled struct {
	Snapshot Snapshot
}

// FocusChanged reports focus landing on Index, or leaving the list (-1).
type FocusChanged struct {
	Index int
}

func (KeyDown) isEvent()      {}
func (Target) isEvent()       {}
func (Rendered) isEvent()     {}
func (Settled) isEvent()      {}
func (FocusChanged) isEvent() {}

// ---------------------------------------------------------------------------
// Effects
// ---------------------------------------------------------------------------

// Effect is an instruction for the coordinator.
type Effect interface{ isEffect() }

// FocusItem moves focus to the rendered item at Index.
type FocusItem struct{ Index int }

// FocusPlaceholder parks focus on the transient placeholder node.
type FocusPlaceholder struct{}

// FocusContainer moves focus to the list container itself.
type FocusContainer struct{}

// ScrollToIndex brings Index into view.
type ScrollToIndex struct {
	Index   int
	Stick   StickTo
	Animate bool
}

// Propagate leaves the input to an outer navigation scope.
type Propagate struct{ Direction Direction }

// HoldNavigation acquires the navigation pause.
type HoldNavigation struct{}

// ReleaseNavigation releases the navigation pause.
type ReleaseNavigation struct{}

func (FocusItem) isEffect()         {}
func (FocusPlaceholder) isEffect()  {}
func (FocusContainer) isEffect()    {}
func (ScrollToIndex) isEffect()     {}
func (Propagate) isEffect()         {}
func (HoldNavigation) isEffect()    {}
func (ReleaseNavigation) isEffect() {}

// ---------------------------------------------------------------------------
// Reduce
// ---------------------------------------------------------------------------

// Reduce is the navigation state machine. It has no side effects; the
// returned effects are executed by the coordinator in order.
func Reduce(opts Options, st State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case KeyDown:
		return reduceKey(opts, st, ev)
	case Target:
		return reduceTarget(opts, st, ev)
	case Rendered:
		return reducePending(st, ev.Snapshot, false)
	case Settled:
		return reducePending(st, ev.Snapshot, true)
	case FocusChanged:
		return reduceFocus(st, ev)
	}
	return st, nil
}

func reduceKey(opts Options, st State, ev KeyDown) (State, []Effect) {
	prev := st.Phase
	from := ev.From
	if prev == AwaitingRender && st.Pending >= 0 {
		from = st.Pending
	}
	if from < 0 {
		from = st.Focused
	}

	st.Phase = Resolving
	grid := ev.Snapshot.Grid
	var res Result
	if ev.Key.Lines > 1 {
		res = JumpIndex(grid, from, ev.Key.Direction, ev.Key.Lines)
	} else {
		res = NextIndex(grid, from, ev.Key.Direction)
	}
	st.Last = res

	if !res.Found() {
		st.Phase = prev
		st.Route = Idle
		return st, []Effect{Propagate{Direction: ev.Key.Direction}}
	}

	stick := StickLeading
	if res.Forward {
		stick = StickTrailing
	}
	animate := opts.Animate && !(res.IsWrapped && opts.Wrap == WrapNoAnimation)
	return resolve(st, prev, res.Index, stick, animate, ev.Snapshot)
}

func reduceTarget(opts Options, st State, ev Target) (State, []Effect) {
	if ev.Index < 0 || ev.Index >= ev.Snapshot.Grid.DataSize {
		return st, nil
	}
	prev := st.Phase
	st.Phase = Resolving
	st.Last = Result{Index: ev.Index, Forward: ev.Stick == StickTrailing}
	return resolve(st, prev, ev.Index, ev.Stick, opts.Animate, ev.Snapshot)
}

// resolve routes a found target either straight to focus or through the
// placeholder while the window catches up.
func resolve(st State, prev Phase, index int, stick StickTo, animate bool, snap Snapshot) (State, []Effect) {
	st.Focused = index

	if snap.rendered(index) {
		st.Phase = Idle
		st.Route = FocusDirect
		st.Pending = -1
		effects := []Effect{FocusItem{Index: index}}
		if prev == AwaitingRender {
			effects = append(effects, ReleaseNavigation{})
		}
		return st, effects
	}

	st.Phase = AwaitingRender
	st.Route = AwaitingRender
	st.Pending = index
	var effects []Effect
	if prev != AwaitingRender {
		effects = append(effects, HoldNavigation{}, FocusPlaceholder{})
	}
	effects = append(effects, ScrollToIndex{Index: index, Stick: stick, Animate: animate})
	return st, effects
}

func reducePending(st State, snap Snapshot, settled bool) (State, []Effect) {
	if st.Phase != AwaitingRender {
		return st, nil
	}
	p := st.Pending
	switch {
	case p < 0 || p >= snap.Grid.DataSize:
		st.Phase, st.Pending = Idle, -1
		return st, []Effect{FocusContainer{}, ReleaseNavigation{}}
	case snap.rendered(p):
		st.Phase, st.Pending = Idle, -1
		return st, []Effect{FocusItem{Index: p}, ReleaseNavigation{}}
	case settled:
		// The scroll finished without the target ever rendering.
		st.Phase, st.Pending = Idle, -1
		return st, []Effect{FocusContainer{}, ReleaseNavigation{}}
	}
	return st, nil
}

func reduceFocus(st State, ev FocusChanged) (State, []Effect) {
	if ev.Index >= 0 {
		st.Focused = ev.Index
	}
	if st.Phase == AwaitingRender && ev.Index != st.Pending {
		st.Phase, st.Pending = Idle, -1
		return st, []Effect{ReleaseNavigation{}}
	}
	return st, nil
}
