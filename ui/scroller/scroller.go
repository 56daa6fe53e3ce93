// Package scroller provides the animated scroll host: an integer scroll
// offset that either jumps or eases toward a target over a fixed duration,
// driven by Bubble Tea ticks.
//
// Features:
//   - At most one animation in flight; a new, different target stops it.
//   - IsAnimatingToward lets callers reuse a compatible animation.
//   - Per-instance tick IDs so several scrollers never cross-talk.
//   - A SettledMsg once an animation comes to rest.
package scroller

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Constants & package-level state
// ---------------------------------------------------------------------------

const (
	fps           = 60
	frameDuration = time.Second / fps

	// DefaultDuration is how long an animated scroll takes.
	DefaultDuration = 180 * time.Millisecond
)

var idCounter atomic.Int64

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// TickMsg advances the animation of the scroller with the matching ID.
type TickMsg struct {
	ID int64
}

// SettledMsg is emitted when an animation reaches its target.
type SettledMsg struct {
	ID     int64
	Offset int
}

// ---------------------------------------------------------------------------
// Easing
// ---------------------------------------------------------------------------

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates toward the target.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option configures a Scroller.
type Option func(*Scroller)

// WithDuration sets the animation duration. Zero disables animation.
func WithDuration(d time.Duration) Option {
	return func(s *Scroller) {
		if d >= 0 {
			s.duration = d
		}
	}
}

// WithEasing sets the easing curve.
func WithEasing(e Easing) Option {
	return func(s *Scroller) {
		if e != nil {
			s.easing = e
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scroller) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scroller) {
		if l != nil {
			s.logger = l
		}
	}
}

// ---------------------------------------------------------------------------
// Scroller
// ---------------------------------------------------------------------------

// Scroller is shared by reference between the list, the navigation
// coordinator and the UI loop, so unlike most widgets it uses pointer
// receivers throughout.
type Scroller struct {
	id       int64
	offset   int
	max      int
	from     int
	to       int
	start    time.Time
	duration time.Duration
	easing   Easing

	animating bool
	ticking   bool

	onScroll []func(offset int)
	now      func() time.Time
	logger   *slog.Logger
}

// New returns a scroller at offset 0 with an unbounded maximum.
func New(opts ...Option) *Scroller {
	s := &Scroller{
		id:       idCounter.Add(1),
		max:      math.MaxInt,
		duration: DefaultDuration,
		easing:   EaseOutCubic,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the tick ID of this scroller.
func (s *Scroller) ID() int64 { return s.id }

// OnScroll registers fn to run on every offset change.
func (s *Scroller) OnScroll(fn func(offset int)) {
	s.onScroll = append(s.onScroll, fn)
}

// SetMax bounds future targets to [0, max].
func (s *Scroller) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	s.max = max
	if s.animating && s.to > max {
		s.to = max
	}
}

// Max returns the current upper bound.
func (s *Scroller) Max() int { return s.max }

// Offset returns the current offset.
func (s *Scroller) Offset() int { return s.offset }

// Target returns where the scroller is heading, or the offset when idle.
func (s *Scroller) Target() int {
	if s.animating {
		return s.to
	}
	return s.offset
}

// Animating reports whether an animation is in flight.
func (s *Scroller) Animating() bool { return s.animating }

// IsAnimatingToward reports whether the running animation ends at offset.
func (s *Scroller) IsAnimatingToward(offset int) bool {
	return s.animating && s.to == offset
}

// Stop cancels the running animation, leaving the offset where it is.
func (s *Scroller) Stop() {
	if s.animating {
		s.logger.Debug("scroller: stopped", "offset", s.offset, "target", s.to)
	}
	s.animating = false
}

// ScrollTo moves to target, clamped to [0, max]. A different target while
// animating stops the running animation first.
func (s *Scroller) ScrollTo(target int, animate bool) {
	target = clamp(target, 0, s.max)
	if s.animating {
		if s.to == target {
			return
		}
		s.Stop()
	}
	if !animate || s.duration <= 0 || target == s.offset {
		s.set(target)
		return
	}
	s.from, s.to = s.offset, target
	s.start = s.now()
	s.animating = true
	s.logger.Debug("scroller: animating", "from", s.from, "to", s.to)
}

// ScrollBy moves relative to the current target.
func (s *Scroller) ScrollBy(delta int, animate bool) {
	s.ScrollTo(s.Target()+delta, animate)
}

// Advance steps the animation to now. It reports whether the animation is
// still running afterwards.
func (s *Scroller) Advance(now time.Time) bool {
	if !s.animating {
		return false
	}
	elapsed := now.Sub(s.start)
	if elapsed >= s.duration {
		s.animating = false
		s.set(s.to)
		return false
	}
	p := s.easing(float64(elapsed) / float64(s.duration))
	s.set(s.from + int(math.Round(float64(s.to-s.from)*p)))
	return true
}

// Cmd schedules the next tick while an animation is running. It returns nil
// when idle or when a tick is already pending.
func (s *Scroller) Cmd() tea.Cmd {
	if !s.animating || s.ticking {
		return nil
	}
	s.ticking = true
	id := s.id
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// Update handles TickMsg addressed to this scroller.
func (s *Scroller) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != s.id {
		return nil
	}
	s.ticking = false
	if !s.animating {
		return nil
	}
	if s.Advance(s.now()) {
		return s.Cmd()
	}
	id, off := s.id, s.offset
	return func() tea.Msg { return SettledMsg{ID: id, Offset: off} }
}

func (s *Scroller) set(v int) {
	if v == s.offset {
		return
	}
	s.offset = v
	for _, fn := range s.onScroll {
		fn(v)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
