package spatial

import (
	"log/slog"

	"github.com/miosa/osa-vnav/ui/pause"
)

// ScrollSync keeps the focused item inside the viewport. While a pointer
// gesture is active it stands down and holds a pause on the focus host.
// An animated follow scroll also holds a pause until it comes to rest.
type ScrollSync struct {
	layout  Layout
	scroll  ScrollHost
	focus   FocusHost
	animate bool
	gesture pause.Token
	follow  pause.Token
	target  int
	logger  *slog.Logger
}

// NewScrollSync returns a scroll sync bound to the given hosts.
func NewScrollSync(layout Layout, scroll ScrollHost, focus FocusHost, logger *slog.Logger) *ScrollSync {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ScrollSync{layout: layout, scroll: scroll, focus: focus, animate: true, logger: logger}
}

// SetAnimate toggles animated follow scrolls.
func (s *ScrollSync) SetAnimate(on bool) { s.animate = on }

// InGesture reports whether a pointer gesture is active.
func (s *ScrollSync) InGesture() bool { return s.gesture.Valid() }

// Following reports whether an animated follow scroll holds a pause.
func (s *ScrollSync) Following() bool { return s.follow.Valid() }

// OnFocus scrolls the minimum distance that makes index fully visible. It
// returns the offset it settled on and whether a new scroll was issued.
// An in-flight animation already heading for that offset is left alone.
// Keys wait while the scroll it issues is animating.
func (s *ScrollSync) OnFocus(index int) (int, bool) {
	if s.InGesture() || index < 0 || index >= s.layout.DataSize() {
		return s.scroll.Offset(), false
	}

	pos := s.scroll.Offset()
	start, end := s.layout.ItemExtent(index)
	client := s.layout.ClientSize()
	if start >= pos && end <= pos+client {
		return pos, false
	}

	target := s.layout.OffsetForIndex(index, start < pos)
	if target == pos {
		return pos, false
	}
	if s.scroll.IsAnimatingToward(target) {
		if s.follow.Valid() {
			s.target = target
		}
		s.logger.Debug("spatial: reusing scroll animation", "index", index, "target", target)
		return target, false
	}
	s.scroll.Stop()
	s.scroll.ScrollTo(target, s.animate)
	s.logger.Debug("spatial: follow scroll", "index", index, "from", pos, "to", target)
	if s.scroll.IsAnimatingToward(target) {
		s.target = target
		if !s.follow.Valid() {
			s.follow = s.focus.Pause("follow")
		}
	} else {
		s.releaseFollow()
	}
	return target, true
}

// Settle releases the follow pause once its animation has ended, been
// stopped or been replaced by one heading elsewhere. It reports whether a
// pause was released.
func (s *ScrollSync) Settle() bool {
	if !s.follow.Valid() || s.scroll.IsAnimatingToward(s.target) {
		return false
	}
	return s.releaseFollow()
}

func (s *ScrollSync) releaseFollow() bool {
	if !s.follow.Valid() {
		return false
	}
	t := s.follow
	s.follow = pause.Token{}
	s.focus.Resume(t)
	s.logger.Debug("spatial: follow scroll settled", "offset", s.scroll.Offset())
	return true
}

// BeginGesture suspends follow scrolling and pauses the focus host for the
// duration of a pointer gesture. Repeated calls are no-ops.
func (s *ScrollSync) BeginGesture() bool {
	if s.InGesture() {
		return false
	}
	s.gesture = s.focus.Pause("gesture")
	// The gesture's pause covers any follow scroll it is about to interrupt.
	s.releaseFollow()
	s.logger.Debug("spatial: gesture began")
	return true
}

// EndGesture restores follow scrolling and releases the gesture pause.
func (s *ScrollSync) EndGesture() bool {
	if !s.InGesture() {
		return false
	}
	t := s.gesture
	s.gesture = pause.Token{}
	s.focus.Resume(t)
	s.logger.Debug("spatial: gesture ended")
	return true
}
