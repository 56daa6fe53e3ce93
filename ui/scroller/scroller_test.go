package scroller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: time.Unix(1000, 0)} }

func (c *clock) now() time.Time { return c.t }

func (c *clock) add(d time.Duration) { c.t = c.t.Add(d) }

func linearScroller(c *clock) *Scroller {
	return New(WithClock(c.now), WithEasing(Linear), WithDuration(100*time.Millisecond))
}

func TestScroller_JumpNotifies(t *testing.T) {
	s := New()
	var seen []int
	s.OnScroll(func(o int) { seen = append(seen, o) })

	s.ScrollTo(40, false)
	s.ScrollTo(40, false)
	assert.Equal(t, 40, s.Offset())
	assert.Equal(t, []int{40}, seen)
	assert.False(t, s.Animating())
}

func TestScroller_ClampsToBounds(t *testing.T) {
	s := New()
	s.SetMax(50)
	s.ScrollTo(500, false)
	assert.Equal(t, 50, s.Offset())
	s.ScrollTo(-5, false)
	assert.Equal(t, 0, s.Offset())
	s.SetMax(-1)
	assert.Equal(t, 0, s.Max())
}

func TestScroller_AnimatesWithEasing(t *testing.T) {
	c := newClock()
	s := linearScroller(c)

	s.ScrollTo(100, true)
	require.True(t, s.Animating())
	assert.True(t, s.IsAnimatingToward(100))
	assert.False(t, s.IsAnimatingToward(90))
	assert.Equal(t, 0, s.Offset())

	c.add(25 * time.Millisecond)
	assert.True(t, s.Advance(c.now()))
	assert.Equal(t, 25, s.Offset())

	c.add(100 * time.Millisecond)
	assert.False(t, s.Advance(c.now()))
	assert.Equal(t, 100, s.Offset())
	assert.False(t, s.Animating())
}

func TestScroller_SameTargetIsReused(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	s.ScrollTo(100, true)
	c.add(50 * time.Millisecond)
	s.Advance(c.now())

	s.ScrollTo(100, true)
	assert.Equal(t, 50, s.Offset())
	c.add(10 * time.Millisecond)
	s.Advance(c.now())
	assert.Equal(t, 60, s.Offset(), "the original animation keeps its start time")
}

func TestScroller_NewTargetRestartsFromCurrentOffset(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	s.ScrollTo(100, true)
	c.add(50 * time.Millisecond)
	s.Advance(c.now())

	s.ScrollTo(0, true)
	assert.True(t, s.IsAnimatingToward(0))
	c.add(50 * time.Millisecond)
	s.Advance(c.now())
	assert.Equal(t, 25, s.Offset())
}

func TestScroller_StopKeepsOffset(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	s.ScrollTo(100, true)
	c.add(30 * time.Millisecond)
	s.Advance(c.now())
	s.Stop()

	assert.False(t, s.Animating())
	assert.Equal(t, 30, s.Offset())
	assert.Equal(t, 30, s.Target())
	assert.False(t, s.Advance(c.now()))
}

func TestScroller_ScrollByUsesTarget(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	s.ScrollTo(60, true)
	s.ScrollBy(6, true)
	assert.True(t, s.IsAnimatingToward(66))
}

func TestScroller_ZeroDurationJumps(t *testing.T) {
	s := New(WithDuration(0))
	s.ScrollTo(10, true)
	assert.False(t, s.Animating())
	assert.Equal(t, 10, s.Offset())
}

func TestScroller_TickLifecycle(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	assert.Nil(t, s.Cmd(), "idle scroller schedules nothing")

	s.ScrollTo(100, true)
	require.NotNil(t, s.Cmd())
	assert.Nil(t, s.Cmd(), "one tick in flight at a time")

	// Foreign ticks are ignored.
	assert.Nil(t, s.Update(TickMsg{ID: s.ID() + 1}))

	c.add(10 * time.Millisecond)
	assert.NotNil(t, s.Update(TickMsg{ID: s.ID()}))

	c.add(time.Second)
	cmd := s.Update(TickMsg{ID: s.ID()})
	require.NotNil(t, cmd)
	assert.Equal(t, SettledMsg{ID: s.ID(), Offset: 100}, cmd())
}

func TestScroller_ShrinkingMaxRetargets(t *testing.T) {
	c := newClock()
	s := linearScroller(c)
	s.ScrollTo(100, true)
	s.SetMax(40)
	assert.True(t, s.IsAnimatingToward(40))
}

func TestEasing(t *testing.T) {
	assert.InDelta(t, 0.0, EaseOutCubic(0), 1e-9)
	assert.InDelta(t, 1.0, EaseOutCubic(1), 1e-9)
	assert.Greater(t, EaseOutCubic(0.5), 0.5)
}
