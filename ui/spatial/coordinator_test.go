package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/osa-vnav/ui/pause"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeLayout is a vertical grid with one-cell spacing whose rendered window
// follows the scroll offset the way the list would.
type fakeLayout struct {
	n, dte       int
	item, client int
	overhang     int
	first        int
}

func (f *fakeLayout) grid() int              { return f.item + 1 }
func (f *fakeLayout) DataSize() int          { return f.n }
func (f *fakeLayout) DimensionToExtent() int { return f.dte }
func (f *fakeLayout) Vertical() bool         { return true }
func (f *fakeLayout) RTL() bool              { return false }
func (f *fakeLayout) ClientSize() int        { return f.client }
func (f *fakeLayout) LinesPerPage() int      { return max(1, f.client/f.grid()) }
func (f *fakeLayout) num() int               { return f.dte * ((f.client+f.grid()-1)/f.grid() + f.overhang) }
func (f *fakeLayout) IsRendered(i int) bool  { return i >= f.first && i < min(f.first+f.num(), f.n) }

func (f *fakeLayout) ItemExtent(i int) (int, int) {
	s := (i / f.dte) * f.grid()
	return s, s + f.item
}

func (f *fakeLayout) MaxScroll() int {
	lines := (f.n + f.dte - 1) / f.dte
	return max(0, lines*f.grid()-1-f.client)
}

func (f *fakeLayout) OffsetForIndex(i int, leading bool) int {
	s, e := f.ItemExtent(i)
	t := s
	if !leading {
		t = e - f.client
	}
	return min(max(t, 0), f.MaxScroll())
}

// scrollTo re-anchors the window one line before the offset.
func (f *fakeLayout) scrollTo(offset int) {
	line := max(offset/f.grid()-1, 0)
	f.first = line * f.dte
}

type scrollReq struct {
	offset  int
	animate bool
}

type fakeScroll struct {
	offset   int
	target   int
	moving   bool
	requests []scrollReq
	stops    int
	moved    func(int)
}

func (s *fakeScroll) ScrollTo(offset int, animate bool) {
	s.requests = append(s.requests, scrollReq{offset, animate})
	if animate {
		s.target, s.moving = offset, true
		return
	}
	s.jump(offset)
}

func (s *fakeScroll) jump(offset int) {
	s.offset, s.moving = offset, false
	if s.moved != nil {
		s.moved(offset)
	}
}

func (s *fakeScroll) finish()                        { s.jump(s.target) }
func (s *fakeScroll) Offset() int                    { return s.offset }
func (s *fakeScroll) IsAnimatingToward(off int) bool { return s.moving && s.target == off }

func (s *fakeScroll) Stop() {
	if s.moving {
		s.stops++
	}
	s.moving = false
}

type fakeFocus struct {
	current string
	accept  func(id string) bool
	set     *pause.Set
	history []string
}

func newFakeFocus() *fakeFocus {
	return &fakeFocus{set: pause.New(nil), accept: func(string) bool { return true }}
}

func (f *fakeFocus) Focus(id string) bool {
	if !f.accept(id) {
		return false
	}
	f.current = id
	f.history = append(f.history, id)
	return true
}

func (f *fakeFocus) Current() string                { return f.current }
func (f *fakeFocus) IsPaused() bool                 { return f.set.Paused() }
func (f *fakeFocus) Pause(owner string) pause.Token { return f.set.Acquire(owner) }
func (f *fakeFocus) Resume(t pause.Token)           { f.set.Release(t) }
func (f *fakeFocus) OnResume(fn func())             { f.set.OnResume(fn) }

type rig struct {
	layout *fakeLayout
	scroll *fakeScroll
	focus  *fakeFocus
	coord  *Coordinator
	nodes  Nodes
}

func newRig(t *testing.T, n int, opts ...CoordinatorOption) *rig {
	t.Helper()
	r := &rig{
		layout: &fakeLayout{n: n, dte: 3, item: 4, client: 20, overhang: 3},
		scroll: &fakeScroll{},
		focus:  newFakeFocus(),
		nodes:  NewNodes("grid", "test"),
	}
	r.coord = NewCoordinator(r.nodes, r.layout, r.scroll, r.focus, opts...)
	r.scroll.moved = func(off int) {
		r.layout.scrollTo(off)
		r.coord.DidRender()
	}
	r.focus.accept = func(id string) bool {
		return id == r.nodes.Container || r.coord.Contains(id)
	}
	return r
}

// focusItem puts focus on index without notifying the coordinator, so no
// follow scroll is issued.
func (r *rig) focusItem(t *testing.T, index int) {
	t.Helper()
	require.True(t, r.focus.Focus(r.nodes.ItemID(index)))
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestNodes_RoundTrip(t *testing.T) {
	n := NewNodes("grid", "abc")
	i, ok := n.IndexOf(n.ItemID(42))
	assert.True(t, ok)
	assert.Equal(t, 42, i)
	_, ok = n.IndexOf(n.PlaceholderID())
	assert.False(t, ok)
	_, ok = n.IndexOf("other/item/3")
	assert.False(t, ok)
	assert.Equal(t, "grid/placeholder-abc", n.PlaceholderID())
}

func TestCoordinator_FocusDirect(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 1)

	require.True(t, r.coord.HandleKey(Key{Direction: Down}))
	assert.Equal(t, r.nodes.ItemID(4), r.focus.Current())
	assert.Equal(t, FocusDirect, r.coord.State().Route)
	assert.Empty(t, r.scroll.requests)
}

func TestCoordinator_PropagatesAtEdge(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 1)

	assert.False(t, r.coord.HandleKey(Key{Direction: Up}))
	assert.Equal(t, r.nodes.ItemID(1), r.focus.Current())
}

func TestCoordinator_AnimatedScrollDefersFocus(t *testing.T) {
	r := newRig(t, 300)
	// Window covers lines 0..6 (21 items); item 19 is on the last one.
	r.focusItem(t, 19)

	require.True(t, r.coord.HandleKey(Key{Direction: Down}))
	assert.Equal(t, r.nodes.PlaceholderID(), r.focus.Current())
	assert.True(t, r.coord.PlaceholderActive())
	assert.True(t, r.focus.IsPaused())
	assert.Equal(t, AwaitingRender, r.coord.State().Phase)
	require.Len(t, r.scroll.requests, 1)
	assert.True(t, r.scroll.requests[0].animate)

	// Keys during the animation are deferred; only the latest survives.
	assert.True(t, r.coord.HandleKey(Key{Direction: Left}))
	assert.True(t, r.coord.HandleKey(Key{Direction: Right}))
	k, ok := r.coord.Deferred()
	require.True(t, ok)
	assert.Equal(t, Right, k.Direction)

	r.scroll.finish()
	assert.False(t, r.focus.IsPaused())
	assert.False(t, r.coord.PlaceholderActive())
	assert.Equal(t, Idle, r.coord.State().Phase)
	// 19 -> 22, then the replayed Right moves to 23.
	assert.Equal(t, r.nodes.ItemID(23), r.focus.Current())
	_, ok = r.coord.Deferred()
	assert.False(t, ok)
}

func TestCoordinator_NonAnimatedScrollResolvesSynchronously(t *testing.T) {
	r := newRig(t, 300, WithOptions(Options{Wrap: WrapOff, Animate: false}))
	r.focusItem(t, 19)

	require.True(t, r.coord.HandleKey(Key{Direction: Down}))
	assert.Equal(t, r.nodes.ItemID(22), r.focus.Current())
	assert.False(t, r.focus.IsPaused())
	assert.Contains(t, r.focus.history, r.nodes.PlaceholderID())
}

func TestCoordinator_WrapToUnrenderedTop(t *testing.T) {
	r := newRig(t, 100, WithOptions(Options{Wrap: WrapOn, Animate: true}))
	r.scroll.jump(r.layout.MaxScroll())
	r.focusItem(t, 98)

	require.True(t, r.coord.HandleKey(Key{Direction: Down}))
	assert.True(t, r.coord.State().Last.IsWrapped)
	assert.Equal(t, r.nodes.PlaceholderID(), r.focus.Current())
	require.NotEmpty(t, r.scroll.requests)
	assert.Equal(t, scrollReq{offset: 0, animate: true}, r.scroll.requests[len(r.scroll.requests)-1])

	r.scroll.finish()
	assert.Equal(t, r.nodes.ItemID(2), r.focus.Current())
}

func TestCoordinator_PlaceholderRefusedFallsBackToContainer(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 19)
	r.focus.accept = func(id string) bool { return id == r.nodes.Container || (id != r.nodes.PlaceholderID() && r.coord.Contains(id)) }

	r.coord.HandleKey(Key{Direction: Down})
	assert.Equal(t, r.nodes.Container, r.focus.Current())
	assert.False(t, r.coord.PlaceholderActive())
}

func TestCoordinator_ScrollReusesCompatibleAnimation(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 19)
	r.coord.HandleKey(Key{Direction: Down})
	require.Len(t, r.scroll.requests, 1)
	target := r.scroll.requests[0].offset

	// The item renders mid-flight and takes focus; the follow scroll agrees
	// with the animation so nothing new is issued.
	r.scroll.offset = target - 3
	r.layout.scrollTo(r.scroll.offset)
	r.coord.DidRender()
	assert.Equal(t, r.nodes.ItemID(22), r.focus.Current())
	r.coord.FocusChanged(r.nodes.ItemID(22))
	assert.Len(t, r.scroll.requests, 1)
	assert.Zero(t, r.scroll.stops)
}

func TestCoordinator_AcceleratorDropsRepeats(t *testing.T) {
	acc := &countingAccel{every: 2}
	r := newRig(t, 300, WithAccelerator(acc))
	r.focusItem(t, 0)

	r.coord.HandleKey(Key{Direction: Right, Repeat: true})
	assert.Equal(t, r.nodes.ItemID(0), r.focus.Current())
	r.coord.HandleKey(Key{Direction: Right, Repeat: true})
	assert.Equal(t, r.nodes.ItemID(1), r.focus.Current())
	// Fresh presses bypass the accelerator.
	r.coord.HandleKey(Key{Direction: Right})
	assert.Equal(t, r.nodes.ItemID(2), r.focus.Current())
}

type countingAccel struct{ every, seen int }

func (a *countingAccel) ShouldProcessRepeat(Key) bool {
	a.seen++
	return a.seen%a.every == 0
}

func TestCoordinator_DisabledItems(t *testing.T) {
	r := newRig(t, 30, WithDisabled(func(i int) bool { return i == 1 }))
	r.focusItem(t, 0)

	r.coord.HandleKey(Key{Direction: Right})
	assert.Equal(t, r.nodes.ItemID(2), r.focus.Current())
	assert.False(t, r.coord.Contains(r.nodes.ItemID(1)))
	assert.False(t, r.coord.FocusIndex(1))
}

func TestCoordinator_LastFocusedRoundTrip(t *testing.T) {
	r := newRig(t, 300, WithOptions(Options{Animate: false}))
	key := r.coord.PersistLastFocused(r.nodes.ItemID(150))
	assert.Equal(t, "150", key)

	id := r.coord.RestoreLastFocused(key)
	assert.Equal(t, r.nodes.ItemID(150), id)
	assert.True(t, r.layout.IsRendered(150))

	assert.Equal(t, "", r.coord.RestoreLastFocused("nope"))
	// A key past the data clamps to the last item.
	assert.Equal(t, r.nodes.ItemID(299), r.coord.RestoreLastFocused("1000"))
}

func TestCoordinator_PersistWhileAwaitingStoresPending(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 19)
	r.coord.HandleKey(Key{Direction: Down})
	assert.Equal(t, "22", r.coord.PersistLastFocused(r.nodes.PlaceholderID()))
}

func TestCoordinator_DefaultElementSkipsDisabled(t *testing.T) {
	r := newRig(t, 30, WithDisabled(func(i int) bool { return i < 2 }))
	assert.Equal(t, r.nodes.ItemID(2), r.coord.DefaultElement())
}

func TestCoordinator_SettledWithoutTargetFallsBack(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 19)
	r.coord.HandleKey(Key{Direction: Down})

	// The host gives up before reaching the target.
	r.scroll.moving = false
	r.coord.ScrollSettled()
	assert.Equal(t, r.nodes.Container, r.focus.Current())
	assert.False(t, r.focus.IsPaused())
}

func TestScrollSync_OnFocus(t *testing.T) {
	r := newRig(t, 300)
	s := r.coord.Sync()

	// Fully visible: nothing to do.
	_, issued := s.OnFocus(3)
	assert.False(t, issued)

	// Below the viewport: align the trailing edge.
	target, issued := s.OnFocus(15)
	require.True(t, issued)
	assert.Equal(t, 5*5+4-20, target)
	assert.True(t, s.Following())
	assert.True(t, r.focus.IsPaused())

	// Same target while animating is reused.
	_, issued = s.OnFocus(15)
	assert.False(t, issued)

	// A different target stops the running animation first.
	r.scroll.offset = 40
	target, issued = s.OnFocus(0)
	require.True(t, issued)
	assert.Equal(t, 0, target)
	assert.Equal(t, 1, r.scroll.stops)
	assert.True(t, s.Following(), "a replaced follow scroll keeps its pause")

	r.scroll.finish()
	assert.False(t, s.Following())
	assert.False(t, r.focus.IsPaused())
}

func TestScrollSync_InstantFollowDoesNotPause(t *testing.T) {
	r := newRig(t, 300, WithOptions(Options{Animate: false}))
	_, issued := r.coord.Sync().OnFocus(15)
	require.True(t, issued)
	assert.Equal(t, 9, r.scroll.Offset())
	assert.False(t, r.coord.Sync().Following())
	assert.False(t, r.focus.IsPaused())
}

func TestCoordinator_FollowScrollDefersKeys(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 13)
	r.coord.FocusChanged(r.nodes.ItemID(13))
	require.True(t, r.scroll.IsAnimatingToward(4))
	require.True(t, r.focus.IsPaused())

	assert.True(t, r.coord.HandleKey(Key{Direction: Right}))
	assert.Equal(t, r.nodes.ItemID(13), r.focus.Current())
	_, ok := r.coord.Deferred()
	require.True(t, ok)

	// Mid-flight frames keep the pause.
	r.coord.DidRender()
	assert.True(t, r.coord.Sync().Following())

	r.scroll.finish()
	assert.False(t, r.focus.IsPaused())
	assert.Equal(t, r.nodes.ItemID(14), r.focus.Current())
	_, ok = r.coord.Deferred()
	assert.False(t, ok)
}

func TestCoordinator_FollowPauseReleasedWhenScrollReplaced(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 13)
	r.coord.FocusChanged(r.nodes.ItemID(13))
	require.True(t, r.coord.Sync().Following())

	// Navigation to an unrendered item takes over the scroll host.
	require.True(t, r.coord.FocusIndex(200))
	require.Equal(t, AwaitingRender, r.coord.State().Phase)
	assert.Equal(t, 1, r.scroll.stops)

	r.coord.DidRender()
	assert.False(t, r.coord.Sync().Following())
	assert.True(t, r.focus.IsPaused(), "navigation still holds its pause")

	r.scroll.finish()
	assert.Equal(t, r.nodes.ItemID(200), r.focus.Current())
	assert.False(t, r.focus.IsPaused())
}

func TestCoordinator_SettledReleasesStoppedFollow(t *testing.T) {
	r := newRig(t, 300)
	r.focusItem(t, 13)
	r.coord.FocusChanged(r.nodes.ItemID(13))
	require.True(t, r.focus.IsPaused())

	r.scroll.Stop()
	r.coord.ScrollSettled()
	assert.False(t, r.coord.Sync().Following())
	assert.False(t, r.focus.IsPaused())
	assert.Equal(t, r.nodes.ItemID(13), r.focus.Current())
}

func TestScrollSync_GestureSuspendsFollow(t *testing.T) {
	r := newRig(t, 300)
	s := r.coord.Sync()

	_, issued := s.OnFocus(15)
	require.True(t, issued)
	require.True(t, s.Following())

	// The gesture's pause replaces the follow pause.
	require.True(t, s.BeginGesture())
	assert.False(t, s.BeginGesture())
	assert.False(t, s.Following())
	assert.True(t, r.focus.IsPaused())

	_, issued = s.OnFocus(200)
	assert.False(t, issued)

	require.True(t, s.EndGesture())
	assert.False(t, s.EndGesture())
	assert.False(t, r.focus.IsPaused())
	_, issued = s.OnFocus(200)
	assert.True(t, issued)
}
