package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// windowSnapshot renders [first, first+num) of a vertical grid.
func windowSnapshot(n, dte, first, num int, wrap bool) Snapshot {
	return Snapshot{
		Grid: Grid{DataSize: n, DimensionToExtent: dte, Vertical: true, Wrap: wrap},
		Rendered: func(i int) bool {
			return i >= first && i < first+num
		},
	}
}

func TestReduce_FocusDirectWhenRendered(t *testing.T) {
	st := InitialState()
	st, effects := Reduce(DefaultOptions(), st, KeyDown{
		Key:      Key{Direction: Down},
		From:     5,
		Snapshot: windowSnapshot(30, 3, 0, 15, false),
	})

	assert.Equal(t, []Effect{FocusItem{Index: 8}}, effects)
	assert.Equal(t, Idle, st.Phase)
	assert.Equal(t, FocusDirect, st.Route)
	assert.Equal(t, 8, st.Focused)
}

func TestReduce_PropagatesWithoutTarget(t *testing.T) {
	st, effects := Reduce(DefaultOptions(), InitialState(), KeyDown{
		Key:      Key{Direction: Down},
		From:     5,
		Snapshot: windowSnapshot(8, 3, 0, 8, false),
	})

	assert.Equal(t, []Effect{Propagate{Direction: Down}}, effects)
	assert.Equal(t, Idle, st.Phase)
	assert.Equal(t, -1, st.Last.Index)
}

func TestReduce_AwaitsRenderForOffscreenTarget(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	st, effects := Reduce(DefaultOptions(), InitialState(), KeyDown{
		Key:      Key{Direction: Down},
		From:     19,
		Snapshot: snap,
	})

	require.Equal(t, []Effect{
		HoldNavigation{},
		FocusPlaceholder{},
		ScrollToIndex{Index: 22, Stick: StickTrailing, Animate: true},
	}, effects)
	assert.Equal(t, AwaitingRender, st.Phase)
	assert.Equal(t, 22, st.Pending)

	// A reposition that still misses the target changes nothing.
	st, effects = Reduce(DefaultOptions(), st, Rendered{Snapshot: snap})
	assert.Empty(t, effects)
	assert.Equal(t, AwaitingRender, st.Phase)

	st, effects = Reduce(DefaultOptions(), st, Rendered{Snapshot: windowSnapshot(300, 3, 3, 21, false)})
	assert.Equal(t, []Effect{FocusItem{Index: 22}, ReleaseNavigation{}}, effects)
	assert.Equal(t, Idle, st.Phase)
	assert.Equal(t, -1, st.Pending)
}

func TestReduce_WrapDefersThroughPlaceholder(t *testing.T) {
	// Down at the last row wraps to the top, which is not rendered.
	opts := Options{Wrap: WrapOn, Animate: true}
	st, effects := Reduce(opts, InitialState(), KeyDown{
		Key:      Key{Direction: Down},
		From:     98,
		Snapshot: windowSnapshot(100, 3, 78, 22, true),
	})

	require.Len(t, effects, 3)
	assert.Equal(t, FocusPlaceholder{}, effects[1])
	assert.Equal(t, ScrollToIndex{Index: 2, Stick: StickLeading, Animate: true}, effects[2])
	assert.True(t, st.Last.IsWrapped)
	assert.Equal(t, AwaitingRender, st.Phase)
}

func TestReduce_WrapNoAnimation(t *testing.T) {
	opts := Options{Wrap: WrapNoAnimation, Animate: true}
	_, effects := Reduce(opts, InitialState(), KeyDown{
		Key:      Key{Direction: Down},
		From:     98,
		Snapshot: windowSnapshot(100, 3, 78, 22, true),
	})
	require.Len(t, effects, 3)
	assert.Equal(t, ScrollToIndex{Index: 2, Stick: StickLeading, Animate: false}, effects[2])

	// Plain moves still animate.
	_, effects = Reduce(opts, InitialState(), KeyDown{
		Key:      Key{Direction: Down},
		From:     70,
		Snapshot: windowSnapshot(100, 3, 78, 22, true),
	})
	require.Len(t, effects, 3)
	assert.Equal(t, ScrollToIndex{Index: 73, Stick: StickTrailing, Animate: true}, effects[2])
}

func TestReduce_KeyWhileAwaitingContinuesFromPending(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	st, _ := Reduce(DefaultOptions(), InitialState(), KeyDown{Key: Key{Direction: Down}, From: 19, Snapshot: snap})
	require.Equal(t, 22, st.Pending)

	st, effects := Reduce(DefaultOptions(), st, KeyDown{Key: Key{Direction: Down}, From: -1, Snapshot: snap})
	assert.Equal(t, []Effect{ScrollToIndex{Index: 25, Stick: StickTrailing, Animate: true}}, effects)
	assert.Equal(t, 25, st.Pending)
}

func TestReduce_PageMove(t *testing.T) {
	st, effects := Reduce(DefaultOptions(), InitialState(), KeyDown{
		Key:      Key{Direction: Down, Lines: 4},
		From:     1,
		Snapshot: windowSnapshot(300, 3, 0, 21, false),
	})
	assert.Equal(t, []Effect{FocusItem{Index: 13}}, effects)
	assert.Equal(t, 13, st.Focused)
}

func TestReduce_FallsBackToFocusedIndex(t *testing.T) {
	st := InitialState()
	st.Focused = 4
	st, effects := Reduce(DefaultOptions(), st, KeyDown{
		Key:      Key{Direction: Right},
		From:     -1,
		Snapshot: windowSnapshot(30, 3, 0, 30, false),
	})
	assert.Equal(t, []Effect{FocusItem{Index: 5}}, effects)
	assert.Equal(t, 5, st.Focused)
}

func TestReduce_SettledWithoutRenderFallsBackToContainer(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	st, _ := Reduce(DefaultOptions(), InitialState(), KeyDown{Key: Key{Direction: Down}, From: 19, Snapshot: snap})

	st, effects := Reduce(DefaultOptions(), st, Settled{Snapshot: snap})
	assert.Equal(t, []Effect{FocusContainer{}, ReleaseNavigation{}}, effects)
	assert.Equal(t, Idle, st.Phase)
}

func TestReduce_PendingPastShrunkData(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	st, _ := Reduce(DefaultOptions(), InitialState(), KeyDown{Key: Key{Direction: Down}, From: 19, Snapshot: snap})

	st, effects := Reduce(DefaultOptions(), st, Rendered{Snapshot: windowSnapshot(10, 3, 0, 10, false)})
	assert.Equal(t, []Effect{FocusContainer{}, ReleaseNavigation{}}, effects)
	assert.Equal(t, Idle, st.Phase)
}

func TestReduce_FocusElsewhereCancelsPending(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	st, _ := Reduce(DefaultOptions(), InitialState(), KeyDown{Key: Key{Direction: Down}, From: 19, Snapshot: snap})

	st, effects := Reduce(DefaultOptions(), st, FocusChanged{Index: 3})
	assert.Equal(t, []Effect{ReleaseNavigation{}}, effects)
	assert.Equal(t, Idle, st.Phase)
	assert.Equal(t, 3, st.Focused)
}

func TestReduce_Target(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)

	_, effects := Reduce(DefaultOptions(), InitialState(), Target{Index: 7, Snapshot: snap})
	assert.Equal(t, []Effect{FocusItem{Index: 7}}, effects)

	st, effects := Reduce(DefaultOptions(), InitialState(), Target{Index: 200, Stick: StickTrailing, Snapshot: snap})
	assert.Equal(t, []Effect{
		HoldNavigation{},
		FocusPlaceholder{},
		ScrollToIndex{Index: 200, Stick: StickTrailing, Animate: true},
	}, effects)
	assert.Equal(t, AwaitingRender, st.Phase)

	_, effects = Reduce(DefaultOptions(), InitialState(), Target{Index: 300, Snapshot: snap})
	assert.Empty(t, effects)
}

func TestReduce_IsDeterministic(t *testing.T) {
	snap := windowSnapshot(300, 3, 0, 21, false)
	ev := KeyDown{Key: Key{Direction: Down}, From: 19, Snapshot: snap}
	a, ea := Reduce(DefaultOptions(), InitialState(), ev)
	b, eb := Reduce(DefaultOptions(), InitialState(), ev)
	assert.Equal(t, a, b)
	assert.Equal(t, ea, eb)
}

func TestParseWrapMode(t *testing.T) {
	for in, want := range map[string]WrapMode{"off": WrapOff, "On": WrapOn, "noAnimation": WrapNoAnimation, "": WrapOff} {
		got, err := ParseWrapMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseWrapMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "noAnimation", WrapNoAnimation.String())
}
