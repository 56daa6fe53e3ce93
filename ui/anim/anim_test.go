package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinner_StoppedRendersNothing(t *testing.T) {
	m := New(Opts{Label: "paused"})
	assert.False(t, m.IsSpinning())
	assert.Empty(t, m.View())
	assert.Nil(t, m.Tick())
}

func TestSpinner_Lifecycle(t *testing.T) {
	m := New(Opts{Label: "paused"})
	require.NotNil(t, m.Start())
	assert.Nil(t, m.Start(), "one tick in flight")
	assert.Contains(t, m.View(), "paused")

	m, cmd := m.Update(TickMsg{ID: m.ID()})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.frame)

	// Foreign ticks are ignored.
	m2, cmd := m.Update(TickMsg{ID: m.ID() + 100})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m2.frame)

	m.Stop()
	m, cmd = m.Update(TickMsg{ID: m.ID()})
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
	assert.False(t, m.ticking)
}

func TestSpinner_FramesWrap(t *testing.T) {
	m := New(Opts{})
	m.Start()
	for range len(frames) {
		m, _ = m.Update(TickMsg{ID: m.ID()})
	}
	assert.Equal(t, 0, m.frame)
	assert.Len(t, m.cache, len(frames))
}
