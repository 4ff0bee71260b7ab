package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusInvariant(t *testing.T) {
	m := NewManager(Rect{W: 480, H: 272})
	_, err := m.Open("a", "A", Rect{X: 10, Y: 10, W: 100, H: 80}, Frame{TitlebarHeight: 16, BorderWidth: 2})
	require.NoError(t, err)
	_, err = m.Open("b", "B", Rect{X: 20, Y: 20, W: 100, H: 80}, Frame{TitlebarHeight: 16, BorderWidth: 2})
	require.NoError(t, err)

	assert.True(t, m.CheckFocusInvariant())
	focused, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, "b", focused.ID)

	require.NoError(t, m.Focus("a"))
	focused, ok = m.Focused()
	require.True(t, ok)
	assert.Equal(t, "a", focused.ID)

	m.Close("a")
	assert.True(t, m.CheckFocusInvariant())
	focused, ok = m.Focused()
	require.True(t, ok)
	assert.Equal(t, "b", focused.ID)

	m.Close("b")
	assert.True(t, m.CheckFocusInvariant())
	_, ok = m.Focused()
	assert.False(t, ok)
}

func TestHitTestTopmost(t *testing.T) {
	m := NewManager(Rect{W: 480, H: 272})
	_, _ = m.Open("a", "A", Rect{X: 0, Y: 0, W: 100, H: 100}, Frame{TitlebarHeight: 10, BorderWidth: 2})
	_, _ = m.Open("b", "B", Rect{X: 50, Y: 50, W: 100, H: 100}, Frame{TitlebarHeight: 10, BorderWidth: 2})

	hit, ok := m.HitTest(75, 75)
	require.True(t, ok)
	assert.Equal(t, "b", hit.ID)

	hit, ok = m.HitTest(10, 5)
	require.True(t, ok)
	assert.Equal(t, "a", hit.ID)
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	m := NewManager(Rect{X: 0, Y: 0, W: 480, H: 272})
	w, _ := m.Open("a", "A", Rect{X: 10, Y: 10, W: 100, H: 80}, Frame{TitlebarHeight: 16, BorderWidth: 2})
	orig := w.Content

	require.NoError(t, m.Maximize("a"))
	assert.Equal(t, StateMaximized, w.State)
	assert.Greater(t, w.Content.W, orig.W)

	require.NoError(t, m.Restore("a"))
	assert.Equal(t, StateNormal, w.State)
	assert.Equal(t, orig, w.Content)
}

func TestCloseRemovesUnreachable(t *testing.T) {
	m := NewManager(Rect{W: 480, H: 272})
	m.Open("a", "A", Rect{W: 10, H: 10}, Frame{})
	m.Close("a")
	_, ok := m.Get("a")
	assert.False(t, ok)
}
