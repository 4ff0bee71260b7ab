package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/vfs"
	"github.com/oasis-os/oasis/pkg/wm"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := New(Config{ScreenWidth: 480, ScreenHeight: 272, User: "guest", Home: "/home"}, vfs.NewMemory(), nil, nil, nil, nil)
	c.Interp.OutputLines = 5
	return c
}

func TestSubmitAppendsOutputToScrollback(t *testing.T) {
	c := newTestCoordinator(t)
	c.Submit("echo hello")
	assert.Equal(t, []string{"hello"}, c.Scrollback())
}

func TestSubmitElidesOldScrollbackPastFloor(t *testing.T) {
	c := newTestCoordinator(t)
	// minScrollback (200) dominates the tiny OutputLines override, so
	// nothing should be elided until well past 200 lines.
	for i := 0; i < 150; i++ {
		c.Submit("echo line")
	}
	assert.Len(t, c.Scrollback(), 150)

	for i := 0; i < 100; i++ {
		c.Submit("echo more")
	}
	lines := c.Scrollback()
	assert.LessOrEqual(t, len(lines), minScrollback+1)
	assert.Contains(t, lines[0], "elided")
}

func TestSubmitWithSleepRegistersPendingJob(t *testing.T) {
	c := newTestCoordinator(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	out := c.Submit("sleep 2")
	require.Equal(t, terminal.OutputPending, out.Kind)
	assert.Empty(t, c.Scrollback(), "a pending command must not land in scrollback until resumed")
	require.Len(t, c.pending, 1)

	c.now = func() time.Time { return base.Add(time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Empty(t, c.Scrollback(), "resume must not fire before dueAt")

	c.now = func() time.Time { return base.Add(3 * time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Equal(t, []string{"slept 2.00s"}, c.Scrollback())
	assert.Empty(t, c.pending)
}

func TestWatchFiresOncePerInterval(t *testing.T) {
	c := newTestCoordinator(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	calls := 0
	c.Watch("tick", time.Second, func() { calls++ })

	require.NoError(t, c.Tick(0))
	assert.Equal(t, 0, calls, "must not fire before one interval has elapsed")

	c.now = func() time.Time { return base.Add(time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Tick(0))
	assert.Equal(t, 1, calls, "must not fire twice within the same interval")

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Equal(t, 2, calls)

	c.Unwatch("tick")
	c.now = func() time.Time { return base.Add(3 * time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Equal(t, 2, calls, "unwatched callback must never fire again")
}

func TestCronAddRegistersWatcherAndRmRemovesIt(t *testing.T) {
	c := newTestCoordinator(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	out := c.Submit("cron add 1 echo tick")
	require.Equal(t, terminal.OutputText, out.Kind)
	_, ok := c.watchers["cron:echo tick"]
	require.True(t, ok)

	c.now = func() time.Time { return base.Add(time.Second) }
	require.NoError(t, c.Tick(0))
	assert.Contains(t, c.Scrollback(), "tick")

	c.Submit("cron rm echo tick")
	_, ok = c.watchers["cron:echo tick"]
	assert.False(t, ok)
}

func TestCronListReportsScheduledCommands(t *testing.T) {
	c := newTestCoordinator(t)
	c.Submit("cron add 5 echo a")
	out := c.Submit("cron list")
	require.Equal(t, terminal.OutputText, out.Kind)
	assert.Equal(t, []string{"echo a"}, out.Lines)
}

func TestStartupAddPersistsToVfsAndListReflectsIt(t *testing.T) {
	c := newTestCoordinator(t)
	out := c.Submit("startup add echo boot")
	require.Equal(t, terminal.OutputText, out.Kind)

	data, err := c.Vfs.Read(startupPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echo boot")

	out = c.Submit("startup list")
	assert.Contains(t, out.Lines, "echo boot")
}

func TestStartupCommandsReplayAtConstruction(t *testing.T) {
	fs := vfs.NewMemory()
	require.NoError(t, fs.Mkdir("/home"))
	require.NoError(t, fs.Write(startupPath, []byte("echo booted")))
	c := New(Config{ScreenWidth: 480, ScreenHeight: 272, User: "guest", Home: "/home"}, fs, nil, nil, nil, nil)
	assert.Equal(t, []string{"booted"}, c.Scrollback())
}

func TestWmCommandListReflectsOpenWindows(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.Wm.Open("win1", "Terminal", wm.Rect{X: 0, Y: 0, W: 100, H: 100}, wm.Frame{TitlebarHeight: 20})
	require.NoError(t, err)

	out := c.wmCommand([]string{"list"})
	require.Equal(t, terminal.OutputTable, out.Kind)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "win1", out.Rows[1][0])
}

func TestWmCommandCloseRemovesWindow(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.Wm.Open("win1", "Terminal", wm.Rect{X: 0, Y: 0, W: 100, H: 100}, wm.Frame{TitlebarHeight: 20})
	require.NoError(t, err)

	out := c.wmCommand([]string{"close", "win1"})
	assert.Equal(t, terminal.OutputText, out.Kind)
	_, ok := c.Wm.Get("win1")
	assert.False(t, ok)
}

func TestSyncWindowsToSdiCreatesFrameAndTitleObjects(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.Wm.Open("win1", "My Window", wm.Rect{X: 10, Y: 10, W: 100, H: 50}, wm.Frame{TitlebarHeight: 20})
	require.NoError(t, err)

	c.syncWindowsToSdi()

	frame, ok := c.Sdi.Get("wm.window.win1.frame")
	require.True(t, ok)
	assert.True(t, frame.Visible)

	title, ok := c.Sdi.Get("wm.window.win1.title")
	require.True(t, ok)
	assert.Equal(t, "My Window", title.Text)
}

func TestSyncWindowsToSdiHidesMinimizedWindows(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.Wm.Open("win1", "My Window", wm.Rect{X: 10, Y: 10, W: 100, H: 50}, wm.Frame{TitlebarHeight: 20})
	require.NoError(t, err)
	require.NoError(t, c.Wm.Minimize("win1"))

	c.syncWindowsToSdi()

	frame, ok := c.Sdi.Get("wm.window.win1.frame")
	require.True(t, ok)
	assert.False(t, frame.Visible)
}

func TestTickWithNoBackendsIsANoOp(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.Tick(16*time.Millisecond))
	require.NoError(t, c.Tick(16*time.Millisecond))
}

func TestThemeGetReturnsHexForKnownSlot(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.Vfs.Mkdir("/skins/classic"))
	require.NoError(t, c.Vfs.Write("/skins/classic/skin.toml", []byte(sampleSkinTOML)))

	require.NoError(t, c.swapSkin("classic"))
	hex, err := c.themeGet("background")
	require.NoError(t, err)
	assert.Equal(t, "#101010", hex[:7])
}

func TestThemeGetRejectsUnknownSlot(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.Vfs.Mkdir("/skins/classic"))
	require.NoError(t, c.Vfs.Write("/skins/classic/skin.toml", []byte(sampleSkinTOML)))
	require.NoError(t, c.swapSkin("classic"))

	_, err := c.themeGet("not_a_slot")
	assert.Error(t, err)
}

func TestThemeGetErrorsWithoutLoadedSkin(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.themeGet("background")
	assert.Error(t, err)
}

func TestSwapSkinFallsBackToVfsWhenNoSkinDirsMatch(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.Vfs.Mkdir("/skins/retro"))
	require.NoError(t, c.Vfs.Write("/skins/retro/skin.toml", []byte(sampleSkinTOML)))

	require.NoError(t, c.swapSkin("retro"))
	assert.Equal(t, "retro", c.skinName)
}

func TestBookmarkAddListAndRemoveRoundTrip(t *testing.T) {
	c := newTestCoordinator(t)

	out := c.bookmark([]string{"add", "https://example.com", "Example"})
	require.Equal(t, terminal.OutputText, out.Kind)

	out = c.bookmark([]string{"list"})
	require.Len(t, out.Lines, 1)
	assert.Contains(t, out.Lines[0], "example.com")

	out = c.bookmark([]string{"rm", "https://example.com"})
	require.Equal(t, terminal.OutputText, out.Kind)

	out = c.bookmark([]string{"list"})
	assert.Empty(t, out.Lines)
}

func TestPingReportsUnsupportedWithoutNetworkBackend(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.ping("example.com")
	assert.Error(t, err)
}

func TestPlayAudioReportsUnsupportedWithoutAudioBackend(t *testing.T) {
	c := newTestCoordinator(t)
	out := c.playAudio([]string{"/song.mp3"})
	assert.Equal(t, terminal.OutputError, out.Kind)
}

func TestBuildDepsWiresSkinAndWmCommandsEndToEnd(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.Vfs.Mkdir("/skins/classic"))
	require.NoError(t, c.Vfs.Write("/skins/classic/skin.toml", []byte(sampleSkinTOML)))

	out := c.Submit("skin classic")
	require.Equal(t, terminal.OutputSkinSwap, out.Kind)

	out = c.Submit("wm list")
	require.Equal(t, terminal.OutputTable, out.Kind)
}

const sampleSkinTOML = `
[manifest]
name = "classic"
version = "1.0.0"
screen_width = 480
screen_height = 272

[layout.statusbar]
x = 0
y = 0
w = 480
h = 20
fill = "#202020"

[features]
dashboard = true
terminal = true

[theme]
background = "#101010"
primary = "#3a7bd5"
secondary = "#6c6c6c"
text = "#f0f0f0"
dim_text = "#888888"
status_bar = "#202020"
prompt = "#3a7bd5"
output = "#f0f0f0"
error = "#ff4444"
`
