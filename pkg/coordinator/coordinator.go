// Package coordinator wires every OASIS subsystem into the single
// frame loop the specification calls L3 (spec §2, §5): drain input,
// update components, flush the scene graph, swap buffers. It is the
// only package that imports every kernel subsystem at once; nothing
// below it may import coordinator, keeping the dependency graph
// acyclic the way the teacher's cmd/buckley/main.go sits above every
// pkg/ it wires.
package coordinator

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/oasis-os/oasis/pkg/audio"
	"github.com/oasis-os/oasis/pkg/backend"
	"github.com/oasis-os/oasis/pkg/browser"
	"github.com/oasis-os/oasis/pkg/colorx"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/input"
	"github.com/oasis-os/oasis/pkg/logging"
	"github.com/oasis-os/oasis/pkg/metrics"
	"github.com/oasis-os/oasis/pkg/platform"
	"github.com/oasis-os/oasis/pkg/sdi"
	"github.com/oasis-os/oasis/pkg/skin"
	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/terminal/commands"
	"github.com/oasis-os/oasis/pkg/vfs"
	"github.com/oasis-os/oasis/pkg/wm"
)

// minScrollback mirrors terminal.Interpreter's documented floor (spec
// §4.4 "N >= 200"); the coordinator, not the interpreter, owns the
// actual ring since it is the shared resource across every session.
const minScrollback = 200

// Config seeds a Coordinator's virtual screen size, session identity,
// and skin search path.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	User         string
	Home         string
	SkinDirs     []string
	// DefaultSkin, if set, is swapped in once at boot after every
	// other subsystem is wired (spec §8 scenario B "boot with skin
	// classic"). A failure to load it is logged, not fatal — the
	// coordinator still starts with no skin loaded, the same as a
	// host that never calls `skin` at all.
	DefaultSkin string
}

// pendingJob is a suspended command continuation (spec §5 suspension
// points), resumed without blocking the frame loop once dueAt elapses.
type pendingJob struct {
	dueAt  time.Time
	resume func() terminal.CommandOutput
}

// watcher is a periodic callback evaluated once per frame (spec §5
// "watch registers a periodic callback evaluated once per frame").
type watcher struct {
	interval time.Duration
	lastRun  time.Time
	fn       func()
}

// Coordinator owns every shared resource — the SDI registry, VFS,
// environment, and window set — exclusively; subsystems receive
// mutable handles only during their slot in Tick (spec §5 "Shared
// resources").
type Coordinator struct {
	Sdi      *sdi.Registry
	Skin     *skin.Engine
	Wm       *wm.Manager
	Vfs      vfs.Vfs
	Registry *terminal.Registry
	Interp   *terminal.Interpreter
	Env      *terminal.Environment
	Platform *platform.Services
	Audio    *audio.Manager
	Loader   *browser.Loader
	Nav      *browser.Controller

	cfg       Config
	rendering backend.Rendering
	inputSrc  backend.Input
	net       backend.Network
	log       *logging.Logger

	skinName string
	lastPage browser.Page

	textures map[sdi.TextureHandle]backend.TextureHandle

	scrollback []string
	pending    []*pendingJob
	watchers   map[string]*watcher

	frame uint64
	now   func() time.Time
}

// New assembles a Coordinator from backend traits plus a starting VFS;
// rendering, inputSrc, net, and aud may be nil (e.g. a headless test
// harness), in which case the affected frame-loop steps and Deps hooks
// degrade to no-ops/Unsupported rather than panicking.
func New(cfg Config, fs vfs.Vfs, rendering backend.Rendering, inputSrc backend.Input, net backend.Network, aud backend.Audio) *Coordinator {
	sdiRegistry := sdi.New()
	c := &Coordinator{
		Sdi:       sdiRegistry,
		Skin:      skin.NewEngine(sdiRegistry),
		Wm:        wm.NewManager(wm.Rect{X: 0, Y: 0, W: float64(cfg.ScreenWidth), H: float64(cfg.ScreenHeight)}),
		Vfs:       fs,
		Registry:  terminal.NewRegistry(),
		Platform:  platform.NewServices(),
		Loader:    browser.NewLoader(net),
		Nav:       browser.NewController(),
		cfg:       cfg,
		rendering: rendering,
		inputSrc:  inputSrc,
		net:       net,
		log:       logging.Default(),
		textures:  make(map[sdi.TextureHandle]backend.TextureHandle),
		watchers:  make(map[string]*watcher),
		now:       time.Now,
	}
	if aud != nil {
		if err := aud.Init(); err != nil {
			c.log.Warn(logging.CategoryCoordinator, "audio backend init failed", map[string]any{"error": err.Error()})
		} else {
			c.Audio = audio.NewManager(aud)
		}
	}
	c.Env = terminal.NewEnvironment("/home/"+cfg.User, cfg.User, cfg.Home)
	c.Interp = terminal.New(c.Registry, fs)
	commands.RegisterAll(c.Registry, c.BuildDeps())

	_ = c.Nav.LoadBookmarks(fs)
	_ = c.Nav.LoadHistory(fs)

	if cfg.DefaultSkin != "" {
		if err := c.swapSkin(cfg.DefaultSkin); err != nil {
			c.log.Warn(logging.CategorySkin, "default skin failed to load", map[string]any{"name": cfg.DefaultSkin, "error": err.Error()})
		}
	}

	c.runStartupCommands()

	return c
}

// runStartupCommands replays /home/.startup, one command per line,
// tolerating an absent file.
func (c *Coordinator) runStartupCommands() {
	data, err := c.Vfs.Read(startupPath)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.Submit(line)
	}
}

// Submit runs one top-level input line through the interpreter, the
// same call the embedding ABI's send_command makes (spec §6). A
// Pending result is registered for resumption on a later Tick rather
// than returned as final; every other result is appended to scrollback
// immediately.
func (c *Coordinator) Submit(line string) terminal.CommandOutput {
	out, _ := c.Interp.Execute(line, c.Env)
	metrics.RecordCommand(out.ExitStatus() == 0)

	if out.Kind == terminal.OutputPending {
		due := c.now().Add(out.PendingFor)
		c.pending = append(c.pending, &pendingJob{dueAt: due, resume: out.PendingResume})
		return out
	}
	c.appendScrollback(out)
	return out
}

// Watch registers a periodic callback evaluated once per frame, keyed
// so a second Watch with the same id replaces the first.
func (c *Coordinator) Watch(id string, interval time.Duration, fn func()) {
	c.watchers[id] = &watcher{interval: interval, lastRun: c.now(), fn: fn}
}

// Unwatch removes a previously registered watcher.
func (c *Coordinator) Unwatch(id string) {
	delete(c.watchers, id)
}

// Tick advances one frame: drain input, run due watchers, resume due
// pending commands, tick skin effects, sync window chrome into SDI,
// and flush to the rendering backend (spec §5 scheduling model).
func (c *Coordinator) Tick(delta time.Duration) error {
	c.drainInput()
	c.runWatchers()
	c.resumePending()
	c.Skin.Tick()
	c.syncWindowsToSdi()
	return c.flush()
}

func (c *Coordinator) drainInput() {
	if c.inputSrc == nil {
		return
	}
	for _, ev := range c.inputSrc.Poll() {
		c.routeInput(ev)
	}
}

// routeInput applies pointer events to the window manager; every
// other event kind is left for an app-level handler this package does
// not own (dashboard, terminal focus) to consume. Keeping WM routing
// here, rather than inside wm itself, matches spec §5's rule that only
// the coordinator holds mutable handles to shared resources during a
// frame.
func (c *Coordinator) routeInput(ev input.Event) {
	switch ev.Kind {
	case input.KindPointerDown:
		x, y := float64(ev.X), float64(ev.Y)
		if w, ok := c.Wm.HitTest(x, y); ok {
			c.Wm.BeginDrag(w.ID, x, y)
		}
	case input.KindCursorMove:
		c.Wm.DragTo(float64(ev.X), float64(ev.Y))
	case input.KindPointerUp:
		c.Wm.EndDrag()
	}
}

func (c *Coordinator) runWatchers() {
	now := c.now()
	for _, w := range c.watchers {
		if now.Sub(w.lastRun) >= w.interval {
			w.lastRun = now
			w.fn()
		}
	}
}

func (c *Coordinator) resumePending() {
	now := c.now()
	var remaining []*pendingJob
	for _, job := range c.pending {
		if now.Before(job.dueAt) {
			remaining = append(remaining, job)
			continue
		}
		c.appendScrollback(job.resume())
	}
	c.pending = remaining
}

// syncWindowsToSdi mirrors every managed window's frame and titlebar
// into named SDI objects, so the window manager never draws directly —
// it only ever mutates the scene graph the coordinator flushes (spec
// §4.1 rationale).
func (c *Coordinator) syncWindowsToSdi() {
	theme := c.currentWmTheme()
	focused, hasFocus := c.Wm.Focused()
	for _, w := range c.Wm.AllByZAsc() {
		frameName := "wm.window." + w.ID + ".frame"
		titleName := "wm.window." + w.ID + ".title"
		fr := w.FrameRect()
		visible := w.State != wm.StateMinimized

		bg := theme.TitlebarInactiveBg
		if hasFocus && focused.ID == w.ID {
			bg = theme.TitlebarActiveBg
		}

		c.upsertRect(frameName, fr.X, fr.Y, fr.W, w.Frame.TitlebarHeight, bg, visible, w.Z)
		c.upsertText(titleName, fr.X+4, fr.Y+2, w.TitleTruncated(40), theme.TitlebarTextColor, visible, w.Z+1)
	}
}

func (c *Coordinator) currentWmTheme() skin.WmTheme {
	if c.Skin.Current == nil {
		return skin.WmTheme{}
	}
	return c.Skin.Current.Theme.Wm
}

func (c *Coordinator) upsertRect(name string, x, y, w, h float64, fill colorx.Color, visible bool, z int64) {
	if _, exists := c.Sdi.Get(name); exists {
		_ = c.Sdi.Update(name, func(o *sdi.Object) {
			o.X, o.Y, o.W, o.H = x, y, w, h
			o.Fill = fill
			o.Visible = visible
			o.Z = z
		})
		return
	}
	_, _ = c.Sdi.Create(name, sdi.Template{X: x, Y: y, W: w, H: h, Fill: fill, Visible: visible, Z: z, Alpha: 1})
}

func (c *Coordinator) upsertText(name string, x, y float64, text string, color colorx.Color, visible bool, z int64) {
	if _, exists := c.Sdi.Get(name); exists {
		_ = c.Sdi.Update(name, func(o *sdi.Object) {
			o.X, o.Y = x, y
			o.Text = text
			o.TextColor = color
			o.Visible = visible
			o.Z = z
		})
		return
	}
	_, _ = c.Sdi.Create(name, sdi.Template{X: x, Y: y, Text: text, TextColor: color, Visible: visible, Z: z, Alpha: 1, FontSize: 10})
}

// flush paints every visible SDI object to the rendering backend in
// ascending z-order (spec §4.1 "rendering proceeds strictly in
// ascending z-order").
func (c *Coordinator) flush() error {
	if c.rendering == nil {
		c.frame++
		return nil
	}
	c.rendering.Clear(0, 0, 0, 255)
	for _, obj := range c.Sdi.IterInZOrder() {
		if !obj.Visible {
			continue
		}
		alpha := uint8(clamp01(obj.Alpha) * 255)
		if obj.Texture != nil {
			if handle, ok := c.textures[*obj.Texture]; ok {
				c.rendering.Blit(handle, obj.X, obj.Y, obj.W, obj.H)
			}
		} else if obj.W > 0 && obj.H > 0 {
			c.rendering.FillRect(obj.X, obj.Y, obj.W, obj.H, obj.Fill.R, obj.Fill.G, obj.Fill.B, alpha)
		}
		if obj.Text != "" {
			c.rendering.DrawText(obj.Text, obj.X, obj.Y, obj.FontSize, obj.TextColor.R, obj.TextColor.G, obj.TextColor.B, alpha)
		}
	}
	c.frame++
	metrics.FramesRendered.Inc()
	return c.rendering.SwapBuffers()
}

// LoadTexture loads pixel data through the rendering backend and
// returns the sdi-layer handle components reference; the coordinator
// keeps the sdi.TextureHandle -> backend.TextureHandle mapping so
// callers never see the backend's numeric handle directly.
func (c *Coordinator) LoadTexture(pixels []byte, w, h int) (sdi.TextureHandle, error) {
	if c.rendering == nil {
		return "", oerrors.New(oerrors.KindUnsupported, "no rendering backend wired")
	}
	backendHandle, err := c.rendering.LoadTexture(pixels, w, h)
	if err != nil {
		return "", err
	}
	handle := sdi.NewTextureHandle()
	c.textures[handle] = backendHandle
	return handle, nil
}

// appendScrollback records one command's output in the retained
// scrollback, eliding the oldest lines with an explicit marker rather
// than silently dropping them (spec §4.4 "never silently lost").
func (c *Coordinator) appendScrollback(out terminal.CommandOutput) {
	var lines []string
	switch out.Kind {
	case terminal.OutputText:
		lines = out.Lines
	case terminal.OutputTable:
		for _, row := range out.Rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
	case terminal.OutputError:
		lines = []string{fmt.Sprintf("%s: %s", out.ErrKind, out.ErrMessage)}
	case terminal.OutputSkinSwap:
		lines = []string{"skin swapped to " + out.SkinName}
	default:
		return
	}
	c.scrollback = append(c.scrollback, lines...)
	capLines := c.Interp.OutputLines
	if capLines < minScrollback {
		capLines = minScrollback
	}
	if len(c.scrollback) > capLines {
		elided := len(c.scrollback) - capLines
		marker := fmt.Sprintf("…(%d lines elided)…", elided)
		c.scrollback = append([]string{marker}, c.scrollback[elided:]...)
	}
}

// Scrollback returns the coordinator's retained output buffer.
func (c *Coordinator) Scrollback() []string { return c.scrollback }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BuildDeps wires every commands.Deps hook to this coordinator's live
// subsystems, so the bundled command set reaches the skin engine,
// window manager, backend traits, and browser session without
// importing any of those packages itself.
func (c *Coordinator) BuildDeps() *commands.Deps {
	return &commands.Deps{
		Sdi:      c.Sdi,
		Platform: func() *platform.Services { return c.Platform },

		SwapSkin:    c.swapSkin,
		CurrentSkin: func() string { return c.skinName },
		ListSkins:   c.listSkins,
		ThemeGet:    c.themeGet,
		Screenshot:  c.screenshot,

		WmCommand: c.wmCommand,

		Ping:     c.ping,
		HTTPGet:  c.httpGet,
		WifiInfo: c.wifiInfo,

		Browse:   c.browse,
		Bookmark: c.bookmark,
		History:  c.history,
		Reader:   c.reader,

		RunScript: c.runScript,
		Cron:      c.cron,
		Startup:   c.startup,

		PlayAudio:   c.playAudio,
		AudioStatus: c.audioStatus,
	}
}

// swapSkin loads a skin by name from the configured search dirs, or
// from /skins/<name>/skin.toml in the VFS as a fallback, then hot-swaps
// the engine onto it.
func (c *Coordinator) swapSkin(name string) error {
	var loaded *skin.Skin
	for _, dir := range c.cfg.SkinDirs {
		sk, err := skin.Load(filepath.Join(dir, name))
		if err == nil {
			loaded = sk
			break
		}
	}
	if loaded == nil {
		raw, err := c.Vfs.Read("/skins/" + name + "/skin.toml")
		if err == nil {
			sk, err := skin.LoadFromBytes(raw)
			if err != nil {
				return err
			}
			loaded = sk
		}
	}
	if loaded == nil {
		sk, err := skin.LoadBuiltin(name)
		if err != nil {
			return oerrors.New(oerrors.KindNotFound, "skin not found").WithInput(name)
		}
		loaded = sk
	}
	if err := c.Skin.Swap(loaded); err != nil {
		return err
	}
	c.skinName = name
	metrics.SkinSwaps.Inc()
	c.log.Info(logging.CategorySkin, "skin swapped", map[string]any{"name": name})
	return nil
}

func (c *Coordinator) listSkins() []string {
	names, _ := skin.Discover(c.cfg.SkinDirs)
	entries, err := c.Vfs.List("/skins")
	if err == nil {
		for _, e := range entries {
			if e.Kind == vfs.EntryDirectory {
				names = append(names, e.Name)
			}
		}
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range skin.BuiltinNames() {
		if !seen[n] {
			names = append(names, n)
		}
	}
	return names
}

// themeSlots maps the theme command's slot names to the active theme's
// derived colors.
var themeSlots = map[string]func(skin.Theme) colorx.Color{
	"background":     func(t skin.Theme) colorx.Color { return t.Background },
	"surface":        func(t skin.Theme) colorx.Color { return t.Surface },
	"primary":        func(t skin.Theme) colorx.Color { return t.Primary },
	"secondary":      func(t skin.Theme) colorx.Color { return t.Secondary },
	"text_primary":   func(t skin.Theme) colorx.Color { return t.TextPrimary },
	"text_dim":       func(t skin.Theme) colorx.Color { return t.TextDim },
	"success":        func(t skin.Theme) colorx.Color { return t.Success },
	"warning":        func(t skin.Theme) colorx.Color { return t.Warning },
	"error":          func(t skin.Theme) colorx.Color { return t.Error },
	"info":           func(t skin.Theme) colorx.Color { return t.Info },
	"status_bar_bg":  func(t skin.Theme) colorx.Color { return t.StatusBarBg },
	"border":         func(t skin.Theme) colorx.Color { return t.BorderColor },
	"cursor":         func(t skin.Theme) colorx.Color { return t.CursorColor },
	"selection_bg":   func(t skin.Theme) colorx.Color { return t.SelectionBg },
	"wm_titlebar_bg": func(t skin.Theme) colorx.Color { return t.Wm.TitlebarActiveBg },
}

func (c *Coordinator) themeGet(slot string) (string, error) {
	if c.Skin.Current == nil {
		return "", oerrors.New(oerrors.KindNotFound, "no skin loaded")
	}
	fn, ok := themeSlots[slot]
	if !ok {
		return "", oerrors.New(oerrors.KindNotFound, "unknown theme slot").WithInput(slot)
	}
	return fn(c.Skin.Current.Theme).Hex(), nil
}

func (c *Coordinator) screenshot() ([]byte, error) {
	if c.rendering == nil {
		return nil, oerrors.New(oerrors.KindUnsupported, "no rendering backend wired")
	}
	pixels, _, _, err := c.rendering.ReadPixels()
	return pixels, err
}

// wmCommand dispatches `wm <subcommand>` against the live window set.
func (c *Coordinator) wmCommand(args []string) terminal.CommandOutput {
	if len(args) == 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: wm list|close|minimize|maximize|restore|focus <id>")
	}
	switch args[0] {
	case "list":
		rows := [][]string{{"id", "title", "state", "z"}}
		for _, w := range c.Wm.AllByZAsc() {
			rows = append(rows, []string{w.ID, w.Title, wmStateName(w.State), strconv.FormatInt(w.Z, 10)})
		}
		return terminal.Table(rows)
	case "close", "minimize", "maximize", "restore", "focus":
		if len(args) != 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: wm "+args[0]+" <id>")
		}
		if err := c.runWmAction(args[0], args[1]); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("ok")
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "unknown wm subcommand: "+args[0])
	}
}

func (c *Coordinator) runWmAction(action, id string) error {
	switch action {
	case "close":
		c.Wm.Close(id)
		return nil
	case "minimize":
		return c.Wm.Minimize(id)
	case "maximize":
		return c.Wm.Maximize(id)
	case "restore":
		return c.Wm.Restore(id)
	case "focus":
		return c.Wm.Focus(id)
	default:
		return oerrors.New(oerrors.KindParse, "unknown wm action").WithInput(action)
	}
}

func wmStateName(s wm.State) string {
	switch s {
	case wm.StateMinimized:
		return "minimized"
	case wm.StateMaximized:
		return "maximized"
	case wm.StateClosed:
		return "closed"
	default:
		return "normal"
	}
}

// ping probes reachability by dialing and immediately closing a
// connection; the Network trait exposes no ICMP primitive, so a
// successful TCP handshake stands in for reachability (spec §4.8
// trait boundary — only Listen/Connect/TLSProvider are guaranteed).
func (c *Coordinator) ping(host string) (string, error) {
	if c.net == nil {
		return "", oerrors.New(oerrors.KindUnsupported, "no network backend wired")
	}
	start := c.now()
	stream, err := c.net.Connect(host)
	if err != nil {
		return "", oerrors.Wrap(oerrors.KindNetwork, err, "unreachable").WithInput(host)
	}
	stream.Close()
	elapsed := c.now().Sub(start)
	return fmt.Sprintf("%s reachable in %s", host, elapsed.Round(time.Millisecond)), nil
}

func (c *Coordinator) httpGet(rawURL string) (string, error) {
	page, err := c.Loader.Load(rawURL)
	if err != nil {
		return "", err
	}
	return page.Body, nil
}

func (c *Coordinator) wifiInfo() (string, error) {
	net := c.Platform.Network()
	if !net.Connected {
		return "not associated", nil
	}
	return fmt.Sprintf("%s (%d%%)", net.SSID, net.SignalPct), nil
}

func (c *Coordinator) browse(url string) terminal.CommandOutput {
	page, err := c.Loader.Load(url)
	if err != nil {
		return terminal.FromError(err)
	}
	c.lastPage = page
	c.Nav.Navigate(url, browser.Now())
	_ = c.Nav.SaveHistory(c.Vfs)
	return terminal.Text(page.Body)
}

func (c *Coordinator) bookmark(args []string) terminal.CommandOutput {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		var lines []string
		for _, b := range c.Nav.Bookmarks() {
			lines = append(lines, b.URL+" "+b.Title)
		}
		return terminal.Text(lines...)
	case "add":
		if len(args) < 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: bookmark add <url> [title]")
		}
		title := ""
		if len(args) > 2 {
			title = strings.Join(args[2:], " ")
		}
		c.Nav.AddBookmark(args[1], title)
		_ = c.Nav.SaveBookmarks(c.Vfs)
		return terminal.Text("bookmarked " + args[1])
	case "rm":
		if len(args) != 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: bookmark rm <url>")
		}
		c.Nav.RemoveBookmark(args[1])
		_ = c.Nav.SaveBookmarks(c.Vfs)
		return terminal.Text("removed " + args[1])
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "usage: bookmark [add|rm|list]")
	}
}

func (c *Coordinator) history(args []string) terminal.CommandOutput {
	if len(args) == 0 {
		args = []string{"list"}
	}
	// show loads a stack entry without Navigate, so the forward stack
	// survives a back step.
	show := func(url string) terminal.CommandOutput {
		page, err := c.Loader.Load(url)
		if err != nil {
			return terminal.FromError(err)
		}
		c.lastPage = page
		return terminal.Text(page.Body)
	}
	switch args[0] {
	case "back":
		entry, ok := c.Nav.Back()
		if !ok {
			return terminal.ErrorOutput(oerrors.KindNotFound, "no history")
		}
		return show(entry.URL)
	case "forward":
		entry, ok := c.Nav.Forward()
		if !ok {
			return terminal.ErrorOutput(oerrors.KindNotFound, "no history")
		}
		return show(entry.URL)
	case "list":
		var lines []string
		for _, v := range c.Nav.Visits() {
			lines = append(lines, v.URL)
		}
		return terminal.Text(lines...)
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "usage: history [back|forward|list]")
	}
}

func (c *Coordinator) reader(args []string) terminal.CommandOutput {
	on := true
	if len(args) == 1 && args[0] == "off" {
		on = false
	}
	c.Nav.SetReaderMode(on)
	if !on {
		return terminal.Text("reader mode off")
	}
	text, err := browser.ExtractReadable(c.lastPage.Body)
	if err != nil {
		return terminal.FromError(err)
	}
	return terminal.Text(strings.Split(text, "\n")...)
}

func (c *Coordinator) runScript(path string) terminal.CommandOutput {
	data, err := c.Vfs.Read(path)
	if err != nil {
		return terminal.FromError(err)
	}
	out, err := c.Interp.RunScript(string(data), c.Env)
	if err != nil {
		return terminal.FromError(err)
	}
	return out
}

// cron manages periodic watchers keyed by "cron:<command>". `cron add`
// registers a watcher that re-submits its command every interval;
// `cron rm`/`cron list` manage the set.
func (c *Coordinator) cron(args []string) terminal.CommandOutput {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		var lines []string
		for id := range c.watchers {
			if strings.HasPrefix(id, "cron:") {
				lines = append(lines, strings.TrimPrefix(id, "cron:"))
			}
		}
		return terminal.Text(lines...)
	case "add":
		if len(args) < 3 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: cron add <seconds> <command...>")
		}
		secs, err := strconv.Atoi(args[1])
		if err != nil {
			return terminal.FromError(oerrors.New(oerrors.KindParse, "invalid interval").WithInput(args[1]))
		}
		line := strings.Join(args[2:], " ")
		c.Watch("cron:"+line, time.Duration(secs)*time.Second, func() { c.Submit(line) })
		return terminal.Text("scheduled: " + line)
	case "rm":
		if len(args) < 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: cron rm <command>")
		}
		target := strings.Join(args[1:], " ")
		c.Unwatch("cron:" + target)
		return terminal.Text("removed " + target)
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "usage: cron [add|rm|list]")
	}
}

const startupPath = "/home/.startup"

// startup manages /home/.startup, the newline-delimited list of
// commands replayed once at boot (runStartupCommands).
func (c *Coordinator) startup(args []string) terminal.CommandOutput {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		data, err := c.Vfs.Read(startupPath)
		if err != nil {
			return terminal.Text()
		}
		return terminal.Text(strings.Split(string(data), "\n")...)
	case "add":
		if len(args) < 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: startup add <command...>")
		}
		line := strings.Join(args[1:], " ")
		existing, _ := c.Vfs.Read(startupPath)
		_ = c.Vfs.Mkdir(vfs.Parent(startupPath))
		updated := strings.TrimSpace(string(existing) + "\n" + line)
		if err := c.Vfs.Write(startupPath, []byte(updated)); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("added: " + line)
	case "rm":
		if len(args) < 2 {
			return terminal.ErrorOutput(oerrors.KindParse, "usage: startup rm <command...>")
		}
		target := strings.Join(args[1:], " ")
		existing, err := c.Vfs.Read(startupPath)
		if err != nil {
			return terminal.Text()
		}
		var kept []string
		for _, line := range strings.Split(string(existing), "\n") {
			if line != target && line != "" {
				kept = append(kept, line)
			}
		}
		if err := c.Vfs.Write(startupPath, []byte(strings.Join(kept, "\n"))); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("removed: " + target)
	default:
		return terminal.ErrorOutput(oerrors.KindParse, "usage: startup [add|rm|list]")
	}
}

func (c *Coordinator) playAudio(args []string) terminal.CommandOutput {
	if c.Audio == nil {
		return terminal.ErrorOutput(oerrors.KindUnsupported, "play has no backend wired in this session")
	}
	if len(args) == 0 {
		return terminal.ErrorOutput(oerrors.KindParse, "usage: play <path|pause|resume|stop>")
	}
	switch args[0] {
	case "pause":
		if err := c.Audio.Pause(); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("paused")
	case "resume":
		if err := c.Audio.Resume(); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("resumed")
	case "stop":
		if err := c.Audio.Stop(); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("stopped")
	default:
		path := args[0]
		data, err := c.Vfs.Read(path)
		if err != nil {
			return terminal.FromError(err)
		}
		c.Audio.Add(path, data)
		idx := len(c.Audio.Playlist()) - 1
		if err := c.Audio.Play(idx, data); err != nil {
			return terminal.FromError(err)
		}
		return terminal.Text("playing " + path)
	}
}

func (c *Coordinator) audioStatus() (string, error) {
	if c.Audio == nil {
		return "", oerrors.New(oerrors.KindUnsupported, "no audio backend wired")
	}
	track, ok := c.Audio.Current()
	if !ok {
		return "nothing playing", nil
	}
	return fmt.Sprintf("%s — %s (%s)", track.Metadata.Artist, track.Metadata.Title, track.Path), nil
}
