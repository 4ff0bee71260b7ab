// Package wm implements the OASIS window manager: an ordered set of
// decorated, draggable, z-ordered frames with hit-testing and a
// single-focus invariant (spec §4.5), grounded on the teacher's
// pkg/ui/runtime/widget.go (Rect geometry) and focus.go (focus-scope
// register/promote idiom), generalized from Widget/Focusable to
// Window.
package wm

import (
	"sort"

	"github.com/mattn/go-runewidth"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// State is a Window's lifecycle state (spec §3 Window).
type State int

const (
	StateNormal State = iota
	StateMinimized
	StateMaximized
	StateClosed
)

// Rect is an axis-aligned rectangle in virtual screen space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Frame is the non-content chrome: titlebar height plus border width.
type Frame struct {
	TitlebarHeight float64
	BorderWidth    float64
}

// Window is one managed frame.
type Window struct {
	ID      string
	Title   string
	Content Rect
	Frame   Frame
	State   State
	Z       int64

	priorRect Rect // remembered for Maximize/Restore
	insertion uint64
}

// TitleTruncated renders Title to fit maxWidth columns, measuring with
// rune width so East-Asian/wide glyphs truncate correctly, grounded
// on the teacher's pkg/ui/compositor/screen.go width measurement.
func (w *Window) TitleTruncated(maxWidth int) string {
	if runewidth.StringWidth(w.Title) <= maxWidth {
		return w.Title
	}
	return runewidth.Truncate(w.Title, maxWidth, "…")
}

// FrameRect is the window's full bounding rect including chrome.
func (w *Window) FrameRect() Rect {
	return Rect{
		X: w.Content.X - w.Frame.BorderWidth,
		Y: w.Content.Y - w.Frame.TitlebarHeight,
		W: w.Content.W + 2*w.Frame.BorderWidth,
		H: w.Content.H + w.Frame.TitlebarHeight + w.Frame.BorderWidth,
	}
}

const (
	minWidth  = 80
	minHeight = 40
	maxWidth  = 4096
	maxHeight = 4096
)

// Manager owns the ordered window set. Exclusively owned by the
// coordinator per spec §5; not safe for concurrent use.
type Manager struct {
	windows   map[string]*Window
	focused   string
	workArea  Rect
	seq       uint64
	dragState *dragState
}

type dragKind int

const (
	dragNone dragKind = iota
	dragMove
	dragResize
)

type dragState struct {
	id     string
	kind   dragKind
	startX float64
	startY float64
	orig   Rect
}

// NewManager creates an empty window set with the given work area
// (the rect maximize fills).
func NewManager(workArea Rect) *Manager {
	return &Manager{windows: make(map[string]*Window), workArea: workArea}
}

// Open creates a new Normal window and focuses it.
func (m *Manager) Open(id, title string, content Rect, frame Frame) (*Window, error) {
	if _, exists := m.windows[id]; exists {
		return nil, oerrors.New(oerrors.KindDuplicate, "window id already exists").WithInput(id)
	}
	m.seq++
	w := &Window{
		ID: id, Title: title, Content: content, Frame: frame,
		State: StateNormal, Z: int64(m.seq), insertion: m.seq,
	}
	m.windows[id] = w
	m.focus(id)
	return w, nil
}

// Get looks up a window by id; Closed windows are unreachable (spec
// §3 invariant).
func (m *Manager) Get(id string) (*Window, bool) {
	w, ok := m.windows[id]
	if !ok || w.State == StateClosed {
		return nil, false
	}
	return w, true
}

// Close removes a window from the managed set entirely.
func (m *Manager) Close(id string) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	w.State = StateClosed
	delete(m.windows, id)
	if m.focused == id {
		m.focused = ""
		m.focusTopmostNormal()
	}
}

// Minimize hides a window but retains its position for restore.
func (m *Manager) Minimize(id string) error {
	w, ok := m.Get(id)
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "window not found").WithInput(id)
	}
	w.State = StateMinimized
	if m.focused == id {
		m.focused = ""
		m.focusTopmostNormal()
	}
	return nil
}

// Maximize fills the work area, remembering the prior rect for Restore.
func (m *Manager) Maximize(id string) error {
	w, ok := m.Get(id)
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "window not found").WithInput(id)
	}
	if w.State != StateMaximized {
		w.priorRect = w.Content
	}
	w.Content = Rect{
		X: m.workArea.X + w.Frame.BorderWidth,
		Y: m.workArea.Y + w.Frame.TitlebarHeight,
		W: m.workArea.W - 2*w.Frame.BorderWidth,
		H: m.workArea.H - w.Frame.TitlebarHeight - w.Frame.BorderWidth,
	}
	w.State = StateMaximized
	m.focus(id)
	return nil
}

// Restore returns a Minimized or Maximized window to Normal at its
// prior rect.
func (m *Manager) Restore(id string) error {
	w, ok := m.Get(id)
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "window not found").WithInput(id)
	}
	if w.State == StateMaximized && w.priorRect.W > 0 {
		w.Content = w.priorRect
	}
	w.State = StateNormal
	m.focus(id)
	return nil
}

// HitTest routes a pointer position to the topmost Normal window
// whose frame or content rect contains it (spec §4.5).
func (m *Manager) HitTest(x, y float64) (*Window, bool) {
	candidates := m.normalWindowsByZDesc()
	for _, w := range candidates {
		if w.FrameRect().Contains(x, y) {
			return w, true
		}
	}
	return nil, false
}

// Focused returns the currently focused window, if any.
func (m *Manager) Focused() (*Window, bool) {
	if m.focused == "" {
		return nil, false
	}
	return m.Get(m.focused)
}

// BeginDrag starts a titlebar-move or corner-resize drag, selected by
// whether (x,y) falls in the titlebar strip or a resize-handle margin.
func (m *Manager) BeginDrag(id string, x, y float64) {
	w, ok := m.Get(id)
	if !ok || w.State != StateNormal {
		return
	}
	m.focus(id)
	fr := w.FrameRect()
	const resizeMargin = 8
	kind := dragMove
	if x >= fr.X+fr.W-resizeMargin && y >= fr.Y+fr.H-resizeMargin {
		kind = dragResize
	}
	m.dragState = &dragState{id: id, kind: kind, startX: x, startY: y, orig: w.Content}
}

// DragTo applies the in-progress drag to the live pointer position.
func (m *Manager) DragTo(x, y float64) {
	if m.dragState == nil {
		return
	}
	w, ok := m.Get(m.dragState.id)
	if !ok {
		m.dragState = nil
		return
	}
	dx := x - m.dragState.startX
	dy := y - m.dragState.startY
	switch m.dragState.kind {
	case dragMove:
		w.Content.X = m.dragState.orig.X + dx
		w.Content.Y = m.dragState.orig.Y + dy
	case dragResize:
		w.Content.W = clamp(m.dragState.orig.W+dx, minWidth, maxWidth)
		w.Content.H = clamp(m.dragState.orig.H+dy, minHeight, maxHeight)
	}
}

// EndDrag terminates the in-progress drag.
func (m *Manager) EndDrag() {
	m.dragState = nil
}

// Focus promotes id to the highest z among Normal windows (focus
// follows last pointer-down, spec §4.5).
func (m *Manager) Focus(id string) error {
	if _, ok := m.Get(id); !ok {
		return oerrors.New(oerrors.KindNotFound, "window not found").WithInput(id)
	}
	m.focus(id)
	return nil
}

func (m *Manager) focus(id string) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	m.seq++
	w.Z = int64(m.seq)
	m.focused = id
}

func (m *Manager) focusTopmostNormal() {
	normals := m.normalWindowsByZDesc()
	if len(normals) > 0 {
		m.focused = normals[0].ID
	}
}

// normalWindowsByZDesc returns every Normal window sorted highest-z
// first, ties broken by most-recently-opened.
func (m *Manager) normalWindowsByZDesc() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		if w.State == StateNormal {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z > out[j].Z
		}
		return out[i].insertion > out[j].insertion
	})
	return out
}

// AllByZAsc returns every non-Closed window in ascending z, the order
// the coordinator should flush into the SDI for paint.
func (m *Manager) AllByZAsc() []*Window {
	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].insertion < out[j].insertion
	})
	return out
}

// CheckFocusInvariant verifies spec testable property 10: at most one
// window is focused, and if any Normal window exists at least one is
// focused. Exposed for tests.
func (m *Manager) CheckFocusInvariant() bool {
	focusedCount := 0
	anyNormal := false
	for _, w := range m.windows {
		if w.State == StateNormal {
			anyNormal = true
		}
	}
	if _, ok := m.Focused(); ok {
		focusedCount = 1
	}
	if focusedCount > 1 {
		return false
	}
	if anyNormal && focusedCount == 0 {
		return false
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
