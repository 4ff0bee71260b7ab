package skin

import (
	"math/rand"

	"github.com/oasis-os/oasis/pkg/colorx"
	"github.com/oasis-os/oasis/pkg/sdi"
)

// Engine owns the active Skin and drives hot-swap plus per-frame
// effects over an SDI registry (spec §4.2). Swap is construct-before-
// mutate: the incoming skin's SDI objects are built and validated
// before any outgoing object is destroyed, so a bad skin never leaves
// the screen half-torn-down.
type Engine struct {
	Current *Skin
	sdi     *sdi.Registry
	rng     *rand.Rand

	corruptedTick int
}

// NewEngine starts with no skin loaded; call Swap to install one.
func NewEngine(registry *sdi.Registry) *Engine {
	return &Engine{sdi: registry, rng: rand.New(rand.NewSource(1))}
}

// Swap installs next as the active skin, destroying SDI objects owned
// by the outgoing skin that the incoming skin does not redeclare, and
// creating or updating the rest from next's layout table.
func (e *Engine) Swap(next *Skin) error {
	for name, lo := range next.Doc.Layout {
		tpl := layoutToTemplate(lo, next.Theme)
		if _, exists := e.sdi.Get(name); exists {
			if err := e.sdi.Update(name, func(o *sdi.Object) { applyTemplate(o, tpl) }); err != nil {
				return err
			}
			continue
		}
		if _, err := e.sdi.Create(name, tpl); err != nil {
			return err
		}
	}

	if e.Current != nil {
		for name := range e.Current.Doc.Layout {
			if _, stillWanted := next.Doc.Layout[name]; !stillWanted {
				e.sdi.Destroy(name)
			}
		}
	}

	e.Current = next
	e.corruptedTick = 0
	return nil
}

func layoutToTemplate(lo LayoutObject, theme Theme) sdi.Template {
	tpl := sdi.Template{
		X: lo.X, Y: lo.Y, W: lo.W, H: lo.H,
		Text:         lo.Text,
		FontSize:     lo.FontSize,
		Z:            lo.Z,
		Visible:      lo.Visible,
		Alpha:        lo.Alpha,
		BorderRadius: lo.BorderRadius,
		StrokeWidth:  lo.StrokeWidth,
		TextColor:    theme.TextPrimary,
	}
	if lo.Fill != "" {
		if c, err := colorx.ParseHex(lo.Fill); err == nil {
			tpl.Fill = c
		}
	}
	if lo.TextColor != "" {
		if c, err := colorx.ParseHex(lo.TextColor); err == nil {
			tpl.TextColor = c
		}
	}
	if lo.StrokeColor != "" {
		if c, err := colorx.ParseHex(lo.StrokeColor); err == nil {
			tpl.StrokeColor = c
		}
	}
	return tpl
}

func applyTemplate(o *sdi.Object, tpl sdi.Template) {
	o.X, o.Y, o.W, o.H = tpl.X, tpl.Y, tpl.W, tpl.H
	o.Fill = tpl.Fill
	o.Text = tpl.Text
	o.FontSize = tpl.FontSize
	o.TextColor = tpl.TextColor
	o.Visible = tpl.Visible
	o.Alpha = tpl.Alpha
	o.BorderRadius = tpl.BorderRadius
	o.StrokeWidth = tpl.StrokeWidth
	o.StrokeColor = tpl.StrokeColor
}

// Tick advances per-frame effects declared in the active skin's
// [effects] table and [features].effect_toggles, mutating the
// affected SDI objects in place for the caller's next flush.
func (e *Engine) Tick() {
	if e.Current == nil {
		return
	}
	params := e.Current.Doc.Effects
	toggles := e.Current.Doc.Features.EffectToggles

	corrupted := toggles["corrupted"]
	scanlines := toggles["scanlines"]
	if !corrupted && !scanlines {
		return
	}
	e.corruptedTick++

	jitter := orFloat(params.CorruptedJitterPx, 2)
	flickerP := orFloat(params.CorruptedFlickerP, 0.05)
	minAlpha := orFloat(params.CorruptedMinAlpha, 0.6)
	intensity := orFloat(params.ScanlineIntensity, 0.15)

	for _, name := range e.layoutNames() {
		_ = e.sdi.Update(name, func(o *sdi.Object) {
			if corrupted {
				o.X += (e.rng.Float64()*2 - 1) * jitter
				o.Y += (e.rng.Float64()*2 - 1) * jitter
				if e.rng.Float64() < flickerP {
					o.Alpha = minAlpha + e.rng.Float64()*(1-minAlpha)
				} else {
					o.Alpha = 1
				}
			}
			if scanlines {
				o.Alpha = 1 - intensity*0.5
			}
		})
	}
}

func (e *Engine) layoutNames() []string {
	if e.Current == nil {
		return nil
	}
	names := make([]string, 0, len(e.Current.Doc.Layout))
	for name := range e.Current.Doc.Layout {
		names = append(names, name)
	}
	return names
}
