package skin

import "github.com/oasis-os/oasis/pkg/colorx"

// Theme is the set of ~30 derived UI slot colors plus the
// window-manager chrome sub-theme. Every field has a value once
// ToUITheme has run, whether derived or overridden (spec §4.2
// invariant, testable property 3).
type Theme struct {
	// Core palette.
	Background colorx.Color
	Surface    colorx.Color
	Primary    colorx.Color
	Secondary  colorx.Color

	// Text hierarchy.
	TextPrimary   colorx.Color
	TextDim       colorx.Color
	TextOnPrimary colorx.Color

	// Accents / glow variants.
	AccentHover   colorx.Color
	AccentActive  colorx.Color
	PrimaryGlow   colorx.Color
	SecondaryGlow colorx.Color

	// Semantic colors.
	Success colorx.Color
	Warning colorx.Color
	Error   colorx.Color
	Info    colorx.Color

	// Message sources.
	OutputText colorx.Color
	ErrorText  colorx.Color
	PromptText colorx.Color

	// UI elements.
	StatusBarBg    colorx.Color
	StatusBarText  colorx.Color
	ScrollbarThumb colorx.Color
	ScrollbarTrack colorx.Color
	BorderColor    colorx.Color
	ButtonBg       colorx.Color
	ButtonHoverBg  colorx.Color

	// Mode indicators.
	BatteryText colorx.Color
	WifiIcon    colorx.Color
	ClockText   colorx.Color

	// Special.
	CursorColor colorx.Color
	SelectionBg colorx.Color
	ShadowColor colorx.Color

	BorderRadius    float64
	ShadowIntensity float64
	GradientEnabled bool

	Wm      WmTheme
	Browser map[string]colorx.Color
	Icons   map[string]colorx.Color
}

// WmTheme is the window manager chrome sub-theme (spec §4.5 glue,
// supplemented from oasis-skin/src/theme.rs build_wm_theme()).
type WmTheme struct {
	TitlebarActiveBg   colorx.Color
	TitlebarInactiveBg colorx.Color
	TitlebarTextColor  colorx.Color
	CloseGlyphColor    colorx.Color
	MinimizeGlyphColor colorx.Color
	MaximizeGlyphColor colorx.Color
	CloseHoverColor    colorx.Color
	MinimizeHoverColor colorx.Color
	MaximizeHoverColor colorx.Color
	BorderColor        colorx.Color
}

// ToUITheme is the deterministic pure function from the 9 base colors
// plus extended properties to every derived slot. Overrides in
// bar_overrides/icon_overrides/browser_overrides/wm_theme replace
// derived values slot-by-slot; unspecified slots retain derived
// values (spec §4.2).
func ToUITheme(base BaseTheme) Theme {
	t := Theme{
		Background: base.Background,
		Surface:    orDefault(base.Surface, base.Background.Lighten(0.05)),
		Primary:    base.Primary,
		Secondary:  base.Secondary,

		TextPrimary:   base.Text,
		TextDim:       base.DimText,
		TextOnPrimary: contrastingText(base.Primary),

		AccentHover:   orDefault(base.AccentHover, base.Primary.Lighten(0.15)),
		AccentActive:  base.Primary.Darken(0.1),
		PrimaryGlow:   base.Primary.WithAlpha(0.35),
		SecondaryGlow: base.Secondary.WithAlpha(0.35),

		Success: colorx.RGB(0x4c, 0xaf, 0x50),
		Warning: colorx.RGB(0xff, 0xb3, 0x00),
		Error:   base.Error,
		Info:    base.Secondary.Lighten(0.2),

		OutputText: base.Output,
		ErrorText:  base.Error,
		PromptText: base.Prompt,

		StatusBarBg:    base.StatusBar.WithAlpha(0.8),
		StatusBarText:  base.Text,
		ScrollbarThumb: base.Secondary.Lighten(0.1),
		ScrollbarTrack: base.Background.Lighten(0.03),
		BorderColor:    base.Secondary.Darken(0.2),
		ButtonBg:       base.Primary.Darken(0.05),
		ButtonHoverBg:  base.Primary.Lighten(0.1),

		BatteryText: base.Primary.Lighten(0.3),
		WifiIcon:    base.Primary.Lighten(0.2),
		ClockText:   base.Text,

		CursorColor: base.Primary,
		SelectionBg: base.Primary.WithAlpha(0.3),
		ShadowColor: colorx.RGBA(0, 0, 0, 0).WithAlpha(orFloat(base.ShadowIntensity, 0.4)),

		BorderRadius:    orFloat(base.BorderRadius, 4),
		ShadowIntensity: orFloat(base.ShadowIntensity, 0.4),
		GradientEnabled: base.GradientEnabled,

		Browser: map[string]colorx.Color{},
		Icons:   map[string]colorx.Color{},
	}

	t.Wm = buildWmTheme(base, t)

	applyColorOverrides(&t.StatusBarBg, base.BarOverrides, "status_bar_bg")
	applyColorOverrides(&t.StatusBarText, base.BarOverrides, "status_bar_text")
	applyColorOverrides(&t.BatteryText, base.BarOverrides, "battery_text")
	applyColorOverrides(&t.ClockText, base.BarOverrides, "clock_text")

	for k, v := range base.IconOverrides {
		if c, err := colorx.ParseHex(v); err == nil {
			t.Icons[k] = c
		}
	}
	for k, v := range base.BrowserOverrides {
		if c, err := colorx.ParseHex(v); err == nil {
			t.Browser[k] = c
		}
	}

	return t
}

// buildWmTheme applies [wm_theme] overrides atop derived defaults,
// with the two default-cascading rules from oasis-skin/src/theme.rs:
// glyph colors default to TitlebarTextColor, and hover colors default
// to lighten(base, 0.15) of the corresponding glyph color.
func buildWmTheme(base BaseTheme, t Theme) WmTheme {
	wm := WmTheme{
		TitlebarActiveBg:   base.Primary.Darken(0.1),
		TitlebarInactiveBg: base.Secondary.Darken(0.2),
		TitlebarTextColor:  contrastingText(base.Primary),
		BorderColor:        t.BorderColor,
	}
	wm.CloseGlyphColor = wm.TitlebarTextColor
	wm.MinimizeGlyphColor = wm.TitlebarTextColor
	wm.MaximizeGlyphColor = wm.TitlebarTextColor

	ov := base.WmThemeOverrides
	overrideIfSet(&wm.TitlebarActiveBg, ov.TitlebarActiveBg)
	overrideIfSet(&wm.TitlebarInactiveBg, ov.TitlebarInactiveBg)
	overrideIfSet(&wm.TitlebarTextColor, ov.TitlebarTextColor)
	overrideIfSet(&wm.CloseGlyphColor, ov.CloseGlyphColor)
	overrideIfSet(&wm.MinimizeGlyphColor, ov.MinimizeGlyphColor)
	overrideIfSet(&wm.MaximizeGlyphColor, ov.MaximizeGlyphColor)
	overrideIfSet(&wm.BorderColor, ov.BorderColor)

	wm.CloseHoverColor = wm.CloseGlyphColor.Lighten(0.15)
	wm.MinimizeHoverColor = wm.MinimizeGlyphColor.Lighten(0.15)
	wm.MaximizeHoverColor = wm.MaximizeGlyphColor.Lighten(0.15)
	overrideIfSet(&wm.CloseHoverColor, ov.CloseHoverColor)
	overrideIfSet(&wm.MinimizeHoverColor, ov.MinimizeHoverColor)
	overrideIfSet(&wm.MaximizeHoverColor, ov.MaximizeHoverColor)

	return wm
}

func applyColorOverrides(slot *colorx.Color, overrides map[string]string, key string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides[key]; ok {
		if c, err := colorx.ParseHex(v); err == nil {
			*slot = c
		}
	}
}

func overrideIfSet(slot *colorx.Color, hex string) {
	if hex == "" {
		return
	}
	if c, err := colorx.ParseHex(hex); err == nil {
		*slot = c
	}
}

func orDefault(c colorx.Color, fallback colorx.Color) colorx.Color {
	if c == (colorx.Color{}) {
		return fallback
	}
	return c
}

func orFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// contrastingText picks black or white text for readability atop bg,
// using the standard relative-luminance heuristic.
func contrastingText(bg colorx.Color) colorx.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 140 {
		return colorx.RGB(0x10, 0x10, 0x10)
	}
	return colorx.RGB(0xf0, 0xf0, 0xf0)
}
