// Package skin implements the OASIS skin engine: TOML manifest
// loading, theme derivation, atomic hot-swap, and per-frame SDI
// effects (spec §4.2), grounded on oasis-skin/src/theme.rs.
package skin

import "github.com/oasis-os/oasis/pkg/colorx"

// Manifest holds the required `[manifest]` table.
type Manifest struct {
	Name         string `toml:"name"`
	Version      string `toml:"version"`
	Author       string `toml:"author"`
	Description  string `toml:"description"`
	ScreenWidth  int    `toml:"screen_width"`
	ScreenHeight int    `toml:"screen_height"`
}

// LayoutObject is a named SDI object template declared in a skin's
// `[layout.<name>]` table (spec §3 SdiObject fields).
type LayoutObject struct {
	X            float64 `toml:"x"`
	Y            float64 `toml:"y"`
	W            float64 `toml:"w"`
	H            float64 `toml:"h"`
	Fill         string  `toml:"fill"`
	Text         string  `toml:"text"`
	FontSize     float64 `toml:"font_size"`
	TextColor    string  `toml:"text_color"`
	Z            int64   `toml:"z"`
	Visible      bool    `toml:"visible"`
	Alpha        float64 `toml:"alpha"`
	BorderRadius float64 `toml:"border_radius"`
	StrokeWidth  float64 `toml:"stroke_width"`
	StrokeColor  string  `toml:"stroke_color"`
	Shadow       int     `toml:"shadow"`
}

// Features is the `[features]` table: boolean and numeric
// feature-gating flags plus the allowed command category list.
type Features struct {
	Dashboard         bool            `toml:"dashboard"`
	Terminal          bool            `toml:"terminal"`
	WindowManager     bool            `toml:"window_manager"`
	GridCols          int             `toml:"grid_cols"`
	GridRows          int             `toml:"grid_rows"`
	EffectToggles     map[string]bool `toml:"effect_toggles"`
	CommandCategories []string        `toml:"command_categories"`
}

// BaseTheme is the 9 base colors plus extended properties from
// `[theme]` that drive theme derivation (spec §4.2).
type BaseTheme struct {
	Background colorx.Color `toml:"background"`
	Primary    colorx.Color `toml:"primary"`
	Secondary  colorx.Color `toml:"secondary"`
	Text       colorx.Color `toml:"text"`
	DimText    colorx.Color `toml:"dim_text"`
	StatusBar  colorx.Color `toml:"status_bar"`
	Prompt     colorx.Color `toml:"prompt"`
	Output     colorx.Color `toml:"output"`
	Error      colorx.Color `toml:"error"`

	// Extended properties.
	Surface         colorx.Color `toml:"surface"`
	AccentHover     colorx.Color `toml:"accent_hover"`
	BorderRadius    float64      `toml:"border_radius"`
	ShadowIntensity float64      `toml:"shadow_intensity"`
	GradientEnabled bool         `toml:"gradient_enabled"`

	BarOverrides     map[string]string `toml:"bar_overrides"`
	IconOverrides    map[string]string `toml:"icon_overrides"`
	BrowserOverrides map[string]string `toml:"browser_overrides"`
	WmThemeOverrides WmThemeOverrides  `toml:"wm_theme"`
}

// WmThemeOverrides overrides window-manager chrome colors; unset
// fields cascade to documented defaults at derivation time.
type WmThemeOverrides struct {
	TitlebarActiveBg   string `toml:"titlebar_active_bg"`
	TitlebarInactiveBg string `toml:"titlebar_inactive_bg"`
	TitlebarTextColor  string `toml:"titlebar_text_color"`
	CloseGlyphColor    string `toml:"close_glyph_color"`
	MinimizeGlyphColor string `toml:"minimize_glyph_color"`
	MaximizeGlyphColor string `toml:"maximize_glyph_color"`
	CloseHoverColor    string `toml:"close_hover_color"`
	MinimizeHoverColor string `toml:"minimize_hover_color"`
	MaximizeHoverColor string `toml:"maximize_hover_color"`
	BorderColor        string `toml:"border_color"`
}

// Strings carries optional display strings from `[strings]`.
type Strings struct {
	BootText     []string `toml:"boot_text"`
	PromptFormat string   `toml:"prompt_format"`
}

// EffectParams carries optional `[effects]` parameters.
type EffectParams struct {
	CorruptedJitterPx float64 `toml:"corrupted_jitter_px"`
	CorruptedFlickerP float64 `toml:"corrupted_flicker_p"`
	CorruptedMinAlpha float64 `toml:"corrupted_min_alpha"`
	CorruptedGarbleQ  float64 `toml:"corrupted_garble_q"`
	ScanlineIntensity float64 `toml:"scanline_intensity"`
}

// Manifest-level document as parsed from TOML.
type Document struct {
	Manifest Manifest                `toml:"manifest"`
	Layout   map[string]LayoutObject `toml:"layout"`
	Features Features                `toml:"features"`
	Theme    BaseTheme               `toml:"theme"`
	Strings  Strings                 `toml:"strings"`
	Effects  EffectParams            `toml:"effects"`
}

// Skin is a fully loaded skin: the document plus its derived Theme.
type Skin struct {
	Doc   Document
	Theme Theme
}
