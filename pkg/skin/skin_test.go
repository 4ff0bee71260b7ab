package skin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasis-os/oasis/pkg/colorx"
	"github.com/oasis-os/oasis/pkg/sdi"
)

const sampleSkin = `
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

func TestLoadFromBytesDerivesTheme(t *testing.T) {
	s, err := LoadFromBytes([]byte(sampleSkin))
	require.NoError(t, err)
	assert.Equal(t, "classic", s.Doc.Manifest.Name)
	assert.NotEqual(t, s.Theme.Background, s.Theme.StatusBarBg)
	assert.True(t, s.Theme.StatusBarBg.A < 255, "status bar bg should carry alpha from WithAlpha(0.8)")
}

func TestToUITotalAcrossEmptyBaseTheme(t *testing.T) {
	// Deriving from a zero-value BaseTheme must never panic: totality
	// of theme derivation (testable property 3).
	theme := ToUITheme(BaseTheme{})
	assert.Equal(t, float64(4), theme.BorderRadius)
}

func TestWmThemeGlyphColorsDefaultToTitlebarText(t *testing.T) {
	theme := ToUITheme(BaseTheme{Primary: mustHex(t, "#3a7bd5")})
	assert.Equal(t, theme.Wm.TitlebarTextColor, theme.Wm.CloseGlyphColor)
	assert.Equal(t, theme.Wm.TitlebarTextColor, theme.Wm.MinimizeGlyphColor)
}

func TestWmThemeHoverDefaultsToLightenedGlyph(t *testing.T) {
	theme := ToUITheme(BaseTheme{Primary: mustHex(t, "#3a7bd5")})
	assert.Equal(t, theme.Wm.CloseGlyphColor.Lighten(0.15), theme.Wm.CloseHoverColor)
}

func TestWmThemeOverrideWins(t *testing.T) {
	base := BaseTheme{Primary: mustHex(t, "#3a7bd5")}
	base.WmThemeOverrides.CloseGlyphColor = "#ff0000"
	theme := ToUITheme(base)
	assert.Equal(t, mustHex(t, "#ff0000"), theme.Wm.CloseGlyphColor)
}

func TestEngineSwapCreatesAndDestroysObjects(t *testing.T) {
	registry := sdi.New()
	engine := NewEngine(registry)

	first, err := LoadFromBytes([]byte(sampleSkin))
	require.NoError(t, err)
	require.NoError(t, engine.Swap(first))
	assert.Equal(t, 1, registry.Len())

	second := &Skin{Doc: Document{Manifest: Manifest{Name: "second"}}}
	require.NoError(t, engine.Swap(second))
	assert.Equal(t, 0, registry.Len(), "swapping to a skin without statusbar should destroy it")
}

func mustHex(t *testing.T, s string) colorx.Color {
	c, err := colorx.ParseHex(s)
	require.NoError(t, err)
	return c
}

func TestLoadBuiltinClassicAndModernDiffer(t *testing.T) {
	classic, err := LoadBuiltin("classic")
	require.NoError(t, err)
	modern, err := LoadBuiltin("modern")
	require.NoError(t, err)

	assert.Equal(t, "classic", classic.Doc.Manifest.Name)
	assert.Equal(t, "modern", modern.Doc.Manifest.Name)
	assert.NotEqual(t, classic.Theme.Primary, modern.Theme.Primary)
}

func TestLoadBuiltinUnknownNameIsNotFound(t *testing.T) {
	_, err := LoadBuiltin("nonexistent")
	assert.Error(t, err)
}
