package colorx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexVariants(t *testing.T) {
	c, err := ParseHex("#f00")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 0), c)

	c, err = ParseHex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 0), c)

	c, err = ParseHex("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)
}

func TestParseHexMalformedIsTotal(t *testing.T) {
	for _, s := range []string{"", "rgb(1,2,3)", "#zz0000", "#12345"} {
		_, err := ParseHex(s)
		assert.Error(t, err, s)
	}
}

func TestLightenDarken(t *testing.T) {
	base := RGB(100, 100, 100)
	assert.Greater(t, int(base.Lighten(0.5).R), int(base.R))
	assert.Less(t, int(base.Darken(0.5).R), int(base.R))
	assert.Equal(t, RGB(255, 255, 255), base.Lighten(1))
	assert.Equal(t, Color{A: 255}, base.Darken(1))
}

func TestWithAlpha(t *testing.T) {
	c := RGB(10, 20, 30).WithAlpha(0.5)
	assert.InDelta(t, 127, int(c.A), 1)
}
