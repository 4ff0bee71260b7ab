package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "classic", cfg.Skin.Default)
	assert.Equal(t, 480, cfg.Screen.Width)
	assert.Equal(t, 9000, cfg.Remote.Port)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oasis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skin:\n  default: modern\nremote:\n  port: 9100\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "modern", cfg.Skin.Default)
	assert.Equal(t, 9100, cfg.Remote.Port)
	assert.Equal(t, 480, cfg.Screen.Width) // untouched default survives
}
