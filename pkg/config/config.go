// Package config loads the OASIS runtime configuration: default
// skin, VFS root, remote-terminal settings, and screen geometry.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// Config is the top-level YAML-tagged configuration document.
type Config struct {
	Skin     SkinConfig     `yaml:"skin"`
	Vfs      VfsConfig      `yaml:"vfs"`
	Remote   RemoteConfig   `yaml:"remote"`
	Screen   ScreenConfig   `yaml:"screen"`
	Terminal TerminalConfig `yaml:"terminal"`
}

type SkinConfig struct {
	Default    string   `yaml:"default"`
	SearchDirs []string `yaml:"search_dirs"`
}

type VfsConfig struct {
	// RootDir, when set, backs the root VFS with a HostDirVfs rather
	// than an in-memory tree.
	RootDir string `yaml:"root_dir"`
}

type RemoteConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Port           int    `yaml:"port"`
	Psk            string `yaml:"psk"`
	MaxConnections int    `yaml:"max_connections"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type TerminalConfig struct {
	HistorySize int `yaml:"history_size"`
}

// Default returns the built-in default configuration, matching the
// constants documented in spec §4.4/§4.7/§6.
func Default() *Config {
	return &Config{
		Skin:   SkinConfig{Default: "classic"},
		Screen: ScreenConfig{Width: 480, Height: 272},
		Remote: RemoteConfig{
			Enabled:        false,
			Port:           9000,
			MaxConnections: 4,
			IdleTimeoutSec: 300,
		},
		Terminal: TerminalConfig{HistorySize: 100},
	}
}

// Load reads a YAML config file, falling back to Default() fields for
// anything the file omits. A missing file is not an error — it simply
// yields the defaults, matching an embeddable runtime's need to run
// with zero host-provided configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, oerrors.Wrap(oerrors.KindIo, err, "reading config file").WithInput(path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, oerrors.Wrap(oerrors.KindParse, err, "parsing config YAML").WithInput(path)
	}
	return cfg, nil
}
