package skin

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// Load reads a skin.toml file from dir and derives its theme. Unknown
// keys are tolerated (go-toml/v2's default decode behavior) so skins
// written against a newer manifest grammar still load (spec §6).
func Load(dir string) (*Skin, error) {
	path := filepath.Join(dir, "skin.toml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.New(oerrors.KindNotFound, "skin.toml not found").WithInput(path)
		}
		return nil, oerrors.Wrap(oerrors.KindIo, err, "reading skin manifest").WithInput(path)
	}

	var doc Document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, oerrors.Wrap(oerrors.KindParse, err, "parsing skin manifest").WithInput(path)
	}
	if doc.Manifest.Name == "" {
		return nil, oerrors.New(oerrors.KindParse, "skin manifest missing [manifest].name").WithInput(path)
	}

	return &Skin{Doc: doc, Theme: ToUITheme(doc.Theme)}, nil
}

// LoadFromBytes parses an in-memory skin document, e.g. one read
// through the VFS rather than the host filesystem.
func LoadFromBytes(raw []byte) (*Skin, error) {
	var doc Document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, oerrors.Wrap(oerrors.KindParse, err, "parsing skin manifest")
	}
	if doc.Manifest.Name == "" {
		return nil, oerrors.New(oerrors.KindParse, "skin manifest missing [manifest].name")
	}
	return &Skin{Doc: doc, Theme: ToUITheme(doc.Theme)}, nil
}

// Discover lists skin directory names under searchDirs that contain a
// skin.toml, in first-found order (spec §6 skin search path).
func Discover(searchDirs []string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, dir := range searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if seen[e.Name()] {
				continue
			}
			if _, err := os.Stat(filepath.Join(dir, e.Name(), "skin.toml")); err == nil {
				names = append(names, e.Name())
				seen[e.Name()] = true
			}
		}
	}
	return names, nil
}
