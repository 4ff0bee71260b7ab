package vfs

import (
	"sort"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// OverlayVfs combines a read-only Base with a writable in-memory
// overlay and a tombstone set for deletes — the embedded-inside-engine
// use case that needs a writable view of read-only game assets (spec
// §4.3, §9). Lookup order is overlay, then base; writes always land
// in the overlay; deletes shadow the base via a tombstone.
type OverlayVfs struct {
	Base      Vfs
	overlay   *MemoryVfs
	tombstone map[string]bool
}

// NewOverlay wraps base with a fresh, empty writable overlay.
func NewOverlay(base Vfs) *OverlayVfs {
	return &OverlayVfs{Base: base, overlay: NewMemory(), tombstone: make(map[string]bool)}
}

func (o *OverlayVfs) Read(path string) ([]byte, error) {
	p := Normalize(path)
	if o.tombstone[p] {
		return nil, oerrors.New(oerrors.KindNotFound, "no such file").WithInput(p)
	}
	if o.overlay.Exists(p) {
		return o.overlay.Read(p)
	}
	return o.Base.Read(p)
}

func (o *OverlayVfs) Write(path string, data []byte) error {
	p := Normalize(path)
	if err := o.ensureOverlayParents(p); err != nil {
		return err
	}
	delete(o.tombstone, p)
	return o.overlay.Write(p, data)
}

// ensureOverlayParents mirrors base directories into the overlay so a
// write beneath a base-only directory succeeds without requiring the
// caller to have mkdir'd through the overlay first.
func (o *OverlayVfs) ensureOverlayParents(path string) error {
	par := Parent(path)
	if o.overlay.Exists(par) || par == "/" {
		if par == "/" {
			return nil
		}
		if o.overlay.Exists(par) {
			return nil
		}
	}
	if o.Base.Exists(par) {
		if err := o.ensureOverlayParents(par); err != nil {
			return err
		}
		return o.overlay.Mkdir(par)
	}
	if err := o.ensureOverlayParents(par); err != nil {
		return err
	}
	return o.overlay.Mkdir(par)
}

func (o *OverlayVfs) List(path string) ([]Entry, error) {
	p := Normalize(path)
	seen := make(map[string]Entry)

	if baseEntries, err := o.Base.List(p); err == nil {
		for _, e := range baseEntries {
			childPath := p + "/" + e.Name
			if p == "/" {
				childPath = "/" + e.Name
			}
			if !o.tombstone[childPath] {
				seen[e.Name] = e
			}
		}
	}
	if overlayEntries, err := o.overlay.List(p); err == nil {
		for _, e := range overlayEntries {
			seen[e.Name] = e
		}
	} else if len(seen) == 0 {
		return nil, oerrors.New(oerrors.KindNotFound, "no such directory").WithInput(p)
	}

	out := make([]Entry, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (o *OverlayVfs) Stat(path string) (Metadata, error) {
	p := Normalize(path)
	if o.tombstone[p] {
		return Metadata{}, oerrors.New(oerrors.KindNotFound, "no such path").WithInput(p)
	}
	if o.overlay.Exists(p) {
		return o.overlay.Stat(p)
	}
	return o.Base.Stat(p)
}

func (o *OverlayVfs) Mkdir(path string) error {
	p := Normalize(path)
	delete(o.tombstone, p)
	if err := o.ensureOverlayParents(p); err != nil {
		return err
	}
	return o.overlay.Mkdir(p)
}

func (o *OverlayVfs) Remove(path string, recursive bool) error {
	p := Normalize(path)
	existsBase := o.Base.Exists(p)
	existsOverlay := o.overlay.Exists(p)
	if !existsBase && !existsOverlay {
		return oerrors.New(oerrors.KindNotFound, "no such path").WithInput(p)
	}
	if existsOverlay {
		_ = o.overlay.Remove(p, recursive)
	}
	if existsBase {
		o.tombstone[p] = true
	}
	return nil
}

func (o *OverlayVfs) Rename(src, dst string) error {
	data, err := o.Read(src)
	if err == nil {
		if werr := o.Write(dst, data); werr != nil {
			return werr
		}
		return o.Remove(src, true)
	}
	// Directory rename: best-effort list + recursive copy.
	entries, lerr := o.List(src)
	if lerr != nil {
		return err
	}
	if err := o.Mkdir(dst); err != nil {
		return err
	}
	for _, e := range entries {
		if rerr := o.Rename(src+"/"+e.Name, dst+"/"+e.Name); rerr != nil {
			return rerr
		}
	}
	return o.Remove(src, true)
}

func (o *OverlayVfs) Exists(path string) bool {
	p := Normalize(path)
	if o.tombstone[p] {
		return false
	}
	return o.overlay.Exists(p) || o.Base.Exists(p)
}

// DiscardOverlay drops all writes and tombstones, restoring base
// contents (testable property 8).
func (o *OverlayVfs) DiscardOverlay() {
	o.overlay = NewMemory()
	o.tombstone = make(map[string]bool)
}
