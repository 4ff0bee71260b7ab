// Package hostdir implements a Vfs backed by a real host directory,
// with change notification via fsnotify — the adapted form of the
// teacher's pkg/filewatch idiom, wired directly to the VFS path space
// instead of a separate bounded-history subsystem.
package hostdir

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/vfs"
)

// HostDirVfs maps VFS paths onto files under Root on the host disk.
type HostDirVfs struct {
	Root    string
	watcher *fsnotify.Watcher
}

// New creates a HostDirVfs rooted at dir, creating it if absent.
func New(dir string) (*HostDirVfs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, oerrors.Wrap(oerrors.KindIo, err, "creating vfs root").WithInput(dir)
	}
	return &HostDirVfs{Root: dir}, nil
}

func (h *HostDirVfs) hostPath(vpath string) string {
	norm := vfs.Normalize(vpath)
	return filepath.Join(h.Root, filepath.FromSlash(norm))
}

func (h *HostDirVfs) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(h.hostPath(path))
	if err != nil {
		return nil, translateErr(err, path)
	}
	return data, nil
}

func (h *HostDirVfs) Write(path string, data []byte) error {
	hp := h.hostPath(path)
	if err := os.MkdirAll(filepath.Dir(hp), 0o755); err != nil {
		return oerrors.Wrap(oerrors.KindIo, err, "creating parent directory").WithInput(path)
	}
	if err := os.WriteFile(hp, data, 0o644); err != nil {
		return translateErr(err, path)
	}
	return nil
}

func (h *HostDirVfs) List(path string) ([]vfs.Entry, error) {
	entries, err := os.ReadDir(h.hostPath(path))
	if err != nil {
		return nil, translateErr(err, path)
	}
	out := make([]vfs.Entry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		kind := vfs.EntryFile
		if e.IsDir() {
			kind = vfs.EntryDirectory
		}
		out = append(out, vfs.Entry{Name: e.Name(), Kind: kind, Size: uint64(info.Size())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (h *HostDirVfs) Stat(path string) (vfs.Metadata, error) {
	info, err := os.Stat(h.hostPath(path))
	if err != nil {
		return vfs.Metadata{}, translateErr(err, path)
	}
	kind := vfs.EntryFile
	if info.IsDir() {
		kind = vfs.EntryDirectory
	}
	return vfs.Metadata{Kind: kind, Size: uint64(info.Size()), Mtime: info.ModTime().Unix(), Mode: uint32(info.Mode().Perm())}, nil
}

func (h *HostDirVfs) Mkdir(path string) error {
	if err := os.MkdirAll(h.hostPath(path), 0o755); err != nil {
		return translateErr(err, path)
	}
	return nil
}

func (h *HostDirVfs) Remove(path string, recursive bool) error {
	hp := h.hostPath(path)
	if recursive {
		if err := os.RemoveAll(hp); err != nil {
			return translateErr(err, path)
		}
		return nil
	}
	if err := os.Remove(hp); err != nil {
		return translateErr(err, path)
	}
	return nil
}

func (h *HostDirVfs) Rename(src, dst string) error {
	if err := os.Rename(h.hostPath(src), h.hostPath(dst)); err != nil {
		return translateErr(err, src)
	}
	return nil
}

func (h *HostDirVfs) Exists(path string) bool {
	_, err := os.Stat(h.hostPath(path))
	return err == nil
}

// Watch starts an fsnotify watch on dir (a VFS path) and returns a
// channel of changed VFS paths. Callers close via Close.
func (h *HostDirVfs) Watch(dir string) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, oerrors.Wrap(oerrors.KindIo, err, "creating file watcher")
	}
	if err := w.Add(h.hostPath(dir)); err != nil {
		_ = w.Close()
		return nil, oerrors.Wrap(oerrors.KindIo, err, "watching directory").WithInput(dir)
	}
	h.watcher = w

	out := make(chan string, 16)
	go func() {
		defer close(out)
		for ev := range w.Events {
			rel, err := filepath.Rel(h.Root, ev.Name)
			if err != nil {
				continue
			}
			out <- vfs.Normalize(filepath.ToSlash(rel))
		}
	}()
	return out, nil
}

// Close releases the underlying watcher, if one was started.
func (h *HostDirVfs) Close() error {
	if h.watcher == nil {
		return nil
	}
	return h.watcher.Close()
}

func translateErr(err error, path string) error {
	if os.IsNotExist(err) {
		return oerrors.New(oerrors.KindNotFound, "no such path").WithInput(path)
	}
	return oerrors.Wrap(oerrors.KindIo, err, "host filesystem operation failed").WithInput(path)
}
