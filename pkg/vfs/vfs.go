// Package vfs implements the OASIS virtual file system: an abstract
// hierarchical byte store with three implementations (in-memory,
// host-directory-backed, and a read-only-base/writable-overlay
// combination), grounded on oasis-vfs/src/memory.rs.
package vfs

import (
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// EntryKind distinguishes files from directories.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
)

// Entry is one directory listing row.
type Entry struct {
	Name string
	Kind EntryKind
	Size uint64
}

// Metadata describes a single node.
type Metadata struct {
	Kind  EntryKind
	Size  uint64
	Mtime int64
	Mode  uint32
	Owner string
}

// Vfs is the abstract storage contract (spec §4.3).
type Vfs interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	List(path string) ([]Entry, error)
	Stat(path string) (Metadata, error)
	Mkdir(path string) error
	Remove(path string, recursive bool) error
	Rename(src, dst string) error
	Exists(path string) bool
}

// Normalize implements the total path-normalization law of spec §4.3
// and testable property 1: input `/a/b/./c/../d//e/` becomes
// `/a/b/d/e`; `..` above root clamps at root; repeated slashes
// collapse; trailing slash is stripped except for root.
func Normalize(path string) string {
	parts := make([]string, 0, 8)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			// skip
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// Parent returns the normalized parent directory of a normalized path.
func Parent(path string) string {
	if path == "/" {
		return "/"
	}
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// validateName rejects a path component containing a null byte; it
// does not check for a path separator.
func validateName(name string) error {
	if strings.ContainsRune(name, 0) {
		return oerrors.New(oerrors.KindParse, "path contains a null byte").WithInput(name)
	}
	return nil
}
