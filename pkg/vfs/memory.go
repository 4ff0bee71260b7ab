package vfs

import (
	"sort"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

type nodeKind int

const (
	nodeFile nodeKind = iota
	nodeDir
)

type node struct {
	kind nodeKind
	data []byte
}

// MemoryVfs is a fully in-memory virtual file system, grounded on
// oasis-vfs/src/memory.rs's BTreeMap-backed node table.
type MemoryVfs struct {
	nodes map[string]*node
}

// NewMemory creates an in-memory VFS containing only the root directory.
func NewMemory() *MemoryVfs {
	m := &MemoryVfs{nodes: map[string]*node{"/": {kind: nodeDir}}}
	return m
}

func (m *MemoryVfs) Read(path string) ([]byte, error) {
	p := Normalize(path)
	n, ok := m.nodes[p]
	if !ok {
		return nil, oerrors.New(oerrors.KindNotFound, "no such file").WithInput(p)
	}
	if n.kind == nodeDir {
		return nil, oerrors.New(oerrors.KindUnsupported, "is a directory, not a file").WithInput(p)
	}
	out := make([]byte, len(n.data))
	copy(out, n.data)
	return out, nil
}

func (m *MemoryVfs) Write(path string, data []byte) error {
	p := Normalize(path)
	if err := validateName(baseName(p)); err != nil {
		return err
	}
	par := Parent(p)
	if _, ok := m.nodes[par]; !ok {
		return oerrors.New(oerrors.KindNotFound, "parent directory does not exist").WithInput(par)
	}
	if existing, ok := m.nodes[p]; ok && existing.kind == nodeDir {
		return oerrors.New(oerrors.KindUnsupported, "cannot write: path is a directory").WithInput(p)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.nodes[p] = &node{kind: nodeFile, data: buf}
	return nil
}

func (m *MemoryVfs) List(path string) ([]Entry, error) {
	p := Normalize(path)
	n, ok := m.nodes[p]
	if !ok {
		return nil, oerrors.New(oerrors.KindNotFound, "no such directory").WithInput(p)
	}
	if n.kind != nodeDir {
		return nil, oerrors.New(oerrors.KindUnsupported, "not a directory").WithInput(p)
	}
	prefix := p
	if prefix != "/" {
		prefix += "/"
	}
	entries := make([]Entry, 0)
	for key, child := range m.nodes {
		if !strings.HasPrefix(key, prefix) || key == p {
			continue
		}
		rest := key[len(prefix):]
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		size := uint64(0)
		kind := EntryDirectory
		if child.kind == nodeFile {
			kind = EntryFile
			size = uint64(len(child.data))
		}
		entries = append(entries, Entry{Name: rest, Kind: kind, Size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *MemoryVfs) Stat(path string) (Metadata, error) {
	p := Normalize(path)
	n, ok := m.nodes[p]
	if !ok {
		return Metadata{}, oerrors.New(oerrors.KindNotFound, "no such path").WithInput(p)
	}
	if n.kind == nodeDir {
		return Metadata{Kind: EntryDirectory}, nil
	}
	return Metadata{Kind: EntryFile, Size: uint64(len(n.data))}, nil
}

func (m *MemoryVfs) Mkdir(path string) error {
	p := Normalize(path)
	if _, ok := m.nodes[p]; ok {
		return nil // idempotent
	}
	par := Parent(p)
	if par != p {
		if _, ok := m.nodes[par]; !ok {
			if err := m.Mkdir(par); err != nil {
				return err
			}
		}
	}
	m.nodes[p] = &node{kind: nodeDir}
	return nil
}

func (m *MemoryVfs) Remove(path string, recursive bool) error {
	p := Normalize(path)
	if p == "/" {
		return oerrors.New(oerrors.KindUnsupported, "cannot remove root")
	}
	n, ok := m.nodes[p]
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "no such path").WithInput(p)
	}
	prefix := p + "/"
	if n.kind == nodeDir {
		children := childKeys(m.nodes, prefix)
		if len(children) > 0 && !recursive {
			return oerrors.New(oerrors.KindUnsupported, "directory not empty").WithInput(p)
		}
		for _, k := range descendantKeys(m.nodes, prefix) {
			delete(m.nodes, k)
		}
	}
	delete(m.nodes, p)
	return nil
}

func (m *MemoryVfs) Rename(src, dst string) error {
	s, d := Normalize(src), Normalize(dst)
	n, ok := m.nodes[s]
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "no such path").WithInput(s)
	}
	if _, ok := m.nodes[Parent(d)]; !ok {
		return oerrors.New(oerrors.KindNotFound, "destination parent does not exist").WithInput(d)
	}
	if n.kind == nodeDir {
		prefix := s + "/"
		for _, k := range descendantKeys(m.nodes, prefix) {
			suffix := strings.TrimPrefix(k, s)
			m.nodes[d+suffix] = m.nodes[k]
			delete(m.nodes, k)
		}
	}
	m.nodes[d] = n
	delete(m.nodes, s)
	return nil
}

func (m *MemoryVfs) Exists(path string) bool {
	_, ok := m.nodes[Normalize(path)]
	return ok
}

func childKeys(nodes map[string]*node, prefix string) []string {
	var out []string
	for k := range nodes {
		if strings.HasPrefix(k, prefix) {
			rest := k[len(prefix):]
			if rest != "" && !strings.Contains(rest, "/") {
				out = append(out, k)
			}
		}
	}
	return out
}

func descendantKeys(nodes map[string]*node, prefix string) []string {
	var out []string
	for k := range nodes {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

func baseName(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return p[idx+1:]
}
