package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotentAndTotal(t *testing.T) {
	cases := map[string]string{
		"/a/b/./c/../d//e/": "/a/b/d/e",
		"/../..":            "/",
		"":                  "/",
		"a/b":               "/a/b",
		"//x//y":            "/x/y",
	}
	for in, want := range cases {
		got := Normalize(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, Normalize(got), "not idempotent: %s", in)
	}
}

func TestMemoryWriteReadRoundtrip(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Mkdir("/tmp"))
	require.NoError(t, m.Write("/tmp/x", []byte("hi")))
	data, err := m.Read("/tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestMemoryWriteWithoutParentFails(t *testing.T) {
	m := NewMemory()
	err := m.Write("/no/such/file", []byte("x"))
	assert.Error(t, err)
}

func TestMemoryRemoveNonEmptyDirRefuses(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Mkdir("/d"))
	require.NoError(t, m.Write("/d/f", []byte("x")))
	assert.Error(t, m.Remove("/d", false))
	assert.NoError(t, m.Remove("/d", true))
}

func TestOverlayWriteThenReadRegardlessOfBaseLayer(t *testing.T) {
	base := NewMemory()
	require.NoError(t, base.Mkdir("/data"))
	require.NoError(t, base.Write("/data/base.txt", []byte("base")))

	ov := NewOverlay(base)

	data, err := ov.Read("/data/base.txt")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))

	require.NoError(t, ov.Write("/data/base.txt", []byte("overridden")))
	data, err = ov.Read("/data/base.txt")
	require.NoError(t, err)
	assert.Equal(t, "overridden", string(data))

	require.NoError(t, ov.Write("/data/new.txt", []byte("new")))
	data, err = ov.Read("/data/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestOverlayRemoveBaseEntryHidesFromListing(t *testing.T) {
	base := NewMemory()
	require.NoError(t, base.Mkdir("/data"))
	require.NoError(t, base.Write("/data/a", []byte("a")))
	require.NoError(t, base.Write("/data/b", []byte("b")))

	ov := NewOverlay(base)
	require.NoError(t, ov.Remove("/data/a", false))

	entries, err := ov.List("/data")
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.NotContains(t, names, "a")
	assert.Contains(t, names, "b")
}

func TestOverlayDiscardRestoresBase(t *testing.T) {
	base := NewMemory()
	require.NoError(t, base.Write("/f", []byte("base")))

	ov := NewOverlay(base)
	require.NoError(t, ov.Write("/f", []byte("changed")))
	require.NoError(t, ov.Remove("/f", false))
	ov.DiscardOverlay()

	data, err := ov.Read("/f")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))
}
