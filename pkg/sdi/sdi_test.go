package sdi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

func TestCreateDuplicateNameFails(t *testing.T) {
	r := New()
	_, err := r.Create("box", Template{})
	require.NoError(t, err)
	_, err = r.Create("box", Template{})
	require.Error(t, err)
	assert.Equal(t, oerrors.KindDuplicate, oerrors.KindOf(err))
}

func TestDestroyRemovesLookup(t *testing.T) {
	r := New()
	_, _ = r.Create("box", Template{})
	r.Destroy("box")
	_, ok := r.Get("box")
	assert.False(t, ok)
}

func TestZOrderStableTieBreak(t *testing.T) {
	r := New()
	_, _ = r.Create("a", Template{Z: 1})
	_, _ = r.Create("b", Template{Z: 1})
	_, _ = r.Create("c", Template{Z: 0})

	order := r.IterInZOrder()
	names := []string{order[0].Name, order[1].Name, order[2].Name}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestBringToFrontMakesLast(t *testing.T) {
	r := New()
	_, _ = r.Create("a", Template{Z: 5})
	_, _ = r.Create("b", Template{Z: 1})
	require.NoError(t, r.BringToFront("b"))

	order := r.IterInZOrder()
	assert.Equal(t, "b", order[len(order)-1].Name)
}

func TestIdenticalObjectsProduceIdenticalOrder(t *testing.T) {
	build := func() *Registry {
		r := New()
		_, _ = r.Create("a", Template{Z: 3})
		_, _ = r.Create("b", Template{Z: 1})
		_, _ = r.Create("c", Template{Z: 2})
		return r
	}
	r1, r2 := build(), build()
	names1 := namesOf(r1.IterInZOrder())
	names2 := namesOf(r2.IterInZOrder())
	assert.Equal(t, names1, names2)
}

func namesOf(objs []*Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}
