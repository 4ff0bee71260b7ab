// Package sdi implements the Scene Display Interface: a retained-mode
// registry of named renderable objects that is the sole producer-to-
// renderer handoff in the OASIS runtime (spec §4.1).
package sdi

import (
	"sort"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/oasis-os/oasis/pkg/colorx"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// ShadowLevel is a 0-3 drop-shadow intensity.
type ShadowLevel int

// TextureHandle is an opaque handle tied to the backend's lifetime.
type TextureHandle string

// NewTextureHandle mints a fresh opaque handle.
func NewTextureHandle() TextureHandle {
	return TextureHandle(uuid.NewString())
}

// Object is a named renderable entry (spec §3 SdiObject).
type Object struct {
	Name    string
	X, Y    float64
	W, H    float64
	Fill    colorx.Color
	Texture *TextureHandle

	Text      string
	FontSize  float64
	TextColor colorx.Color

	Z       int64
	Visible bool
	Alpha   float64

	GradientTop    *colorx.Color
	GradientBottom *colorx.Color
	BorderRadius   float64
	StrokeWidth    float64
	StrokeColor    colorx.Color
	Shadow         ShadowLevel

	// insertion is the monotonic sequence number assigned at creation,
	// used to break z-order ties deterministically (spec §3 invariant 3).
	insertion uint64
}

// Template carries the subset of Object fields a caller may set at
// creation time; Name/insertion/Z (unless given) are assigned by the
// registry.
type Template struct {
	X, Y, W, H     float64
	Fill           colorx.Color
	Texture        *TextureHandle
	Text           string
	FontSize       float64
	TextColor      colorx.Color
	Z              int64
	Visible        bool
	Alpha          float64
	GradientTop    *colorx.Color
	GradientBottom *colorx.Color
	BorderRadius   float64
	StrokeWidth    float64
	StrokeColor    colorx.Color
	Shadow         ShadowLevel
}

// Registry is the retained scene graph. It is the only source of
// truth for what appears on screen; components mutate it and the
// coordinator flushes it to the backend each frame. Not safe for
// concurrent use — per spec §5 the core is single-threaded.
type Registry struct {
	objects map[string]*Object
	seq     atomic.Uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{objects: make(map[string]*Object)}
}

// Create registers a new object. Returns KindDuplicate if name exists.
func (r *Registry) Create(name string, tpl Template) (*Object, error) {
	if _, exists := r.objects[name]; exists {
		return nil, oerrors.New(oerrors.KindDuplicate, "sdi object name already exists").WithInput(name)
	}
	obj := &Object{
		Name: name, X: tpl.X, Y: tpl.Y, W: tpl.W, H: tpl.H,
		Fill: tpl.Fill, Texture: tpl.Texture, Text: tpl.Text,
		FontSize: tpl.FontSize, TextColor: tpl.TextColor, Z: tpl.Z,
		Visible: tpl.Visible, Alpha: tpl.Alpha,
		GradientTop: tpl.GradientTop, GradientBottom: tpl.GradientBottom,
		BorderRadius: tpl.BorderRadius, StrokeWidth: tpl.StrokeWidth,
		StrokeColor: tpl.StrokeColor, Shadow: tpl.Shadow,
		insertion: r.seq.Add(1),
	}
	r.objects[name] = obj
	return obj, nil
}

// Update mutates select fields of an object via a callback, so callers
// never need a field-by-field setter surface.
func (r *Registry) Update(name string, patch func(*Object)) error {
	obj, ok := r.objects[name]
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "sdi object not found").WithInput(name)
	}
	patch(obj)
	return nil
}

// Destroy removes an object. Removing an object removes all
// references to it (spec §3 invariant 2) — there is nothing else in
// the registry that can reference it by pointer once the map entry is
// gone, and callers must re-resolve Get after destruction.
func (r *Registry) Destroy(name string) {
	delete(r.objects, name)
}

// Get looks up an object by name.
func (r *Registry) Get(name string) (*Object, bool) {
	obj, ok := r.objects[name]
	return obj, ok
}

// Len reports the number of live objects.
func (r *Registry) Len() int { return len(r.objects) }

// SetVisible toggles visibility.
func (r *Registry) SetVisible(name string, visible bool) error {
	return r.Update(name, func(o *Object) { o.Visible = visible })
}

// BringToFront reassigns Z so the object paints after every current
// object, making it last in IterInZOrder.
func (r *Registry) BringToFront(name string) error {
	obj, ok := r.objects[name]
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "sdi object not found").WithInput(name)
	}
	var maxZ int64
	for _, o := range r.objects {
		if o.Z > maxZ {
			maxZ = o.Z
		}
	}
	obj.Z = maxZ + 1
	obj.insertion = r.seq.Add(1)
	return nil
}

// IterInZOrder returns all objects in ascending z-order, ties broken
// by insertion order (spec §3 invariant 3, §4.1, and testable
// property 4). The return is a fresh, stable snapshot so callers may
// safely mutate the registry while iterating the result.
func (r *Registry) IterInZOrder() []*Object {
	out := make([]*Object, 0, len(r.objects))
	for _, o := range r.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].insertion < out[j].insertion
	})
	return out
}
