// Package embedding implements the host-embedding surface from spec
// §6: an opaque instance registry plus the tick/send_input/get_buffer/
// send_command/add_vfs_file/register_callback operations a C ABI
// shim (cmd/oasisffi) exports across the boundary. The Go API here is
// the thing cgo calls into; it is also usable directly by a Go host
// that links the module in-process, skipping cgo entirely.
//
// Grounded on the coordinator's own Go-level API (Tick, Submit,
// Vfs.Write) — there is no cgo or C-ABI precedent anywhere in the
// example pack, so the handle-registry idiom here mirrors the one
// pkg/sdi and pkg/backend already use for opaque TextureHandle/
// TrackHandle values rather than an outside source.
package embedding

import (
	"strconv"
	"sync"
	"time"

	"github.com/oasis-os/oasis/pkg/backend"
	"github.com/oasis-os/oasis/pkg/coordinator"
	"github.com/oasis-os/oasis/pkg/input"
	"github.com/oasis-os/oasis/pkg/terminal"
	"github.com/oasis-os/oasis/pkg/vfs"
)

// Handle is the opaque instance identifier returned by Create.
type Handle uint64

// CallbackKind tags the event classes a host may subscribe to via
// RegisterCallback (spec §6 "wires host events").
type CallbackKind int

const (
	CallbackSkinSwap CallbackKind = iota
	CallbackWindowClosed
	CallbackCommandExit
)

// Callback receives the CallbackKind that fired and a free-form
// payload string (skin name, window id, exit code as decimal).
type Callback func(kind CallbackKind, payload string)

// instance bundles one Coordinator with the in-process queue backends
// a non-Go host has no other way to drive.
type instance struct {
	mu        sync.Mutex
	coord     *coordinator.Coordinator
	inputQ    *backend.NullInput
	rendering backend.Rendering
	callbacks map[CallbackKind][]Callback
}

var (
	registryMu sync.Mutex
	registry   = map[Handle]*instance{}
	nextHandle uint64
)

// Options configures Create. Rendering/Network/Audio default to the
// Null reference backends (matching cmd/oasis headless boot) when nil;
// a real embedding host that wants GetBuffer to return actual pixels
// must supply a Rendering backend whose ReadPixels is implemented —
// the core never implements one itself (spec §1 "concrete rendering
// backend... out of scope").
type Options struct {
	ScreenWidth  int
	ScreenHeight int
	User         string
	Home         string
	SkinDirs     []string
	DefaultSkin  string
	Fs           vfs.Vfs
	Rendering    backend.Rendering
	Network      backend.Network
	Audio        backend.Audio
}

// Create assembles a new runtime instance and returns its opaque
// handle (spec §6 "opaque instance handle from create").
func Create(opts Options) Handle {
	if opts.Fs == nil {
		opts.Fs = vfs.NewMemory()
	}
	if opts.Rendering == nil {
		opts.Rendering = backend.NewNullRendering()
	}
	if opts.Audio == nil {
		opts.Audio = backend.NewNullAudio()
	}
	inputQ := backend.NewNullInput()
	coord := coordinator.New(coordinator.Config{
		ScreenWidth:  opts.ScreenWidth,
		ScreenHeight: opts.ScreenHeight,
		User:         opts.User,
		Home:         opts.Home,
		SkinDirs:     opts.SkinDirs,
		DefaultSkin:  opts.DefaultSkin,
	}, opts.Fs, opts.Rendering, inputQ, opts.Network, opts.Audio)

	inst := &instance{
		coord:     coord,
		inputQ:    inputQ,
		rendering: opts.Rendering,
		callbacks: make(map[CallbackKind][]Callback),
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	nextHandle++
	h := Handle(nextHandle)
	registry[h] = inst
	return h
}

func lookup(h Handle) (*instance, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	inst, ok := registry[h]
	return inst, ok
}

// Destroy releases an instance; subsequent calls with h are no-ops.
func Destroy(h Handle) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, h)
}

// Tick advances one frame (spec §6 "tick(handle, delta_ms) advances
// one frame").
func Tick(h Handle, deltaMs int64) error {
	inst, ok := lookup(h)
	if !ok {
		return nil
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.coord.Tick(time.Duration(deltaMs) * time.Millisecond)
}

// SendInput enqueues an event for the next Tick's drain pass (spec §6
// "enqueues an event").
func SendInput(h Handle, ev input.Event) {
	inst, ok := lookup(h)
	if !ok {
		return
	}
	inst.inputQ.Push(ev)
}

// Framebuffer is the pixel payload handed back across the ABI
// boundary (spec §6 "(ptr, w, h, stride)" — GetBuffer always sets
// Stride to W*4, i.e. four bytes per pixel; the Rendering contract
// itself names no pixel format).
type Framebuffer struct {
	Pixels []byte
	Width  int
	Height int
	Stride int
}

// GetBuffer reads back the current framebuffer. It returns the
// backend's ReadPixels error unchanged (an oerrors.KindUnsupported
// error when the wired Rendering backend cannot read its own surface) — this is a
// capability query, not a crash, matching spec §4.8's ReadPixels
// contract.
func GetBuffer(h Handle) (Framebuffer, error) {
	inst, ok := lookup(h)
	if !ok {
		return Framebuffer{}, nil
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	pixels, w, ht, err := inst.rendering.ReadPixels()
	if err != nil {
		return Framebuffer{}, err
	}
	return Framebuffer{Pixels: pixels, Width: w, Height: ht, Stride: w * 4}, nil
}

// SendCommand runs one terminal command line and returns its
// formatted text output (spec §6 "send_command(handle, line) ->
// owned_string"). Go callers own the returned string directly; the
// cgo shim is the only place that needs a free_string counterpart.
func SendCommand(h Handle, line string) string {
	inst, ok := lookup(h)
	if !ok {
		return ""
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	out := inst.coord.Submit(line)
	if out.Kind == terminal.OutputSkinSwap {
		inst.fire(CallbackSkinSwap, out.SkinName)
	}
	if out.Kind == terminal.OutputExit {
		inst.fire(CallbackCommandExit, strconv.Itoa(out.ExitCode))
	}
	return formatOutput(out)
}

// formatOutput renders a CommandOutput the way the terminal app would
// display it, collapsing every variant to the single owned string the
// ABI hands back (spec §6); Pipeable already does this for the two
// text-shaped variants, the remaining signal variants get a short
// human-readable line instead of an empty string.
func formatOutput(out terminal.CommandOutput) string {
	if text, ok := out.Pipeable(); ok {
		return text
	}
	switch out.Kind {
	case terminal.OutputClear:
		return ""
	case terminal.OutputSkinSwap:
		return "skin swapped: " + out.SkinName
	case terminal.OutputScreenshot:
		return "screenshot: " + strconv.Itoa(len(out.Screenshot)) + " bytes"
	case terminal.OutputExit:
		return "exit " + strconv.Itoa(out.ExitCode)
	case terminal.OutputError:
		return out.ErrMessage
	case terminal.OutputPending:
		return "…pending…"
	default:
		return ""
	}
}

// AddVfsFile injects a byte payload at path (spec §6 "injects data").
// Whether a missing parent directory is created depends on the Vfs:
// the default MemoryVfs fails the write, while HostDirVfs and
// OverlayVfs create parents.
func AddVfsFile(h Handle, path string, data []byte) error {
	inst, ok := lookup(h)
	if !ok {
		return nil
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.coord.Vfs.Write(path, data)
}

// RegisterCallback wires a host function pointer to a class of
// internal events (spec §6 "register_callback(handle, kind, fn_ptr)
// wires host events"). Registering replaces no prior registration;
// every Callback for a kind fires on each matching event.
func RegisterCallback(h Handle, kind CallbackKind, cb Callback) {
	inst, ok := lookup(h)
	if !ok {
		return
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.callbacks[kind] = append(inst.callbacks[kind], cb)
}

func (inst *instance) fire(kind CallbackKind, payload string) {
	for _, cb := range inst.callbacks[kind] {
		cb(kind, payload)
	}
}
