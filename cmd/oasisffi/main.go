// Command oasisffi builds the OASIS embedding ABI (spec §6) as a C
// shared library: `go build -buildmode=c-shared -o liboasis.so
// ./cmd/oasisffi`. It is a thin cgo shim over pkg/embedding — every
// exported function here does handle/type translation only; the
// actual runtime logic lives in pkg/embedding, which is also usable
// directly by a Go host with no cgo involved.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	uint8_t *ptr;
	int32_t width;
	int32_t height;
	int32_t stride;
} oasis_framebuffer;

typedef void (*oasis_callback)(int32_t kind, const char *payload);

static inline void oasis_invoke_callback(oasis_callback cb, int32_t kind, const char *payload) {
	cb(kind, payload);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/oasis-os/oasis/pkg/embedding"
	"github.com/oasis-os/oasis/pkg/input"
)

// oasis_create assembles a new runtime instance and returns its
// opaque handle (spec §6 "opaque instance handle from create").
//
//export oasis_create
func oasis_create(screenW, screenH C.int, user *C.char) C.uint64_t {
	h := embedding.Create(embedding.Options{
		ScreenWidth:  int(screenW),
		ScreenHeight: int(screenH),
		User:         C.GoString(user),
		Home:         "/home",
		DefaultSkin:  "classic",
	})
	return C.uint64_t(h)
}

// oasis_destroy releases an instance.
//
//export oasis_destroy
func oasis_destroy(handle C.uint64_t) {
	embedding.Destroy(embedding.Handle(handle))
}

// oasis_tick advances one frame (spec §6 "tick(handle, delta_ms)").
//
//export oasis_tick
func oasis_tick(handle C.uint64_t, deltaMs C.int64_t) C.int {
	if err := embedding.Tick(embedding.Handle(handle), int64(deltaMs)); err != nil {
		return -1
	}
	return 0
}

// oasis_send_text_input enqueues a TextInput event (spec §6
// "send_input(handle, event) enqueues an event"). The full InputEvent
// union is wide enough that a single cgo call per variant is more
// tractable than marshaling a tagged union across the boundary; hosts
// needing pointer/button events call the sibling exports below.
//
//export oasis_send_text_input
func oasis_send_text_input(handle C.uint64_t, text *C.char) {
	embedding.SendInput(embedding.Handle(handle), input.TextInput(C.GoString(text)))
}

//export oasis_send_pointer_down
func oasis_send_pointer_down(handle C.uint64_t, x, y C.int, button C.int) {
	ev := input.PointerDown(int(x), int(y), input.PointerButton(button))
	embedding.SendInput(embedding.Handle(handle), ev)
}

//export oasis_send_pointer_up
func oasis_send_pointer_up(handle C.uint64_t, x, y C.int, button C.int) {
	ev := input.PointerUp(int(x), int(y), input.PointerButton(button))
	embedding.SendInput(embedding.Handle(handle), ev)
}

//export oasis_send_cursor_move
func oasis_send_cursor_move(handle C.uint64_t, x, y C.int) {
	embedding.SendInput(embedding.Handle(handle), input.CursorMove(int(x), int(y)))
}

//export oasis_send_button
func oasis_send_button(handle C.uint64_t, button C.int, pressed C.int) {
	b := input.Button(button)
	if pressed != 0 {
		embedding.SendInput(embedding.Handle(handle), input.ButtonPress(b))
	} else {
		embedding.SendInput(embedding.Handle(handle), input.ButtonRelease(b))
	}
}

// oasis_get_buffer exposes the current framebuffer (spec §6
// "get_buffer(handle) -> (ptr, w, h, stride)"). Returns 0 on success;
// the buffer is unsupported (-1) whenever the wired Rendering backend
// cannot read back its own surface, e.g. the headless Null backend.
// The returned pointer is owned by the Go runtime for the lifetime of
// this call only — callers must copy it out before the next tick.
//
//export oasis_get_buffer
func oasis_get_buffer(handle C.uint64_t, out *C.oasis_framebuffer) C.int {
	fb, err := embedding.GetBuffer(embedding.Handle(handle))
	if err != nil {
		return -1
	}
	out.width = C.int32_t(fb.Width)
	out.height = C.int32_t(fb.Height)
	out.stride = C.int32_t(fb.Stride)
	if len(fb.Pixels) == 0 {
		out.ptr = nil
	} else {
		out.ptr = (*C.uint8_t)(unsafe.Pointer(&fb.Pixels[0]))
	}
	return 0
}

// oasis_send_command runs one terminal command line and returns its
// formatted text output as a caller-owned C string (spec §6
// "send_command(handle, line) -> owned_string"). The caller must
// release it with oasis_free_string.
//
//export oasis_send_command
func oasis_send_command(handle C.uint64_t, line *C.char) *C.char {
	out := embedding.SendCommand(embedding.Handle(handle), C.GoString(line))
	return C.CString(out)
}

// oasis_free_string releases a string returned by oasis_send_command
// (spec §6 "caller frees via free_string").
//
//export oasis_free_string
func oasis_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// oasis_add_vfs_file injects a byte payload at path (spec §6
// "add_vfs_file(handle, path, bytes) injects data").
//
//export oasis_add_vfs_file
func oasis_add_vfs_file(handle C.uint64_t, path *C.char, data *C.uint8_t, length C.int) C.int {
	var buf []byte
	if length > 0 {
		buf = C.GoBytes(unsafe.Pointer(data), length)
	}
	if err := embedding.AddVfsFile(embedding.Handle(handle), C.GoString(path), buf); err != nil {
		return -1
	}
	return 0
}

// registeredCallbacks keeps the C function pointers handed to
// oasis_register_callback alive for cgo's rules, since a C.oasis_callback
// value can't be stored inside a Go closure captured by
// embedding.RegisterCallback directly.
var (
	callbacksMu sync.Mutex
	callbacks   = map[C.uint64_t]map[C.int32_t]C.oasis_callback{}
)

// oasis_register_callback wires a host function pointer to a class of
// internal events (spec §6 "register_callback(handle, kind, fn_ptr)
// wires host events").
//
//export oasis_register_callback
func oasis_register_callback(handle C.uint64_t, kind C.int32_t, fn C.oasis_callback) {
	callbacksMu.Lock()
	if callbacks[handle] == nil {
		callbacks[handle] = map[C.int32_t]C.oasis_callback{}
	}
	callbacks[handle][kind] = fn
	callbacksMu.Unlock()

	embedding.RegisterCallback(embedding.Handle(handle), embedding.CallbackKind(kind), func(k embedding.CallbackKind, payload string) {
		callbacksMu.Lock()
		cb, ok := callbacks[handle][C.int32_t(k)]
		callbacksMu.Unlock()
		if !ok {
			return
		}
		cPayload := C.CString(payload)
		defer C.free(unsafe.Pointer(cPayload))
		C.oasis_invoke_callback(cb, C.int32_t(k), cPayload)
	})
}

func main() {}
