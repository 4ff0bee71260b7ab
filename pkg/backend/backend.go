// Package backend defines the four trait boundaries between the
// OASIS kernel and a concrete host (spec §4.8): Rendering, Input,
// Network, and Audio. These interfaces are the *only* coupling point
// between the core and a host; no kernel package may import a
// concrete backend implementation, only these contracts.
package backend

import (
	"io"

	"github.com/oasis-os/oasis/pkg/input"
)

// TextureHandle is an opaque handle returned by LoadTexture, tied to
// the backend instance's lifetime.
type TextureHandle uint64

// ClipRect is an axis-aligned clip region in virtual 480x272 space.
type ClipRect struct {
	X, Y, W, H float64
}

// Rendering is the drawing contract. All coordinates are in virtual
// 480x272 space; backends handle scaling to the physical surface.
// The clip stack is LIFO — PushClip/PopClip must balance within a
// frame. The contract has no transform stack.
type Rendering interface {
	Clear(r, g, b, a uint8)
	FillRect(x, y, w, h float64, r, g, b, a uint8)
	Blit(tex TextureHandle, dstX, dstY, dstW, dstH float64)
	DrawText(text string, x, y, fontSize float64, r, g, b, a uint8)
	LoadTexture(pixels []byte, w, h int) (TextureHandle, error)
	PushClip(rect ClipRect)
	PopClip()
	SwapBuffers() error

	// ReadPixels may return an oerrors.KindUnsupported error if the backend cannot read
	// back its own framebuffer (spec §4.8).
	ReadPixels() ([]byte, int, int, error)
}

// Input is the polling contract. Poll returns a batch ordered by
// occurrence time; an empty batch is valid and expected on most
// frames.
type Input interface {
	Poll() []input.Event
}

// Stream is a byte read/write/close contract; partial reads and
// writes are allowed, matching net.Conn semantics.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Listener accepts inbound Streams.
type Listener interface {
	Accept() (Stream, error)
	Close() error
	Addr() string
}

// TLSProvider wraps a plaintext Stream in TLS for https:// and
// gemini:// loads. Absence of a provider degrades those schemes to an
// error page rather than a crash (spec §4.6).
type TLSProvider interface {
	WrapClient(raw Stream, serverName string) (Stream, error)
}

// Network is the connect/listen contract; TLS is an optional queried
// capability, not a required one.
type Network interface {
	Listen(addr string) (Listener, error)
	Connect(addr string) (Stream, error)
	TLSProvider() (TLSProvider, bool)
}

// TrackHandle identifies a loaded audio track.
type TrackHandle uint64

// Audio operations are synchronous from the caller's perspective;
// background decoding is the backend's concern (spec §4.8).
type Audio interface {
	Init() error
	LoadTrack(path string, data []byte) (TrackHandle, error)
	Play(tr TrackHandle) error
	Pause(tr TrackHandle) error
	Resume(tr TrackHandle) error
	Stop(tr TrackHandle) error
	SetVolume(tr TrackHandle, volume float64) error
	IsPlaying(tr TrackHandle) bool

	// PositionMs and DurationMs may return an oerrors.KindUnsupported error on backends
	// that cannot report playback position (spec §9 open question 2).
	PositionMs(tr TrackHandle) (int64, error)
	DurationMs(tr TrackHandle) (int64, error)
}
