package backend

import (
	"sync"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/input"
)

// NullRendering is a reference Rendering implementation that records
// draw calls as a flat paint-command log instead of touching a real
// surface. Used by tests and by headless coordinator boot.
type NullRendering struct {
	mu       sync.Mutex
	Commands []string
	textures uint64
	clips    []ClipRect
}

func NewNullRendering() *NullRendering { return &NullRendering{} }

func (n *NullRendering) Clear(r, g, b, a uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Commands = append(n.Commands, "clear")
}

func (n *NullRendering) FillRect(x, y, w, h float64, r, g, b, a uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Commands = append(n.Commands, "fill_rect")
}

func (n *NullRendering) Blit(tex TextureHandle, dstX, dstY, dstW, dstH float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Commands = append(n.Commands, "blit")
}

func (n *NullRendering) DrawText(text string, x, y, fontSize float64, r, g, b, a uint8) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Commands = append(n.Commands, "draw_text:"+text)
}

func (n *NullRendering) LoadTexture(pixels []byte, w, h int) (TextureHandle, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.textures++
	return TextureHandle(n.textures), nil
}

func (n *NullRendering) PushClip(rect ClipRect) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clips = append(n.clips, rect)
}

func (n *NullRendering) PopClip() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.clips) > 0 {
		n.clips = n.clips[:len(n.clips)-1]
	}
}

func (n *NullRendering) SwapBuffers() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Commands = append(n.Commands, "swap")
	return nil
}

func (n *NullRendering) ReadPixels() ([]byte, int, int, error) {
	return nil, 0, 0, oerrors.New(oerrors.KindUnsupported, "null backend cannot read pixels")
}

// NullInput is a queue-backed Input implementation: tests enqueue
// events with Push, the coordinator drains them with Poll.
type NullInput struct {
	mu     sync.Mutex
	queued []input.Event
}

func NewNullInput() *NullInput { return &NullInput{} }

func (n *NullInput) Push(events ...input.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queued = append(n.queued, events...)
}

func (n *NullInput) Poll() []input.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queued
	n.queued = nil
	return out
}

// NullAudio reports every position/duration query as Unsupported,
// matching the spec §9 open question on PositionMs, but otherwise
// tracks play state in memory so `audio status`-style commands have
// something real to report.
type NullAudio struct {
	mu     sync.Mutex
	tracks map[TrackHandle]*nullTrack
	next   uint64
}

type nullTrack struct {
	playing bool
	volume  float64
}

func NewNullAudio() *NullAudio {
	return &NullAudio{tracks: make(map[TrackHandle]*nullTrack)}
}

func (a *NullAudio) Init() error { return nil }

func (a *NullAudio) LoadTrack(path string, data []byte) (TrackHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	h := TrackHandle(a.next)
	a.tracks[h] = &nullTrack{volume: 1}
	return h, nil
}

func (a *NullAudio) track(tr TrackHandle) (*nullTrack, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.tracks[tr]
	if !ok {
		return nil, oerrors.New(oerrors.KindNotFound, "audio track not loaded")
	}
	return t, nil
}

func (a *NullAudio) Play(tr TrackHandle) error {
	t, err := a.track(tr)
	if err != nil {
		return err
	}
	t.playing = true
	return nil
}

func (a *NullAudio) Pause(tr TrackHandle) error {
	t, err := a.track(tr)
	if err != nil {
		return err
	}
	t.playing = false
	return nil
}

func (a *NullAudio) Resume(tr TrackHandle) error { return a.Play(tr) }

func (a *NullAudio) Stop(tr TrackHandle) error {
	t, err := a.track(tr)
	if err != nil {
		return err
	}
	t.playing = false
	return nil
}

func (a *NullAudio) SetVolume(tr TrackHandle, volume float64) error {
	t, err := a.track(tr)
	if err != nil {
		return err
	}
	t.volume = volume
	return nil
}

func (a *NullAudio) IsPlaying(tr TrackHandle) bool {
	t, err := a.track(tr)
	if err != nil {
		return false
	}
	return t.playing
}

func (a *NullAudio) PositionMs(tr TrackHandle) (int64, error) {
	return 0, oerrors.New(oerrors.KindUnsupported, "null backend does not track playback position")
}

func (a *NullAudio) DurationMs(tr TrackHandle) (int64, error) {
	return 0, oerrors.New(oerrors.KindUnsupported, "null backend does not track track duration")
}
