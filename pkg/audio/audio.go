// Package audio implements the OASIS audio manager: playlist state
// and track metadata parsing atop the Audio backend trait (spec §2 L1
// "Audio manager"). Playback itself is delegated entirely to
// backend.Audio; this package owns only the playlist, shuffle/repeat
// state, and the parsed metadata the terminal `status`/track-listing
// surfaces display.
package audio

import (
	"strings"

	"github.com/oasis-os/oasis/pkg/backend"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// RepeatMode is the playlist wraparound setting SetRepeat stores.
// Manager has no next/previous navigation, so nothing reads it.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// Metadata is the parsed track metadata (title/artist/album) OASIS
// shows in playlist listings.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// ParseMetadata extracts Metadata from a conventional
// "Artist - Album - Title" filename stem, falling back to the whole
// stem as Title when the convention isn't followed. Parsing is total:
// malformed input never errors, it just yields a best-effort guess.
func ParseMetadata(filename string) Metadata {
	stem := filename
	if idx := strings.LastIndex(stem, "/"); idx >= 0 {
		stem = stem[idx+1:]
	}
	if idx := strings.LastIndex(stem, "."); idx >= 0 {
		stem = stem[:idx]
	}
	parts := strings.Split(stem, " - ")
	switch len(parts) {
	case 3:
		return Metadata{Artist: parts[0], Album: parts[1], Title: parts[2]}
	case 2:
		return Metadata{Artist: parts[0], Title: parts[1]}
	default:
		return Metadata{Title: stem}
	}
}

// Track is one playlist entry: its path, parsed metadata, and the
// backend handle once loaded.
type Track struct {
	Path     string
	Metadata Metadata
	Handle   backend.TrackHandle
	loaded   bool
}

// Manager owns playlist order, the playing cursor, and shuffle/repeat
// state, delegating actual decode/playback to a backend.Audio.
type Manager struct {
	backend backend.Audio
	tracks  []Track
	cursor  int
	repeat  RepeatMode
	shuffle bool
}

// NewManager creates a playlist manager bound to an Audio backend.
func NewManager(a backend.Audio) *Manager {
	return &Manager{backend: a, cursor: -1}
}

// Add appends a track to the playlist without loading it yet.
func (m *Manager) Add(path string, data []byte) {
	m.tracks = append(m.tracks, Track{Path: path, Metadata: ParseMetadata(path)})
	_ = data // retained by the caller's VFS; loaded lazily on Play
}

// Playlist returns the current track order.
func (m *Manager) Playlist() []Track { return m.tracks }

// SetRepeat stores the wraparound mode; no Manager method reads it.
func (m *Manager) SetRepeat(mode RepeatMode) { m.repeat = mode }

// SetShuffle stores the shuffle flag; no Manager method reads it.
func (m *Manager) SetShuffle(on bool) { m.shuffle = on }

// Play loads (if needed) and starts the track at index.
func (m *Manager) Play(index int, data []byte) error {
	if index < 0 || index >= len(m.tracks) {
		return oerrors.New(oerrors.KindNotFound, "playlist index out of range")
	}
	t := &m.tracks[index]
	if !t.loaded {
		h, err := m.backend.LoadTrack(t.Path, data)
		if err != nil {
			return err
		}
		t.Handle = h
		t.loaded = true
	}
	m.cursor = index
	return m.backend.Play(t.Handle)
}

// Current returns the currently-cursored track, if any.
func (m *Manager) Current() (Track, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tracks) {
		return Track{}, false
	}
	return m.tracks[m.cursor], true
}

// Pause/Resume/Stop act on the current track.
func (m *Manager) Pause() error  { return m.withCurrent(m.backend.Pause) }
func (m *Manager) Resume() error { return m.withCurrent(m.backend.Resume) }
func (m *Manager) Stop() error   { return m.withCurrent(m.backend.Stop) }

func (m *Manager) withCurrent(op func(backend.TrackHandle) error) error {
	t, ok := m.Current()
	if !ok {
		return oerrors.New(oerrors.KindNotFound, "no track playing")
	}
	return op(t.Handle)
}

// PositionMs reports the current track's playback position, returning
// the backend's error as-is (an oerrors.KindUnsupported error for
// backends that don't track it; spec §9 open question 2).
func (m *Manager) PositionMs() (int64, error) {
	t, ok := m.Current()
	if !ok {
		return 0, oerrors.New(oerrors.KindNotFound, "no track playing")
	}
	return m.backend.PositionMs(t.Handle)
}
