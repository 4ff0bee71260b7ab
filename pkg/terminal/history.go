package terminal

import (
	"strconv"
	"strings"

	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

const defaultHistorySize = 100

// History is a bounded ring of past input lines with `!!`/`!n` recall
// (spec §4.4). Marshal/Unmarshal serialize it, but nothing saves it to
// the VFS at exit or loads it at boot.
type History struct {
	entries []string
	limit   int
}

// NewHistory creates an empty ring bounded at limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistorySize
	}
	return &History{limit: limit}
}

// Push appends a line, evicting the oldest entry if at capacity.
func (h *History) Push(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Len reports the number of retained entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns the retained lines, oldest first.
func (h *History) Entries() []string { return h.entries }

// Last returns the most recently pushed line, for `!!`.
func (h *History) Last() (string, error) {
	if len(h.entries) == 0 {
		return "", oerrors.New(oerrors.KindNotFound, "history is empty")
	}
	return h.entries[len(h.entries)-1], nil
}

// ByOrdinal returns the 1-indexed entry in Entries(), for `!n`.
func (h *History) ByOrdinal(n int) (string, error) {
	if n < 1 || n > len(h.entries) {
		return "", oerrors.New(oerrors.KindNotFound, "no such history entry").WithInput(strconv.Itoa(n))
	}
	return h.entries[n-1], nil
}

// Marshal serializes history for VFS persistence, one line per entry.
func (h *History) Marshal() []byte {
	return []byte(strings.Join(h.entries, "\n"))
}

// Unmarshal replaces the ring's contents from persisted VFS bytes.
func (h *History) Unmarshal(data []byte) {
	h.entries = nil
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			h.Push(line)
		}
	}
}
