package browser

import (
	"encoding/json"
	"time"

	"github.com/oasis-os/oasis/pkg/vfs"
)

// maxNavHistory bounds the back/forward stack; oldest entries evict
// on overflow (spec §4.6 Navigation invariant).
const maxNavHistory = 64

// HistoryEntry is one visited page (spec §3, supplemented from
// oasis-browser/src/nav.rs HistoryEntry).
type HistoryEntry struct {
	URL        string `json:"url"`
	VisitedAt  int64  `json:"visited_at"`
	ReaderMode bool   `json:"reader_mode"`
}

// Bookmark is a saved page reference (supplemented feature, SPEC_FULL §C).
type Bookmark struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Controller owns the back/forward stack plus persisted bookmarks and
// visit history, grounded on oasis-browser/src/nav.rs
// NavigationController.
type Controller struct {
	stack     []HistoryEntry
	index     int // points at the current entry in stack
	bookmarks []Bookmark
	visits    []HistoryEntry
}

// NewController starts with an empty navigation stack.
func NewController() *Controller {
	return &Controller{index: -1}
}

// Current returns the entry at the current stack position, if any.
func (c *Controller) Current() (HistoryEntry, bool) {
	if c.index < 0 || c.index >= len(c.stack) {
		return HistoryEntry{}, false
	}
	return c.stack[c.index], true
}

// Navigate pushes a new entry, truncating any forward history beyond
// the current position — the standard browser "navigate clears
// forward stack" rule — and records a visit in the persisted log.
func (c *Controller) Navigate(url string, now int64) {
	c.stack = c.stack[:c.index+1]
	entry := HistoryEntry{URL: url, VisitedAt: now}
	c.stack = append(c.stack, entry)
	c.index++
	if len(c.stack) > maxNavHistory {
		overflow := len(c.stack) - maxNavHistory
		c.stack = c.stack[overflow:]
		c.index -= overflow
	}
	c.visits = append(c.visits, entry)
}

// Back moves one entry toward the start of the stack; a no-op from
// the initial page (spec testable property 9).
func (c *Controller) Back() (HistoryEntry, bool) {
	if c.index <= 0 {
		return c.Current()
	}
	c.index--
	return c.Current()
}

// Forward moves one entry toward the end of the stack; back() after
// forward() returns to the same URL (spec testable property 9).
func (c *Controller) Forward() (HistoryEntry, bool) {
	if c.index >= len(c.stack)-1 {
		return c.Current()
	}
	c.index++
	return c.Current()
}

// SetReaderMode sets the reader-mode flag on the current entry. The
// flag travels with the entry that Back/Forward return; nothing
// re-applies reader mode when moving through the stack.
func (c *Controller) SetReaderMode(on bool) {
	if c.index < 0 || c.index >= len(c.stack) {
		return
	}
	c.stack[c.index].ReaderMode = on
}

// AddBookmark appends a bookmark, ignoring exact-URL duplicates.
func (c *Controller) AddBookmark(url, title string) {
	for _, b := range c.bookmarks {
		if b.URL == url {
			return
		}
	}
	c.bookmarks = append(c.bookmarks, Bookmark{URL: url, Title: title})
}

// RemoveBookmark removes a bookmark by URL.
func (c *Controller) RemoveBookmark(url string) {
	out := c.bookmarks[:0]
	for _, b := range c.bookmarks {
		if b.URL != url {
			out = append(out, b)
		}
	}
	c.bookmarks = out
}

// Bookmarks returns the current bookmark list.
func (c *Controller) Bookmarks() []Bookmark { return c.bookmarks }

// Visits returns the full chronological visit log.
func (c *Controller) Visits() []HistoryEntry { return c.visits }

const (
	bookmarksPath = "/home/.bookmarks"
	historyPath   = "/home/.browse_history"
)

// SaveBookmarks persists the bookmark list to /home/.bookmarks (spec §6
// VFS layout).
func (c *Controller) SaveBookmarks(fs vfs.Vfs) error {
	data, err := json.Marshal(c.bookmarks)
	if err != nil {
		return err
	}
	return fs.Write(bookmarksPath, data)
}

// LoadBookmarks restores the bookmark list, tolerating an absent file.
func (c *Controller) LoadBookmarks(fs vfs.Vfs) error {
	data, err := fs.Read(bookmarksPath)
	if err != nil {
		return nil
	}
	return json.Unmarshal(data, &c.bookmarks)
}

// SaveHistory persists the visit log to /home/.browse_history.
func (c *Controller) SaveHistory(fs vfs.Vfs) error {
	data, err := json.Marshal(c.visits)
	if err != nil {
		return err
	}
	return fs.Write(historyPath, data)
}

// LoadHistory restores the visit log, tolerating an absent file.
func (c *Controller) LoadHistory(fs vfs.Vfs) error {
	data, err := fs.Read(historyPath)
	if err != nil {
		return nil
	}
	return json.Unmarshal(data, &c.visits)
}

// Now is a small seam so tests can avoid wall-clock timestamps.
var Now = func() int64 { return time.Now().Unix() }
