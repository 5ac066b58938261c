package command

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry describes a command recorded in the history.
type Entry struct {
	// ID uniquely identifies the entry.
	ID uuid.UUID

	// Command is the recorded command. The history does not own it.
	Command Command

	// Timestamp is when the command was pushed.
	Timestamp time.Time
}

// Description returns the name of the recorded command.
func (e Entry) Description() string {
	if e.Command == nil {
		return ""
	}
	return e.Command.Name()
}

// History is an ordered record of executed commands not yet undone.
// Entries are popped in LIFO order. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// Push appends a command to the end of the history.
// There is no deduplication and no capacity bound.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Entry{
		ID:        uuid.New(),
		Command:   cmd,
		Timestamp: h.now(),
	})
}

// Pop removes and returns the most recently pushed command.
// Returns false if the history is empty.
func (h *History) Pop() (Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return nil, false
	}

	last := len(h.entries) - 1
	entry := h.entries[last]
	h.entries[last] = Entry{}
	h.entries = h.entries[:last]
	return entry.Command, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a snapshot of the history, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]Entry, len(h.entries))
	copy(result, h.entries)
	return result
}
