// Package history provides the append-only command history of a REPL session.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultMaxEntries caps how many lines are written back to a history file
const DefaultMaxEntries = 1000

// History records every line typed in a session, in order. A file path is
// optional; without one the history lives only as long as the session.
type History struct {
	mu         sync.Mutex
	entries    []string
	loaded     int
	path       string
	maxEntries int
}

// NewHistory creates an in-memory history
func NewHistory() *History {
	return &History{maxEntries: DefaultMaxEntries}
}

// NewFileHistory creates a history backed by path. Lines loaded from the
// file are offered to the line editor but are not part of Entries.
func NewFileHistory(path string) *History {
	h := NewHistory()
	h.path = path
	return h
}

// Path returns the backing file, or "" for an in-memory history
func (h *History) Path() string {
	return h.path
}

// Add appends one raw input line
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the lines typed in this session
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries)-h.loaded)
	copy(out, h.entries[h.loaded:])
	return out
}

// Previous returns lines loaded from the history file
func (h *History) Previous() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, h.loaded)
	copy(out, h.entries[:h.loaded])
	return out
}

// Len returns the number of lines typed in this session
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries) - h.loaded
}

// Load reads the history file. A missing file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(lines, h.entries[h.loaded:]...)
	h.loaded = len(lines)
	return nil
}

// Save writes the most recent lines, previous sessions included, to the
// history file.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	lines := h.entries
	if len(lines) > h.maxEntries {
		lines = lines[len(lines)-h.maxEntries:]
	}
	data := strings.Join(lines, "\n")
	h.mu.Unlock()

	if dir := filepath.Dir(h.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	if data != "" {
		data += "\n"
	}
	if err := os.WriteFile(h.path, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}
