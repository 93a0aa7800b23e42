// Package completion implements tab-completion for command arguments.
//
// A Completer receives the text typed so far for one argument and returns
// the candidates together with the offset in that text where the chosen
// candidate replaces what was typed.
package completion

import (
	"sort"
	"strings"
)

// Completer proposes completions for a single argument
type Completer interface {
	Complete(buffer string) (candidates []string, index int)
}

// Entry is one child of a listed directory
type Entry struct {
	Name  string
	IsDir bool
}

// Lister lists the immediate children of a directory
type Lister interface {
	List(dir string) ([]Entry, error)
}

// PathCompleter completes paths below root against a Lister. Typed text
// that is not absolute is taken relative to root.
type PathCompleter struct {
	root   string
	sep    string
	lister Lister
}

// NewPathCompleter creates a completer for paths under root
func NewPathCompleter(root, sep string, lister Lister) *PathCompleter {
	return &PathCompleter{root: root, sep: sep, lister: lister}
}

// Root returns the directory relative paths are resolved against
func (c *PathCompleter) Root() string {
	return c.root
}

// Complete lists the directory the buffer points into and keeps the
// children whose full path starts with the typed text. A unique directory
// match ends in the separator; every other candidate ends in a space.
func (c *PathCompleter) Complete(buffer string) (candidates []string, index int) {
	candidates = []string{}
	defer func() { sort.Strings(candidates) }()

	if buffer == "" {
		entries, err := c.lister.List(c.root)
		if err != nil {
			return candidates, 0
		}
		for _, e := range entries {
			candidates = append(candidates, format(e, len(entries) == 1, c.sep))
		}
		return candidates, 0
	}

	translated := c.translate(buffer)
	dir := translated
	if !strings.HasSuffix(translated, c.sep) {
		dir = c.parent(translated)
	}
	if i := strings.LastIndex(buffer, c.sep); i >= 0 {
		index = i + len(c.sep)
	}

	entries, err := c.lister.List(dir)
	if err != nil {
		return candidates, index
	}

	matches := 0
	for _, e := range entries {
		if strings.HasPrefix(c.child(dir, e.Name), translated) {
			matches++
		}
	}
	for _, e := range entries {
		if strings.HasPrefix(c.child(dir, e.Name), translated) {
			candidates = append(candidates, format(e, matches == 1, c.sep))
		}
	}
	return candidates, index
}

// translate qualifies a relative buffer with the root
func (c *PathCompleter) translate(buffer string) string {
	if strings.HasPrefix(buffer, c.sep) {
		return buffer
	}
	if strings.HasSuffix(c.root, c.sep) {
		return c.root + buffer
	}
	return c.root + c.sep + buffer
}

// parent returns the directory part of p, keeping a bare separator for
// top-level paths
func (c *PathCompleter) parent(p string) string {
	i := strings.LastIndex(p, c.sep)
	if i < 0 {
		return c.root
	}
	if i == 0 {
		return c.sep
	}
	return p[:i]
}

func (c *PathCompleter) child(dir, name string) string {
	if strings.HasSuffix(dir, c.sep) {
		return dir + name
	}
	return dir + c.sep + name
}

func format(e Entry, unique bool, sep string) string {
	if unique && e.IsDir {
		return e.Name + sep
	}
	return e.Name + " "
}
