package repl

import (
	"hash/fnv"
	"strings"

	"github.com/quocvuong92/hadoop-repl/internal/completion"
)

// Call identifies a command in the registry and carries one completer per
// argument position. Identity is the name alone.
type Call struct {
	Name       string
	Completers []completion.Completer
}

// NewCall creates a call with per-position argument completers
func NewCall(name string, completers ...completion.Completer) Call {
	return Call{Name: name, Completers: completers}
}

// Key is the registry key of the call
func (c Call) Key() string {
	return strings.ToLower(c.Name)
}

// Equal reports whether both calls name the same command
func (c Call) Equal(other Call) bool {
	return c.Key() == other.Key()
}

// Hash is consistent with Equal
func (c Call) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(c.Key()))
	return h.Sum64()
}

// Completer returns the completer for argument position n. Positions past
// the end reuse the last completer; nil means no completion.
func (c Call) Completer(n int) completion.Completer {
	if len(c.Completers) == 0 || n < 0 {
		return nil
	}
	if n >= len(c.Completers) {
		return c.Completers[len(c.Completers)-1]
	}
	return c.Completers[n]
}
