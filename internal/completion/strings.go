package completion

import (
	"sort"
	"strings"
)

// DeferredStrings completes against a word list computed at completion
// time, so it can be built before the list is final.
type DeferredStrings struct {
	source func() []string
}

// NewDeferredStrings creates a completer over the words returned by source
func NewDeferredStrings(source func() []string) *DeferredStrings {
	return &DeferredStrings{source: source}
}

// Complete returns the words starting with buffer, ignoring case. An empty
// buffer offers every word; a unique match gets a trailing space.
func (d *DeferredStrings) Complete(buffer string) ([]string, int) {
	words := d.source()
	prefix := strings.ToLower(buffer)
	candidates := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(strings.ToLower(w), prefix) {
			candidates = append(candidates, w)
		}
	}
	sort.Strings(candidates)
	if len(candidates) == 1 {
		candidates[0] += " "
	}
	return candidates, 0
}
