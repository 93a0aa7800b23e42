package repl

import (
	"sort"
	"strings"
	"unicode"
)

// LineCompleter completes a whole input line. Candidates replace the text
// between start and the cursor; both are byte offsets into line.
type LineCompleter interface {
	Complete(line string, cursor int) (candidates []string, start int)
}

type lineCompleter struct {
	registry *Registry
}

// NewLineCompleter completes command names for the first token and defers
// to each call's argument completers after it.
func NewLineCompleter(registry *Registry) LineCompleter {
	return &lineCompleter{registry: registry}
}

func (c *lineCompleter) Complete(line string, cursor int) ([]string, int) {
	if cursor < 0 || cursor > len(line) {
		cursor = len(line)
	}
	before := line[:cursor]
	lead := len(before) - len(strings.TrimLeftFunc(before, unicode.IsSpace))
	rest := before[lead:]

	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		return c.commandNames(rest), lead
	}

	call, ok := c.registry.Call(rest[:end])
	if !ok {
		return nil, cursor
	}

	args := rest[end:]
	position := len(strings.Fields(args))
	partial := ""
	if !endsWithSpace(args) {
		position--
		fields := strings.Fields(args)
		partial = fields[len(fields)-1]
	}

	completer := call.Completer(position)
	if completer == nil {
		return nil, cursor
	}
	candidates, index := completer.Complete(partial)
	return candidates, cursor - len(partial) + index
}

func (c *lineCompleter) commandNames(prefix string) []string {
	lower := strings.ToLower(prefix)
	var names []string
	for _, name := range c.registry.Names() {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 1 {
		names[0] += " "
	}
	return names
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[len(s)-1])
	return unicode.IsSpace(r)
}
