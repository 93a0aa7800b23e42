package repl

import (
	"strings"
	"unicode"
)

// Invocation is a parsed input line: a lower-cased command name and its
// arguments, case preserved.
type Invocation struct {
	command string
	args    []string
}

// NewInvocation creates an invocation, copying args
func NewInvocation(command string, args ...string) Invocation {
	copied := make([]string, len(args))
	copy(copied, args)
	return Invocation{command: command, args: copied}
}

// Command returns the command name
func (i Invocation) Command() string {
	return i.command
}

// Args returns a fresh copy of the arguments
func (i Invocation) Args() []string {
	out := make([]string, len(i.args))
	copy(out, i.args)
	return out
}

// ArgCount returns the number of arguments
func (i Invocation) ArgCount() int {
	return len(i.args)
}

// Arg returns the n-th argument, or "" when there are fewer
func (i Invocation) Arg(n int) string {
	if n < 0 || n >= len(i.args) {
		return ""
	}
	return i.args[n]
}

// String reassembles the invocation as typed, modulo whitespace
func (i Invocation) String() string {
	if len(i.args) == 0 {
		return i.command
	}
	return i.command + " " + strings.Join(i.args, " ")
}

// Parse splits line on its first whitespace run into the command token and
// the remainder, then splits the remainder into arguments.
func Parse(line string) Invocation {
	line = strings.TrimSpace(line)
	if line == "" {
		return Invocation{args: []string{}}
	}

	command, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		command, rest = line[:i], line[i:]
	}

	args := strings.Fields(rest)
	if args == nil {
		args = []string{}
	}
	return Invocation{command: strings.ToLower(command), args: args}
}
