package repl

import (
	"sort"
	"strings"
)

// Binding pairs a Call with its Command
type Binding struct {
	Call    Call
	Command Command
}

// Bind is shorthand for a Binding literal
func Bind(call Call, cmd Command) Binding {
	return Binding{Call: call, Command: cmd}
}

// Provider contributes a set of commands to a session
type Provider interface {
	Commands(s *Session) []Binding
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(s *Session) []Binding

func (f ProviderFunc) Commands(s *Session) []Binding {
	return f(s)
}

// Registry resolves command names, case-insensitively, to commands
type Registry struct {
	order    []string
	calls    map[string]Call
	commands map[string]Command
}

// NewRegistry merges the providers' commands in order. A later binding for
// an existing name replaces the earlier one in place.
func NewRegistry(s *Session, providers ...Provider) *Registry {
	r := &Registry{
		calls:    make(map[string]Call),
		commands: make(map[string]Command),
	}
	for _, p := range providers {
		for _, b := range p.Commands(s) {
			r.Register(b.Call, b.Command)
		}
	}
	return r
}

// Register adds or replaces a command
func (r *Registry) Register(call Call, cmd Command) {
	key := call.Key()
	if _, exists := r.calls[key]; !exists {
		r.order = append(r.order, key)
	}
	r.calls[key] = call
	r.commands[key] = cmd
}

// Lookup finds the command registered under name
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Call returns the call registered under name
func (r *Registry) Call(name string) (Call, bool) {
	call, ok := r.calls[strings.ToLower(name)]
	return call, ok
}

// Names returns every registered name, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.calls[key].Name)
	}
	sort.Strings(names)
	return names
}

// Calls returns the calls in registration order
func (r *Registry) Calls() []Call {
	calls := make([]Call, 0, len(r.order))
	for _, key := range r.order {
		calls = append(calls, r.calls[key])
	}
	return calls
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return len(r.order)
}
