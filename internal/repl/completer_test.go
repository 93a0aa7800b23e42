package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quocvuong92/hadoop-repl/internal/completion"
)

type fixedCompleter struct {
	candidates []string
	index      int
	got        []string
}

func (f *fixedCompleter) Complete(buffer string) ([]string, int) {
	f.got = append(f.got, buffer)
	return f.candidates, f.index
}

func newTestRegistry(bindings ...Binding) *Registry {
	reg := NewRegistry(nil, provide(bindings...))
	registerHelp(reg)
	return reg
}

func TestLineCompleter_CommandNames(t *testing.T) {
	reg := newTestRegistry(
		Bind(NewCall("ls"), &recorder{}),
		Bind(NewCall("lsr"), &recorder{}),
		Bind(NewCall("cat"), &recorder{}),
	)
	c := NewLineCompleter(reg)

	candidates, start := c.Complete("l", 1)
	assert.Equal(t, []string{"ls", "lsr"}, candidates)
	assert.Equal(t, 0, start)

	candidates, start = c.Complete("  ca", 4)
	assert.Equal(t, []string{"cat "}, candidates)
	assert.Equal(t, 2, start)

	candidates, _ = c.Complete("", 0)
	assert.Equal(t, []string{"cat", "help", "ls", "lsr"}, candidates)

	candidates, _ = c.Complete("LS", 2)
	assert.Equal(t, []string{"ls", "lsr"}, candidates)
}

func TestLineCompleter_ArgumentPositions(t *testing.T) {
	local := &fixedCompleter{candidates: []string{"local "}}
	remote := &fixedCompleter{candidates: []string{"bar/"}, index: 5}
	reg := newTestRegistry(Bind(NewCall("put", local, remote), &recorder{}))
	c := NewLineCompleter(reg)

	candidates, start := c.Complete("put ", 4)
	assert.Equal(t, []string{"local "}, candidates)
	assert.Equal(t, 4, start)
	assert.Equal(t, []string{""}, local.got)

	candidates, start = c.Complete("put src /foo/b", 14)
	assert.Equal(t, []string{"bar/"}, candidates)
	assert.Equal(t, len("put src ")+5, start)
	assert.Equal(t, []string{"/foo/b"}, remote.got)

	// Positions past the list reuse the last completer
	remote.got = nil
	c.Complete("put a b c", 9)
	assert.Equal(t, []string{"c"}, remote.got)
}

func TestLineCompleter_CursorInsideLine(t *testing.T) {
	remote := &fixedCompleter{candidates: []string{"x"}}
	reg := newTestRegistry(Bind(NewCall("cat", remote), &recorder{}))
	c := NewLineCompleter(reg)

	c.Complete("cat /ab trailing", 7)
	assert.Equal(t, []string{"/ab"}, remote.got)
}

func TestLineCompleter_NoCompletion(t *testing.T) {
	reg := newTestRegistry(Bind(NewCall("df"), &recorder{}))
	c := NewLineCompleter(reg)

	candidates, start := c.Complete("df /", 4)
	assert.Empty(t, candidates)
	assert.Equal(t, 4, start)

	candidates, _ = c.Complete("nosuch /", 8)
	assert.Empty(t, candidates)
}

func TestLineCompleter_HelpCompletesCommandNames(t *testing.T) {
	reg := newTestRegistry(Bind(NewCall("save"), &recorder{}))
	c := NewLineCompleter(reg)

	candidates, start := c.Complete("help s", 6)
	assert.Equal(t, []string{"save "}, candidates)
	assert.Equal(t, 5, start)

	candidates, _ = c.Complete("help ", 5)
	assert.Equal(t, []string{"help", "save"}, candidates)

	candidates, _ = c.Complete("help SA", 7)
	assert.Equal(t, []string{"save "}, candidates)
}

var _ completion.Completer = (*fixedCompleter)(nil)
