package editor

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"

	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

// Readline is a LineEditor on chzyer/readline. TAB lists candidates below
// the line and fills in their shared prefix.
type Readline struct {
	rl       *readline.Instance
	complete *autoCompleter
}

// NewReadline creates a readline editor. History is kept in memory only;
// persistence belongs to the session history.
func NewReadline(opts Options) (*Readline, error) {
	ac := &autoCompleter{}
	rl, err := readline.NewEx(&readline.Config{
		AutoComplete:           ac,
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		Stdout:                 opts.Out,
		Stderr:                 opts.Err,
	})
	if err != nil {
		return nil, err
	}
	return &Readline{rl: rl, complete: ac}, nil
}

func (r *Readline) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", repl.ErrInterrupt
	}
	return line, err
}

func (r *Readline) AddHistory(line string) {
	_ = r.rl.SaveHistory(line)
}

func (r *Readline) SetCompleter(c repl.LineCompleter) {
	r.complete.completer = c
}

func (r *Readline) Close() error {
	return r.rl.Close()
}

// autoCompleter adapts a repl.LineCompleter to readline, which wants the
// suffix each candidate adds to what is already typed.
type autoCompleter struct {
	completer repl.LineCompleter
}

func (a *autoCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if a.completer == nil {
		return nil, 0
	}
	text := string(line)
	cursor := len(string(line[:pos]))

	candidates, start := a.completer.Complete(text, cursor)
	if start > cursor {
		start = cursor
	}
	typed := text[start:cursor]

	var suffixes [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, typed) {
			suffixes = append(suffixes, []rune(c[len(typed):]))
		}
	}
	return suffixes, utf8.RuneCountInString(typed)
}
