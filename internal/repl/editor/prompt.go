package editor

import (
	"io"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

// Prompt is a LineEditor on go-prompt. Each ReadLine runs one prompt
// session seeded with the history so far.
type Prompt struct {
	opts      Options
	history   []string
	completer repl.LineCompleter
	eof       bool
}

// NewPrompt creates a go-prompt editor
func NewPrompt(opts Options) *Prompt {
	return &Prompt{opts: opts}
}

func (p *Prompt) ReadLine(prefix string) (string, error) {
	p.eof = false
	line := prompt.Input(
		prompt.WithPrefix(prefix),
		prompt.WithTitle(p.opts.Title),
		prompt.WithHistory(p.history),
		prompt.WithCompleter(p.complete),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(15),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(pr *prompt.Prompt) bool {
				if pr.Buffer().Text() == "" {
					p.eof = true
				}
				return false
			},
		}),
	)
	if p.eof && line == "" {
		return "", io.EOF
	}
	return line, nil
}

func (p *Prompt) AddHistory(line string) {
	p.history = append(p.history, line)
}

func (p *Prompt) SetCompleter(c repl.LineCompleter) {
	p.completer = c
}

func (p *Prompt) Close() error {
	return nil
}

// complete converts between go-prompt's rune positions and the byte
// offsets of repl.LineCompleter.
func (p *Prompt) complete(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	before := d.TextBeforeCursor()
	end := d.CurrentRuneIndex()
	if p.completer == nil {
		return nil, end, end
	}

	candidates, start := p.completer.Complete(d.Text, len(before))
	if start > len(before) {
		start = len(before)
	}
	suggestions := make([]prompt.Suggest, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, prompt.Suggest{Text: c})
	}
	return suggestions, istrings.RuneCountInString(before[:start]), end
}
