// Package editor provides the terminal line editors the REPL can run on:
// go-prompt with a suggestion popup, and a classic readline.
package editor

import (
	"fmt"
	"io"
	"os"

	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

// Options configures an editor
type Options struct {
	// Title is shown in the terminal title bar where supported
	Title string
	Out   io.Writer
	Err   io.Writer
}

// New creates the editor named kind ("prompt" or "readline")
func New(kind string, opts Options) (repl.LineEditor, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	switch kind {
	case constants.EditorPrompt, "":
		return NewPrompt(opts), nil
	case constants.EditorReadline:
		return NewReadline(opts)
	default:
		return nil, fmt.Errorf("unknown editor %q", kind)
	}
}
