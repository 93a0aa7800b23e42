// Package repl implements the interactive read-evaluate loop: input
// parsing, command dispatch, tab completion and the built-in help command.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/cluster"
	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/history"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// ErrInterrupt is returned by a LineEditor when the user presses Ctrl-C;
// the line is dropped and the loop continues.
var ErrInterrupt = errors.New("interrupt")

// LineEditor reads lines from the terminal. ReadLine returns io.EOF when
// input ends.
type LineEditor interface {
	ReadLine(prompt string) (string, error)
	AddHistory(line string)
	SetCompleter(c LineCompleter)
	Close() error
}

// ExitSignal stops the loop with an exit code
type ExitSignal struct {
	Code    int
	Message string
}

func (e *ExitSignal) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// Options configures a REPL
type Options struct {
	Config    *config.Config
	FS        dfs.FileSystem
	Editor    LineEditor
	Providers []Provider

	// Optional; defaults are stdout, stderr, an in-memory history, the OS
	// disk and the silent default logger.
	Out        io.Writer
	Err        io.Writer
	History    history.HistoryManager
	Local      afero.Fs
	State      *cluster.StateManager
	Logger     *logging.Logger
	WorkingDir string
	Context    context.Context
}

// REPL owns the session, the command registry and the line editor
type REPL struct {
	ctx       context.Context
	session   *Session
	registry  *Registry
	providers []Provider
	editor    LineEditor
	history   history.HistoryManager
	logger    *logging.FieldLogger
}

// New builds the session and the registry, then installs completion
func New(opts Options) (*REPL, error) {
	if opts.FS == nil {
		return nil, errors.New("repl: filesystem is required")
	}
	if opts.Editor == nil {
		return nil, errors.New("repl: line editor is required")
	}
	if opts.Config == nil {
		opts.Config = config.NewConfig()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.History == nil {
		opts.History = history.NewHistory()
	}
	if opts.Local == nil {
		opts.Local = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = dfs.Separator
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	r := &REPL{
		ctx:       opts.Context,
		providers: opts.Providers,
		editor:    opts.Editor,
		history:   opts.History,
	}
	id := newSessionID()
	r.logger = opts.Logger.WithFields(logging.Fields{"session": id})
	r.session = &Session{
		Config:     opts.Config,
		FS:         opts.FS,
		State:      opts.State,
		Local:      opts.Local,
		id:         id,
		workingDir: dfs.Clean(opts.WorkingDir),
		out:        opts.Out,
		err:        opts.Err,
		logger:     r.logger,
		repl:       r,
	}

	for _, line := range opts.History.Previous() {
		r.editor.AddHistory(line)
	}
	r.ResetCompleters()

	r.logger.Debug("Session started", logging.Fields{
		"filesystem": opts.FS.URI(),
		"commands":   r.registry.Len(),
	})
	return r, nil
}

// Session returns the session shared with commands
func (r *REPL) Session() *Session {
	return r.session
}

// Registry returns the current command registry
func (r *REPL) Registry() *Registry {
	return r.registry
}

// ResetCompleters rebuilds the registry, help included, and swaps the
// editor's completer for one over the new registry.
func (r *REPL) ResetCompleters() {
	registry := NewRegistry(r.session, r.providers...)
	registerHelp(registry)
	r.registry = registry
	r.editor.SetCompleter(NewLineCompleter(registry))
}

// Loop reads and evaluates lines until a command shuts the session down or
// input ends. Failures leave as an *ExitSignal.
func (r *REPL) Loop(prompt string) error {
	if prompt == "" {
		prompt = constants.DefaultPrompt
	}
	for !r.session.ShuttingDown() {
		line, err := r.editor.ReadLine(prompt)
		if err != nil {
			if errors.Is(err, ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				r.session.Shutdown()
				break
			}
			return &ExitSignal{Code: constants.ExitFailure, Message: err.Error()}
		}

		if err := r.Evaluate(line); err != nil {
			var exit *ExitSignal
			if errors.As(err, &exit) {
				return exit
			}
			r.logger.Error("Command failed", err)
			return &ExitSignal{Code: constants.ExitFailure, Message: err.Error()}
		}
	}
	r.logger.Debug("Session ended")
	return nil
}

// Evaluate records and dispatches one input line. A blank line is ignored.
func (r *REPL) Evaluate(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	r.history.Add(line)
	r.editor.AddHistory(line)

	inv := Parse(line)
	cmd, ok := r.registry.Lookup(inv.Command())
	if !ok {
		r.session.Error("Unknown command \"%s\"", inv.Command())
		return nil
	}

	r.logger.Debug("Dispatching command", logging.Fields{
		"command": inv.Command(),
		"args":    inv.ArgCount(),
	})
	return cmd.Execute(inv, r.session)
}

// Close releases the line editor
func (r *REPL) Close() error {
	return r.editor.Close()
}
