package repl

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// scriptedEditor feeds canned lines to the loop and records what the REPL
// hands to it.
type scriptedEditor struct {
	lines     []string
	errs      map[int]error
	reads     int
	history   []string
	completer LineCompleter
	installs  int
	closed    bool
}

func (e *scriptedEditor) ReadLine(string) (string, error) {
	i := e.reads
	e.reads++
	if err, ok := e.errs[i]; ok {
		return "", err
	}
	if i >= len(e.lines) {
		return "", io.EOF
	}
	return e.lines[i], nil
}

func (e *scriptedEditor) AddHistory(line string) {
	e.history = append(e.history, line)
}

func (e *scriptedEditor) SetCompleter(c LineCompleter) {
	e.completer = c
	e.installs++
}

func (e *scriptedEditor) Close() error {
	e.closed = true
	return nil
}

type harness struct {
	repl   *REPL
	editor *scriptedEditor
	fs     *dfs.Local
	out    *bytes.Buffer
	err    *bytes.Buffer
}

func newHarness(t *testing.T, providers ...Provider) *harness {
	t.Helper()
	h := &harness{
		editor: &scriptedEditor{},
		fs:     dfs.NewMemory(),
		out:    &bytes.Buffer{},
		err:    &bytes.Buffer{},
	}
	r, err := New(Options{
		Config:    config.NewConfig(),
		FS:        h.fs,
		Editor:    h.editor,
		Providers: providers,
		Out:       h.out,
		Err:       h.err,
		Local:     afero.NewMemMapFs(),
		Logger:    logging.Discard(),
	})
	require.NoError(t, err)
	h.repl = r
	return h
}

// recorder is a command that remembers its invocations
type recorder struct {
	name  string
	calls []Invocation
	err   error
}

func (r *recorder) Execute(inv Invocation, s *Session) error {
	r.calls = append(r.calls, inv)
	return r.err
}

func (r *recorder) Usage(*Session) Usage {
	return NewUsage(r.name, "records calls", "<arg>")
}

func provide(bindings ...Binding) Provider {
	return ProviderFunc(func(*Session) []Binding { return bindings })
}
