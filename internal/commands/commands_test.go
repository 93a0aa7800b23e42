package commands

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/hadoop-repl/internal/cluster"
	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

type nopEditor struct {
	completer repl.LineCompleter
}

func (e *nopEditor) ReadLine(string) (string, error)   { return "", io.EOF }
func (e *nopEditor) AddHistory(string)                 {}
func (e *nopEditor) SetCompleter(c repl.LineCompleter) { e.completer = c }
func (e *nopEditor) Close() error                      { return nil }

type fixture struct {
	repl   *repl.REPL
	editor *nopEditor
	fs     *dfs.Local
	local  afero.Fs
	out    *bytes.Buffer
	err    *bytes.Buffer
}

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		editor: &nopEditor{},
		fs:     dfs.NewMemory(),
		local:  afero.NewMemMapFs(),
		out:    &bytes.Buffer{},
		err:    &bytes.Buffer{},
	}
	r, err := repl.New(repl.Options{
		Config: config.NewConfig(),
		FS:     f.fs,
		Editor: f.editor,
		Providers: []repl.Provider{
			SessionProvider{Now: func() time.Time { return fixedTime }},
			FSProvider{},
		},
		Out:    f.out,
		Err:    f.err,
		Local:  f.local,
		State:  cluster.NewStateManager(f.fs, f.local, logging.Discard()),
		Logger: logging.Discard(),
	})
	require.NoError(t, err)
	f.repl = r
	return f
}

func (f *fixture) run(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, f.repl.Evaluate(line))
	}
}

func (f *fixture) reset() {
	f.out.Reset()
	f.err.Reset()
}
