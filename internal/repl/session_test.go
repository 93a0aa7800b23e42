package repl

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/hadoop-repl/internal/cluster"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

var errDiskFull = errors.New("disk full")

// fullDiskFs creates files that reject every write
type fullDiskFs struct {
	afero.Fs
}

func (fs fullDiskFs) Create(name string) (afero.File, error) {
	f, err := fs.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return fullDiskFile{f}, nil
}

type fullDiskFile struct {
	afero.File
}

func (fullDiskFile) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestSession_OutputColumns(t *testing.T) {
	h := newHarness(t)
	s := h.repl.Session()

	s.OutputColumns(8, "[1]:", "ls /")
	s.OutputColumns(8, "[10]:", "a-long-entry")
	assert.Equal(t, "[1]:     ls /    \n[10]:    a-long-entry\n", h.out.String())
}

func TestSession_OutputUsage(t *testing.T) {
	h := newHarness(t)
	h.repl.Session().OutputUsage(NewUsage("history", "Shows history"))
	assert.Equal(t, "history   Shows history\n", h.out.String())
}

func TestSession_OutputVerbatimWithoutArgs(t *testing.T) {
	h := newHarness(t)
	s := h.repl.Session()

	s.Output("100% done")
	s.Error("%d failures", 2)
	assert.Equal(t, "100% done\n", h.out.String())
	assert.Equal(t, "2 failures\n", h.err.String())
}

func TestSession_ChangeDir(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.fs.MkdirAll("/user/alice", 0755))
	w, err := h.fs.Create("/user/file")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s := h.repl.Session()
	assert.Equal(t, "/", s.WorkingDir())

	before := h.editor.installs
	require.NoError(t, s.ChangeDir("user"))
	assert.Equal(t, "/user", s.WorkingDir())
	assert.Equal(t, before+1, h.editor.installs, "completers are rebuilt")
	assert.Equal(t, "/user/alice/x", s.Resolve("alice/x"))
	assert.Equal(t, "/abs", s.Resolve("/abs"))

	err = s.ChangeDir("file")
	assert.ErrorIs(t, err, dfs.ErrNotDirectory)
	assert.Error(t, s.ChangeDir("/missing"))
	assert.Equal(t, "/user", s.WorkingDir())
}

func TestSession_ClusterStateWithoutManager(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.repl.Session().SaveClusterState("x.tgz"))
	assert.Error(t, h.repl.Session().LoadClusterState("x.tgz"))
}

func TestSession_SaveFailureEndsProgressLine(t *testing.T) {
	h := newHarness(t)
	w, err := h.fs.Create("/data")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	s := h.repl.Session()
	s.State = cluster.NewStateManager(h.fs, fullDiskFs{afero.NewMemMapFs()}, logging.Discard())

	err = s.SaveClusterState("state.tgz")
	require.Error(t, err)

	out := h.err.String()
	assert.Contains(t, out, "] 0%")
	assert.True(t, strings.HasSuffix(out, "\n"), "progress line left open: %q", out)
}
