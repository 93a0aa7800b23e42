package minicluster

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

func seedRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "seed")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "logs", "2024"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logs", "2024", "a.log"), []byte("line\n"), 0644))
	return root
}

func startCluster(t *testing.T, opts Options) *Cluster {
	t.Helper()
	if opts.ConfigFile == "" {
		opts.ConfigFile = filepath.Join(t.TempDir(), "cluster.yaml")
	}
	opts.Logger = logging.Discard()
	c := New(opts)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { c.Stop() })
	return c
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStart_ImportsLocalRoot(t *testing.T) {
	c := startCluster(t, Options{LocalRoot: seedRoot(t)})

	info, err := c.FS().Stat("/seed/logs/2024")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	f, err := c.FS().Open("/seed/README")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "hello", string(data))
}

func TestStart_EmptyWithoutLocalRoot(t *testing.T) {
	c := startCluster(t, Options{})

	entries, err := c.FS().ReadDir("/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDFSHTTP_ServesFiles(t *testing.T) {
	c := startCluster(t, Options{LocalRoot: seedRoot(t)})

	status, body := get(t, c.DFSHTTPAddress()+"/seed/README")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body)

	status, body = get(t, c.DFSHTTPAddress()+"/seed/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "logs/")

	status, _ = get(t, c.DFSHTTPAddress()+"/missing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestJobTrackerHTTP_Status(t *testing.T) {
	c := startCluster(t, Options{})

	status, body := get(t, c.JobTrackerHTTPAddress())
	require.Equal(t, http.StatusOK, status)

	var js JobTrackerStatus
	require.NoError(t, json.Unmarshal([]byte(body), &js))
	assert.Equal(t, c.ID(), js.ClusterID)
	assert.Equal(t, "RUNNING", js.State)
	assert.Zero(t, js.RunningJobs)
	assert.Empty(t, js.Jobs)
}

func TestJobTrackerHTTP_RejectsPost(t *testing.T) {
	c := startCluster(t, Options{})

	resp, err := http.Post(c.JobTrackerHTTPAddress(), "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStart_WritesClusterConfig(t *testing.T) {
	c := startCluster(t, Options{})

	fc, err := config.ReadConfigFile(c.ConfigFile())
	require.NoError(t, err)
	require.NotNil(t, fc.FileSystem)
	require.NotNil(t, fc.Cluster)
	assert.Equal(t, constants.FileSystemLocal, fc.FileSystem.Type)
	assert.Equal(t, c.FS().Root(), fc.FileSystem.Root)
	assert.Equal(t, c.ID(), fc.Cluster.ID)
	assert.Equal(t, c.DFSHTTPAddress(), fc.Cluster.DFSHTTP)
	assert.Equal(t, c.JobTrackerHTTPAddress(), fc.Cluster.JobTrackerHTTP)

	info, err := os.Stat(c.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStop_RemovesState(t *testing.T) {
	c := startCluster(t, Options{LocalRoot: seedRoot(t)})
	dataDir := c.FS().Root()
	jt := c.JobTrackerHTTPAddress()

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())

	_, err := os.Stat(dataDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(c.ConfigFile())
	assert.True(t, os.IsNotExist(err))
	_, err = http.Get(jt)
	assert.Error(t, err)
}

func TestStop_KeepsCallerDataDir(t *testing.T) {
	dataDir := t.TempDir()
	c := startCluster(t, Options{DataDir: dataDir})

	require.NoError(t, c.Stop())

	_, err := os.Stat(dataDir)
	assert.NoError(t, err)
}

func TestStart_MissingLocalRoot(t *testing.T) {
	c := New(Options{
		LocalRoot:  filepath.Join(t.TempDir(), "nope"),
		ConfigFile: filepath.Join(t.TempDir(), "cluster.yaml"),
		Logger:     logging.Discard(),
	})

	err := c.Start(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	_, statErr := os.Stat(c.ConfigFile())
	assert.True(t, os.IsNotExist(statErr))
}

func TestStart_LocalRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	c := New(Options{
		LocalRoot:  file,
		ConfigFile: filepath.Join(t.TempDir(), "cluster.yaml"),
		Logger:     logging.Discard(),
	})

	assert.ErrorIs(t, c.Start(context.Background()), ErrIO)
}

func TestStart_FailureKeepsExistingConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("user: data\n"), 0644))
	c := New(Options{
		LocalRoot:  filepath.Join(t.TempDir(), "nope"),
		ConfigFile: cfgFile,
		Logger:     logging.Discard(),
	})

	require.ErrorIs(t, c.Start(context.Background()), ErrIO)

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "user: data\n", string(data))
}
