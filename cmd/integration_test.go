package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/minicluster"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
	"github.com/quocvuong92/hadoop-repl/internal/repl/editor"
)

// scriptedEditor replays lines, then reports EOF
type scriptedEditor struct {
	lines  []string
	next   int
	closed bool
}

func (e *scriptedEditor) ReadLine(string) (string, error) {
	if e.next >= len(e.lines) {
		return "", io.EOF
	}
	line := e.lines[e.next]
	e.next++
	return line, nil
}

func (e *scriptedEditor) AddHistory(string)              {}
func (e *scriptedEditor) SetCompleter(repl.LineCompleter) {}
func (e *scriptedEditor) Close() error {
	e.closed = true
	return nil
}

type testApp struct {
	*App
	editor *scriptedEditor
	out    *bytes.Buffer
	err    *bytes.Buffer
}

// newTestApp isolates the app from the user's config files and environment
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, env := range []string{
		config.EnvNameNode, config.EnvUser, config.EnvHadoopConfDir,
		config.EnvEditor, config.EnvLogLevel, config.EnvFileSystem,
	} {
		t.Setenv(env, "")
	}

	ta := &testApp{
		App:    NewApp(),
		editor: &scriptedEditor{lines: lines},
		out:    &bytes.Buffer{},
		err:    &bytes.Buffer{},
	}
	ta.App.out = ta.out
	ta.App.err = ta.err
	ta.App.newEditor = func(string, editor.Options) (repl.LineEditor, error) {
		return ta.editor, nil
	}
	return ta
}

func writeLocalConfig(t *testing.T, root string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := config.WriteConfigFile(path, &config.FileConfig{
		FileSystem: &config.FileSystemConfig{Type: constants.FileSystemLocal, Root: root},
	})
	if err != nil {
		t.Fatalf("WriteConfigFile() error = %v", err)
	}
	return path
}

func TestIntegration_RemoteSessionOnLocalStore(t *testing.T) {
	root := t.TempDir()
	app := newTestApp(t, "mkdir /data", "touchz /data/part-0", "ls /data", "quit")

	code := app.Run([]string{"--config", writeLocalConfig(t, root)})

	if code != constants.ExitOK {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, app.err.String())
	}
	if !strings.Contains(app.out.String(), "/data/part-0") {
		t.Errorf("output missing listing, got: %q", app.out.String())
	}
	if _, err := os.Stat(filepath.Join(root, "data", "part-0")); err != nil {
		t.Errorf("file not created on disk: %v", err)
	}
	if !app.editor.closed {
		t.Error("editor was not closed")
	}
}

func TestIntegration_EOFIsCleanShutdown(t *testing.T) {
	app := newTestApp(t, "pwd")

	code := app.Run([]string{"--config", writeLocalConfig(t, t.TempDir())})

	if code != constants.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if app.out.String() != "/\n" {
		t.Errorf("output = %q, want %q", app.out.String(), "/\n")
	}
}

func TestIntegration_UnknownCommand(t *testing.T) {
	app := newTestApp(t, "frobnicate now")

	code := app.Run([]string{"--config", writeLocalConfig(t, t.TempDir())})

	if code != constants.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(app.err.String(), `Unknown command "frobnicate"`) {
		t.Errorf("stderr = %q", app.err.String())
	}
}

func TestIntegration_HistoryFile(t *testing.T) {
	histFile := filepath.Join(t.TempDir(), "history")
	app := newTestApp(t, "pwd", "history", "exit")

	code := app.Run([]string{"--config", writeLocalConfig(t, t.TempDir()), "--history-file", histFile})

	if code != constants.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	data, err := os.ReadFile(histFile)
	if err != nil {
		t.Fatalf("history file not written: %v", err)
	}
	if string(data) != "pwd\nhistory\nexit\n" {
		t.Errorf("history file = %q", string(data))
	}
}

func TestIntegration_InvalidEditor(t *testing.T) {
	app := newTestApp(t)

	code := app.Run([]string{"--config", writeLocalConfig(t, t.TempDir()), "--editor", "vi"})

	if code != constants.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(app.err.String(), "invalid editor") {
		t.Errorf("stderr = %q", app.err.String())
	}
}

func TestIntegration_RootRejectsArgs(t *testing.T) {
	app := newTestApp(t)

	if code := app.Run([]string{"extra"}); code != constants.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestIntegration_Standalone(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "fixtures")
	if err := os.MkdirAll(seed, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(seed, "input.txt"), []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	clusterConfig := filepath.Join(t.TempDir(), "cluster.yaml")
	app := newTestApp(t, "cat /fixtures/input.txt", "quit")

	code := app.Run([]string{"standalone", seed, clusterConfig})

	if code != constants.ExitOK {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, app.err.String())
	}
	out := app.out.String()
	for _, want := range []string{"DFS HTTP:", "JobTracker HTTP:", "http://127.0.0.1:", "abc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got: %q", want, out)
		}
	}
	if _, err := os.Stat(clusterConfig); !os.IsNotExist(err) {
		t.Errorf("cluster config left behind: %v", err)
	}
}

func TestIntegration_StandaloneMissingRoot(t *testing.T) {
	app := newTestApp(t)

	code := app.Run([]string{"standalone", filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "c.yaml")})

	if code != constants.ExitIO {
		t.Errorf("exit code = %d, want %d", code, constants.ExitIO)
	}
}

func TestIntegration_StandaloneTooManyArgs(t *testing.T) {
	app := newTestApp(t)

	if code := app.Run([]string{"standalone", "a", "b", "c"}); code != constants.ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestWatchSignals(t *testing.T) {
	t.Run("exits when done", func(t *testing.T) {
		sigChan := make(chan os.Signal, 1)
		done := make(chan struct{})
		called := false
		exited := watchSignals(sigChan, done, func() { called = true })

		close(done)
		select {
		case <-exited:
		case <-time.After(time.Second):
			t.Fatal("watcher still running after done was closed")
		}
		if called {
			t.Error("onSignal ran without a signal")
		}
	})

	t.Run("runs on signal", func(t *testing.T) {
		sigChan := make(chan os.Signal, 1)
		done := make(chan struct{})
		defer close(done)
		called := make(chan struct{})
		exited := watchSignals(sigChan, done, func() { close(called) })

		sigChan <- syscall.SIGTERM
		select {
		case <-called:
		case <-time.After(time.Second):
			t.Fatal("onSignal did not run")
		}
		<-exited
	})
}

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
		wantErr string
	}{
		{"nil", nil, 0, "", ""},
		{"exit ok with message", &repl.ExitSignal{Code: 0, Message: "bye"}, 0, "bye\n", ""},
		{"exit code", &repl.ExitSignal{Code: 3, Message: "broken pipe"}, 3, "", "broken pipe\n"},
		{"cluster io", fmt.Errorf("%w: disk full", minicluster.ErrIO), 100, "", "disk full"},
		{"generic", errors.New("boom"), 1, "", "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			if got := app.report(tt.err); got != tt.want {
				t.Errorf("report() = %d, want %d", got, tt.want)
			}
			if app.out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", app.out.String(), tt.wantOut)
			}
			if !strings.Contains(app.err.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", app.err.String(), tt.wantErr)
			}
		})
	}
}
