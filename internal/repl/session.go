package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/cluster"
	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/display"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// Session is the state shared by every command of one REPL session. It is
// only touched from the loop's goroutine.
type Session struct {
	Config *config.Config
	FS     dfs.FileSystem
	State  *cluster.StateManager
	// Local is the client-side disk, used for local path arguments
	Local afero.Fs

	id         string
	workingDir string
	out        io.Writer
	err        io.Writer
	logger     *logging.FieldLogger
	repl       *REPL
	shutdown   bool
}

// ID identifies the session in logs
func (s *Session) ID() string {
	return s.id
}

// Out is the output channel
func (s *Session) Out() io.Writer {
	return s.out
}

// Err is the error channel
func (s *Session) Err() io.Writer {
	return s.err
}

// Logger returns the session logger
func (s *Session) Logger() *logging.FieldLogger {
	return s.logger
}

// Context returns the context commands run under
func (s *Session) Context() context.Context {
	return s.repl.ctx
}

// Output writes a line to the output channel. With no args, format is
// written verbatim.
func (s *Session) Output(format string, args ...interface{}) {
	writeLine(s.out, format, args...)
}

// Error writes a line to the error channel
func (s *Session) Error(format string, args ...interface{}) {
	writeLine(s.err, format, args...)
}

// ErrorErr reports err on the error channel
func (s *Session) ErrorErr(err error) {
	writeLine(s.err, err.Error())
}

func writeLine(w io.Writer, format string, args ...interface{}) {
	if len(args) == 0 {
		fmt.Fprintln(w, format)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// OutputColumns left-aligns each column to width and writes them as one
// space-separated line.
func (s *Session) OutputColumns(width int, cols ...string) {
	padded := make([]string, len(cols))
	for i, c := range cols {
		padded[i] = fmt.Sprintf("%-*s", width, c)
	}
	fmt.Fprintln(s.out, strings.Join(padded, " "))
}

// OutputUsage writes a command's usage as columns
func (s *Session) OutputUsage(u Usage) {
	s.OutputColumns(1, u.Command, strings.Join(u.Arguments, " "), u.Description)
}

// History returns every line entered in this session, oldest first
func (s *Session) History() []string {
	return s.repl.history.Entries()
}

// Shutdown asks the loop to stop after the current command
func (s *Session) Shutdown() {
	s.shutdown = true
}

// ShuttingDown reports whether Shutdown was called
func (s *Session) ShuttingDown() bool {
	return s.shutdown
}

// WorkingDir is the remote directory relative paths resolve against
func (s *Session) WorkingDir() string {
	return s.workingDir
}

// Resolve makes a remote path absolute against the working directory
func (s *Session) Resolve(name string) string {
	return dfs.Join(s.workingDir, name)
}

// ChangeDir moves the working directory and rebuilds the completers, whose
// relative paths depend on it.
func (s *Session) ChangeDir(name string) error {
	target := s.Resolve(name)
	info, err := s.FS.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", target, dfs.ErrNotDirectory)
	}
	s.workingDir = target
	s.logger.Debug("Changed directory", logging.Fields{"dir": target})
	s.repl.ResetCompleters()
	return nil
}

// SaveClusterState archives the filesystem to a local path, drawing a
// progress bar on the error channel.
func (s *Session) SaveClusterState(path string) error {
	if s.State == nil {
		return fmt.Errorf("no cluster state manager configured")
	}
	bar := display.NewProgressBar(s.err, 40)
	if err := s.State.Save(s.Context(), path, bar.Update); err != nil {
		bar.Abort()
		return err
	}
	bar.Finish()
	s.Output("Saved cluster state to %s", path)
	return nil
}

// LoadClusterState restores an archive written by SaveClusterState
func (s *Session) LoadClusterState(path string) error {
	if s.State == nil {
		return fmt.Errorf("no cluster state manager configured")
	}
	return s.State.Load(path)
}

func newSessionID() string {
	return uuid.New().String()
}
