// Package commands provides the command sets of a REPL session: session
// lifecycle commands and filesystem commands.
package commands

import (
	"fmt"
	"time"

	"github.com/quocvuong92/hadoop-repl/internal/completion"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

// SessionProvider provides history, save, load, quit/exit, cd and pwd
type SessionProvider struct {
	// Now stamps default archive names; time.Now when nil
	Now func() time.Time
}

func (p SessionProvider) Commands(s *repl.Session) []repl.Binding {
	local := completion.NewLocalCompleter(s.Local)
	remote := completion.NewRemoteCompleter(s.FS, s.WorkingDir())

	quit := repl.NewCommand(
		repl.NewUsage("quit | exit", "Disconnects your current REPL session. If you are running in standalone mode, this will delete all unsaved cluster state."),
		func(_ repl.Invocation, s *repl.Session) error {
			s.Shutdown()
			return nil
		},
	)

	return []repl.Binding{
		repl.Bind(repl.NewCall("history"), repl.NewCommand(
			repl.NewUsage("history", "Shows a history of recently executed commands from the current REPL session"),
			history,
		)),
		repl.Bind(repl.NewCall("save", local), p.save()),
		repl.Bind(repl.NewCall("load", local), load()),
		repl.Bind(repl.NewCall("quit"), quit),
		repl.Bind(repl.NewCall("exit"), quit),
		repl.Bind(repl.NewCall("cd", remote), cd()),
		repl.Bind(repl.NewCall("pwd"), repl.NewCommand(
			repl.NewUsage("pwd", "Prints the working directory relative paths resolve against"),
			func(_ repl.Invocation, s *repl.Session) error {
				s.Output(s.WorkingDir())
				return nil
			},
		)),
	}
}

func history(_ repl.Invocation, s *repl.Session) error {
	for i, item := range s.History() {
		s.OutputColumns(8, fmt.Sprintf("[%d]:", i+1), item)
	}
	return nil
}

func (p SessionProvider) save() repl.Command {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	var cmd repl.Command
	cmd = repl.NewCommand(
		repl.NewUsage("save", "Saves the current session's cluster state to disk", "<path-to-save-cluster-state>"),
		func(inv repl.Invocation, s *repl.Session) error {
			var path string
			switch inv.ArgCount() {
			case 0:
				path = fmt.Sprintf(constants.SessionArchiveFormat, now().Format(constants.SessionArchiveLayout))
			case 1:
				path = inv.Arg(0)
			default:
				s.OutputUsage(cmd.Usage(s))
				return nil
			}
			if err := s.SaveClusterState(path); err != nil {
				s.Error("save: %v", err)
			}
			return nil
		},
	)
	return cmd
}

func load() repl.Command {
	var cmd repl.Command
	cmd = repl.NewCommand(
		repl.NewUsage("load", "Loads the current session's cluster state from disk", "<path-to-load-cluster-state>"),
		func(inv repl.Invocation, s *repl.Session) error {
			if inv.ArgCount() != 1 {
				s.OutputUsage(cmd.Usage(s))
				return nil
			}
			if err := s.LoadClusterState(inv.Arg(0)); err != nil {
				s.Error("load: %v", err)
			}
			return nil
		},
	)
	return cmd
}

func cd() repl.Command {
	var cmd repl.Command
	cmd = repl.NewCommand(
		repl.NewUsage("cd", "Changes the working directory; with no argument, returns to /", "[<path>]"),
		func(inv repl.Invocation, s *repl.Session) error {
			target := dfs.Separator
			switch inv.ArgCount() {
			case 0:
			case 1:
				target = inv.Arg(0)
			default:
				s.OutputUsage(cmd.Usage(s))
				return nil
			}
			if err := s.ChangeDir(target); err != nil {
				s.Error("cd: %v", err)
			}
			return nil
		},
	)
	return cmd
}
