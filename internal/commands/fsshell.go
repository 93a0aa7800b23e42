package commands

import (
	"github.com/quocvuong92/hadoop-repl/internal/completion"
	"github.com/quocvuong92/hadoop-repl/internal/fsshell"
	"github.com/quocvuong92/hadoop-repl/internal/repl"
)

// argument kinds, one per position
const (
	remoteArg = iota
	localArg
)

type fsCommand struct {
	name        string
	description string
	args        []int
}

var fsCommands = []fsCommand{
	{"ls", "Lists the contents of a directory", []int{remoteArg}},
	{"lsr", "Recursively lists the contents of a directory", []int{remoteArg}},
	{"df", "Shows the capacity, used and free space of the filesystem", []int{remoteArg}},
	{"du", "Shows the size of each file and directory in a directory", []int{remoteArg}},
	{"dus", "Shows the total size of a path", []int{remoteArg}},
	{"count", "Counts directories, files and bytes under a path", []int{remoteArg}},
	{"mv", "Moves files within the filesystem", []int{remoteArg, remoteArg}},
	{"cp", "Copies files within the filesystem", []int{remoteArg, remoteArg}},
	{"rm", "Deletes files", []int{remoteArg}},
	{"rmr", "Recursively deletes files and directories", []int{remoteArg}},
	{"expunge", "Empties the trash", nil},
	{"put", "Copies files from the local disk into the filesystem", []int{localArg, remoteArg}},
	{"cat", "Prints the contents of files", []int{remoteArg}},
	{"text", "Prints the contents of files as text", []int{remoteArg}},
	{"copyToLocal", "Copies a file or directory to the local disk", []int{remoteArg, localArg}},
	{"moveToLocal", "Moves a file or directory to the local disk", []int{remoteArg, localArg}},
	{"mkdir", "Creates directories, including parents", []int{remoteArg}},
	{"touchz", "Creates empty files", []int{remoteArg}},
	{"stat", "Prints information about a path", []int{remoteArg}},
	{"tail", "Prints the last kilobyte of a file", []int{remoteArg}},
	{"chmod", "Changes permissions of files, recursively with -R", []int{remoteArg}},
	{"copyFromLocal", "Copies files from the local disk into the filesystem", []int{localArg, remoteArg}},
	{"moveFromLocal", "Moves files from the local disk into the filesystem", []int{localArg, remoteArg}},
	{"get", "Copies a file or directory to the local disk", []int{remoteArg, localArg}},
	{"getmerge", "Concatenates the files of a directory into one local file", []int{remoteArg, localArg}},
}

// FSProvider provides the commands that run fs verbs. Arguments are passed
// through untouched; the verb reports its own usage errors.
type FSProvider struct{}

func (FSProvider) Commands(s *repl.Session) []repl.Binding {
	completers := map[int]completion.Completer{
		remoteArg: completion.NewRemoteCompleter(s.FS, s.WorkingDir()),
		localArg:  completion.NewLocalCompleter(s.Local),
	}

	bindings := make([]repl.Binding, 0, len(fsCommands))
	for _, c := range fsCommands {
		args := make([]completion.Completer, 0, len(c.args))
		for _, kind := range c.args {
			args = append(args, completers[kind])
		}
		bindings = append(bindings, repl.Bind(
			repl.NewCall(c.name, args...),
			repl.NewCommand(repl.NewUsage(c.name, c.description), runVerb("-"+c.name)),
		))
	}
	return bindings
}

func runVerb(verb string) func(repl.Invocation, *repl.Session) error {
	return func(inv repl.Invocation, s *repl.Session) error {
		sh := fsshell.New(fsshell.Options{
			FS:         s.FS,
			Local:      s.Local,
			Out:        s.Out(),
			Err:        s.Err(),
			WorkingDir: s.WorkingDir(),
		})
		if err := sh.Run(s.Context(), append([]string{verb}, inv.Args()...)...); err != nil {
			s.ErrorErr(err)
		}
		return nil
	}
}
