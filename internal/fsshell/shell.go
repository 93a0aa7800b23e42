// Package fsshell runs "hadoop fs" style verbs (-ls, -put, -cat, ...)
// against a dfs.FileSystem.
package fsshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// UsageError reports a verb called with the wrong arguments
type UsageError struct {
	Verb  string
	Usage string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: hadoop fs [%s %s]", e.Verb, e.Usage)
}

// ErrUnknownVerb is returned for a verb the shell does not implement
var ErrUnknownVerb = errors.New("unknown command")

// Options configures a Shell
type Options struct {
	FS dfs.FileSystem
	// Local is the client-side disk for put/get style verbs
	Local afero.Fs
	Out   io.Writer
	Err   io.Writer
	// WorkingDir resolves relative remote paths; defaults to "/"
	WorkingDir string
	Logger     *logging.Logger
}

// Shell executes verbs against one filesystem
type Shell struct {
	fs     dfs.FileSystem
	local  afero.Fs
	out    io.Writer
	err    io.Writer
	wd     string
	logger *logging.Logger
}

// New creates a Shell
func New(opts Options) *Shell {
	if opts.Local == nil {
		opts.Local = afero.NewOsFs()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = dfs.Separator
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	return &Shell{
		fs:     opts.FS,
		local:  opts.Local,
		out:    opts.Out,
		err:    opts.Err,
		wd:     dfs.Clean(opts.WorkingDir),
		logger: opts.Logger,
	}
}

type verb struct {
	usage string
	min   int
	max   int // -1 for unbounded
	run   func(sh *Shell, ctx context.Context, args []string) error
}

var verbs map[string]verb

func init() {
	verbs = map[string]verb{
		"-ls":            {"[<path> ...]", 0, -1, (*Shell).ls},
		"-lsr":           {"[<path> ...]", 0, -1, (*Shell).lsr},
		"-df":            {"[<path>]", 0, 1, (*Shell).df},
		"-du":            {"[<path> ...]", 0, -1, (*Shell).du},
		"-dus":           {"[<path> ...]", 0, -1, (*Shell).dus},
		"-count":         {"<path> ...", 1, -1, (*Shell).count},
		"-mv":            {"<src> ... <dst>", 2, -1, (*Shell).mv},
		"-cp":            {"<src> ... <dst>", 2, -1, (*Shell).cp},
		"-rm":            {"<path> ...", 1, -1, (*Shell).rm},
		"-rmr":           {"<path> ...", 1, -1, (*Shell).rmr},
		"-expunge":       {"", 0, 0, (*Shell).expunge},
		"-put":           {"<localsrc> ... <dst>", 2, -1, (*Shell).put},
		"-copyFromLocal": {"<localsrc> ... <dst>", 2, -1, (*Shell).put},
		"-moveFromLocal": {"<localsrc> ... <dst>", 2, -1, (*Shell).moveFromLocal},
		"-get":           {"<src> <localdst>", 2, 2, (*Shell).get},
		"-copyToLocal":   {"<src> <localdst>", 2, 2, (*Shell).get},
		"-moveToLocal":   {"<src> <localdst>", 2, 2, (*Shell).moveToLocal},
		"-getmerge":      {"<src> <localdst>", 2, 2, (*Shell).getmerge},
		"-cat":           {"<src> ...", 1, -1, (*Shell).cat},
		"-text":          {"<src> ...", 1, -1, (*Shell).cat},
		"-mkdir":         {"<path> ...", 1, -1, (*Shell).mkdir},
		"-touchz":        {"<path> ...", 1, -1, (*Shell).touchz},
		"-stat":          {"[format] <path> ...", 1, -1, (*Shell).stat},
		"-tail":          {"<file>", 1, 1, (*Shell).tail},
		"-chmod":         {"[-R] <MODE> <path> ...", 2, -1, (*Shell).chmod},
	}
}

// Verbs lists the supported verbs, sorted
func Verbs() []string {
	names := make([]string, 0, len(verbs))
	for name := range verbs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes one verb, e.g. Run(ctx, "-ls", "/tmp"). Per-path failures
// do not stop the remaining paths; they are joined into the returned error.
func (sh *Shell) Run(ctx context.Context, args ...string) error {
	if len(args) == 0 {
		return &UsageError{Verb: "<command>", Usage: "[args]"}
	}
	name := args[0]
	v, ok := verbs[name]
	if !ok {
		return fmt.Errorf("%s: %w", strings.TrimPrefix(name, "-"), ErrUnknownVerb)
	}

	rest := args[1:]
	if len(rest) < v.min || (v.max >= 0 && len(rest) > v.max) {
		return &UsageError{Verb: name, Usage: v.usage}
	}

	sh.logger.Debug("Running fs verb", logging.Fields{
		"verb": name,
		"args": len(rest),
		"wd":   sh.wd,
	})
	return v.run(sh, ctx, rest)
}

// resolve makes a remote path absolute
func (sh *Shell) resolve(p string) string {
	return dfs.Join(sh.wd, p)
}

// pathError formats err the way hadoop fs reports path failures
func pathError(verb, p string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%s: `%s': No such file or directory", verb, p)
	case errors.Is(err, dfs.ErrIsDirectory):
		return fmt.Errorf("%s: `%s': Is a directory", verb, p)
	case errors.Is(err, dfs.ErrNotDirectory):
		return fmt.Errorf("%s: `%s': Not a directory", verb, p)
	case errors.Is(err, os.ErrExist):
		return fmt.Errorf("%s: `%s': File exists", verb, p)
	default:
		return fmt.Errorf("%s: `%s': %w", verb, p, err)
	}
}

// eachPath runs fn for every path, collecting failures
func eachPath(ctx context.Context, paths []string, fn func(p string) error) error {
	var errs []error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := fn(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
