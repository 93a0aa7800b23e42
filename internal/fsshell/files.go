package fsshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
)

func (sh *Shell) cat(ctx context.Context, args []string) error {
	return sh.eachRemote(ctx, args, func(p string) error {
		if err := sh.appendRemote(sh.out, sh.resolve(p)); err != nil {
			return pathError("cat", p, err)
		}
		return nil
	})
}

// tail prints the last kilobyte of a file
func (sh *Shell) tail(_ context.Context, args []string) error {
	name := sh.resolve(args[0])
	info, err := sh.fs.Stat(name)
	if err != nil {
		return pathError("tail", args[0], err)
	}
	if info.IsDir() {
		return pathError("tail", args[0], dfs.ErrIsDirectory)
	}

	r, err := sh.fs.Open(name)
	if err != nil {
		return pathError("tail", args[0], err)
	}
	defer r.Close()

	if info.Size() > constants.TailBytes {
		if _, err := r.Seek(-constants.TailBytes, io.SeekEnd); err != nil {
			return pathError("tail", args[0], err)
		}
	}
	if _, err := io.Copy(sh.out, r); err != nil {
		return pathError("tail", args[0], err)
	}
	return nil
}

func (sh *Shell) mkdir(ctx context.Context, args []string) error {
	return eachPath(ctx, args, func(p string) error {
		name := sh.resolve(p)
		if info, err := sh.fs.Stat(name); err == nil && !info.IsDir() {
			return pathError("mkdir", p, os.ErrExist)
		}
		if err := sh.fs.MkdirAll(name, 0755); err != nil {
			return pathError("mkdir", p, err)
		}
		return nil
	})
}

// touchz creates empty files; an existing file must already be empty
func (sh *Shell) touchz(ctx context.Context, args []string) error {
	return eachPath(ctx, args, func(p string) error {
		name := sh.resolve(p)
		if info, err := sh.fs.Stat(name); err == nil {
			if info.IsDir() {
				return pathError("touchz", p, dfs.ErrIsDirectory)
			}
			if info.Size() != 0 {
				return fmt.Errorf("touchz: `%s': Not a zero-length file", p)
			}
			return nil
		}
		w, err := sh.fs.Create(name)
		if err != nil {
			return pathError("touchz", p, err)
		}
		return w.Close()
	})
}

func (sh *Shell) rm(ctx context.Context, args []string) error {
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		info, err := sh.fs.Stat(name)
		if err != nil {
			return pathError("rm", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("rm: Cannot remove directory \"%s\", use -rmr instead", name)
		}
		if err := sh.fs.Remove(name); err != nil {
			return pathError("rm", p, err)
		}
		fmt.Fprintf(sh.out, "Deleted %s\n", name)
		return nil
	})
}

func (sh *Shell) rmr(ctx context.Context, args []string) error {
	return sh.eachRemote(ctx, args, func(p string) error {
		name := sh.resolve(p)
		if name == dfs.Separator {
			return fmt.Errorf("rmr: cannot remove the root directory")
		}
		if err := sh.fs.RemoveAll(name); err != nil {
			return pathError("rmr", p, err)
		}
		fmt.Fprintf(sh.out, "Deleted %s\n", name)
		return nil
	})
}

func (sh *Shell) expunge(context.Context, []string) error {
	fmt.Fprintln(sh.out, "Trash is not enabled; nothing to expunge")
	return nil
}

// chmod accepts an octal mode, optionally applied recursively with -R
func (sh *Shell) chmod(ctx context.Context, args []string) error {
	recursive := false
	if args[0] == "-R" {
		recursive, args = true, args[1:]
	}
	if len(args) < 2 {
		return &UsageError{Verb: "-chmod", Usage: verbs["-chmod"].usage}
	}
	mode, err := strconv.ParseUint(args[0], 8, 32)
	if err != nil || mode > 0777 {
		return fmt.Errorf("chmod: chmod : mode '%s' does not match the expected pattern.", args[0])
	}
	perm := os.FileMode(mode)

	return sh.eachRemote(ctx, args[1:], func(p string) error {
		name := sh.resolve(p)
		if !recursive {
			if err := sh.fs.Chmod(name, perm); err != nil {
				return pathError("chmod", p, err)
			}
			return nil
		}
		return dfs.Walk(sh.fs, name, func(child string, _ os.FileInfo, err error) error {
			if err != nil {
				return pathError("chmod", p, err)
			}
			if err := sh.fs.Chmod(child, perm); err != nil {
				return pathError("chmod", child, err)
			}
			return nil
		})
	})
}
