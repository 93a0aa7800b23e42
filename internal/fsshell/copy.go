package fsshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

// remoteTarget picks where each source lands: inside dst when dst is an
// existing directory, dst itself otherwise (single source only).
func (sh *Shell) remoteTarget(verb string, nsrc int, dstArg string) (dst string, isDir bool, err error) {
	dst = sh.resolve(dstArg)
	info, statErr := sh.fs.Stat(dst)
	isDir = statErr == nil && info.IsDir()
	if nsrc > 1 && !isDir {
		return "", false, fmt.Errorf("%s: When copying multiple files, destination %s must be a directory.", verb, dstArg)
	}
	return dst, isDir, nil
}

func (sh *Shell) cp(ctx context.Context, args []string) error {
	srcs := sh.expand(args[:len(args)-1])
	dst, dstIsDir, err := sh.remoteTarget("cp", len(srcs), args[len(args)-1])
	if err != nil {
		return err
	}
	return eachPath(ctx, srcs, func(p string) error {
		src := sh.resolve(p)
		target := dst
		if dstIsDir {
			target = path.Join(dst, path.Base(src))
		}
		if err := sh.copyRemote(ctx, src, target); err != nil {
			return pathError("cp", p, err)
		}
		return nil
	})
}

func (sh *Shell) copyRemote(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := sh.fs.Stat(src)
	if err != nil {
		return err
	}
	if _, err := sh.fs.Stat(dst); err == nil {
		return &os.PathError{Op: "cp", Path: dst, Err: os.ErrExist}
	}

	if info.IsDir() {
		if err := sh.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		children, err := sh.fs.ReadDir(src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := sh.copyRemote(ctx, path.Join(src, child.Name()), path.Join(dst, child.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	r, err := sh.fs.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	return sh.writeRemote(dst, r)
}

func (sh *Shell) writeRemote(dst string, r io.Reader) error {
	w, err := sh.fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (sh *Shell) mv(ctx context.Context, args []string) error {
	srcs := sh.expand(args[:len(args)-1])
	dst, dstIsDir, err := sh.remoteTarget("mv", len(srcs), args[len(args)-1])
	if err != nil {
		return err
	}
	return eachPath(ctx, srcs, func(p string) error {
		src := sh.resolve(p)
		if _, err := sh.fs.Stat(src); err != nil {
			return pathError("mv", p, err)
		}
		target := dst
		if dstIsDir {
			target = path.Join(dst, path.Base(src))
		}
		if _, err := sh.fs.Stat(target); err == nil {
			return pathError("mv", target, os.ErrExist)
		}
		if err := sh.fs.Rename(src, target); err != nil {
			return pathError("mv", p, err)
		}
		return nil
	})
}

func (sh *Shell) put(ctx context.Context, args []string) error {
	return sh.fromLocal(ctx, "put", args, false)
}

func (sh *Shell) moveFromLocal(ctx context.Context, args []string) error {
	return sh.fromLocal(ctx, "moveFromLocal", args, true)
}

func (sh *Shell) fromLocal(ctx context.Context, verb string, args []string, remove bool) error {
	srcs := args[:len(args)-1]
	dst, dstIsDir, err := sh.remoteTarget(verb, len(srcs), args[len(args)-1])
	if err != nil {
		return err
	}
	return eachPath(ctx, srcs, func(p string) error {
		target := dst
		if dstIsDir {
			target = path.Join(dst, filepath.Base(p))
		}
		if err := sh.upload(ctx, p, target); err != nil {
			return pathError(verb, p, err)
		}
		if remove {
			if err := sh.local.RemoveAll(p); err != nil {
				return pathError(verb, p, err)
			}
		}
		return nil
	})
}

func (sh *Shell) upload(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := sh.local.Stat(src)
	if err != nil {
		return err
	}
	if _, err := sh.fs.Stat(dst); err == nil {
		return &os.PathError{Op: "put", Path: dst, Err: os.ErrExist}
	}

	if info.IsDir() {
		if err := sh.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		children, err := afero.ReadDir(sh.local, src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := sh.upload(ctx, filepath.Join(src, child.Name()), path.Join(dst, child.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	f, err := sh.local.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	return sh.writeRemote(dst, f)
}

func (sh *Shell) get(ctx context.Context, args []string) error {
	return sh.toLocal(ctx, "get", args[0], args[1], false)
}

func (sh *Shell) moveToLocal(ctx context.Context, args []string) error {
	return sh.toLocal(ctx, "moveToLocal", args[0], args[1], true)
}

func (sh *Shell) toLocal(ctx context.Context, verb, srcArg, dstArg string, remove bool) error {
	src := sh.resolve(srcArg)
	if _, err := sh.fs.Stat(src); err != nil {
		return pathError(verb, srcArg, err)
	}
	target := dstArg
	if isDir, err := afero.IsDir(sh.local, dstArg); err == nil && isDir {
		target = filepath.Join(dstArg, path.Base(src))
	}
	if err := sh.download(ctx, src, target); err != nil {
		return pathError(verb, srcArg, err)
	}
	if remove {
		if err := sh.fs.RemoveAll(src); err != nil {
			return pathError(verb, srcArg, err)
		}
	}
	return nil
}

func (sh *Shell) download(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := sh.fs.Stat(src)
	if err != nil {
		return err
	}
	if exists, _ := afero.Exists(sh.local, dst); exists {
		return &os.PathError{Op: "get", Path: dst, Err: os.ErrExist}
	}

	if info.IsDir() {
		if err := sh.local.MkdirAll(dst, 0755); err != nil {
			return err
		}
		children, err := sh.fs.ReadDir(src)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := sh.download(ctx, path.Join(src, child.Name()), filepath.Join(dst, child.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	r, err := sh.fs.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	f, err := sh.local.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// getmerge concatenates the files of a remote directory, in name order,
// into one local file.
func (sh *Shell) getmerge(ctx context.Context, args []string) error {
	src := sh.resolve(args[0])
	info, err := sh.fs.Stat(src)
	if err != nil {
		return pathError("getmerge", args[0], err)
	}

	sources := []string{src}
	if info.IsDir() {
		children, err := sh.fs.ReadDir(src)
		if err != nil {
			return pathError("getmerge", args[0], err)
		}
		sources = sources[:0]
		for _, child := range children {
			if !child.IsDir() {
				sources = append(sources, path.Join(src, child.Name()))
			}
		}
	}

	f, err := sh.local.Create(args[1])
	if err != nil {
		return pathError("getmerge", args[1], err)
	}
	for _, name := range sources {
		if err := ctx.Err(); err != nil {
			f.Close()
			return err
		}
		if err := sh.appendRemote(f, name); err != nil {
			f.Close()
			return pathError("getmerge", name, err)
		}
	}
	return f.Close()
}

func (sh *Shell) appendRemote(w io.Writer, name string) error {
	r, err := sh.fs.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(w, r)
	return err
}
