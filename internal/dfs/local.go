package dfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local is a FileSystem over an afero.Fs. Rooted at a directory on disk it
// backs the mini-cluster; over a MemMapFs it backs tests.
type Local struct {
	fs   afero.Fs
	root string // absolute OS path, empty for memory stores
}

// NewLocal creates a store rooted at dir, creating dir if needed
func NewLocal(dir string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", abs, err)
	}
	return &Local{fs: afero.NewBasePathFs(afero.NewOsFs(), abs), root: abs}, nil
}

// NewMemory creates an empty in-memory store
func NewMemory() *Local {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(Separator, 0755)
	return &Local{fs: fs}
}

// Afero exposes the underlying afero filesystem
func (l *Local) Afero() afero.Fs {
	return l.fs
}

// Root returns the OS directory backing the store, or "" for memory stores
func (l *Local) Root() string {
	return l.root
}

func (l *Local) ReadDir(dir string) ([]os.FileInfo, error) {
	dir = Clean(dir)
	info, err := l.fs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "readdir", Path: dir, Err: ErrNotDirectory}
	}
	return afero.ReadDir(l.fs, dir)
}

func (l *Local) Stat(name string) (os.FileInfo, error) {
	return l.fs.Stat(Clean(name))
}

func (l *Local) Open(name string) (io.ReadSeekCloser, error) {
	name = Clean(name)
	if isDir, err := afero.IsDir(l.fs, name); err == nil && isDir {
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrIsDirectory}
	}
	return l.fs.Open(name)
}

func (l *Local) Create(name string) (io.WriteCloser, error) {
	name = Clean(name)
	parent := filepath.ToSlash(filepath.Dir(name))
	if isDir, err := afero.IsDir(l.fs, parent); err != nil || !isDir {
		return nil, &os.PathError{Op: "create", Path: name, Err: os.ErrNotExist}
	}
	return l.fs.Create(name)
}

func (l *Local) MkdirAll(dir string, perm os.FileMode) error {
	return l.fs.MkdirAll(Clean(dir), perm)
}

func (l *Local) Remove(name string) error {
	return l.fs.Remove(Clean(name))
}

func (l *Local) RemoveAll(name string) error {
	name = Clean(name)
	if _, err := l.fs.Stat(name); err != nil {
		return err
	}
	return l.fs.RemoveAll(name)
}

func (l *Local) Rename(oldpath, newpath string) error {
	return l.fs.Rename(Clean(oldpath), Clean(newpath))
}

func (l *Local) Chmod(name string, mode os.FileMode) error {
	return l.fs.Chmod(Clean(name), mode)
}

// Usage reports the disk backing an on-disk store. Memory stores report
// the bytes held as both used and capacity.
func (l *Local) Usage() (Usage, error) {
	if l.root != "" {
		return diskUsage(l.root)
	}
	var used uint64
	err := afero.Walk(l.fs, Separator, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			used += uint64(info.Size())
		}
		return nil
	})
	if err != nil {
		return Usage{}, err
	}
	return Usage{Capacity: used, Used: used}, nil
}

func (l *Local) URI() string {
	if l.root == "" {
		return "mem:///"
	}
	return "file://" + filepath.ToSlash(l.root)
}

func (l *Local) Close() error {
	return nil
}
