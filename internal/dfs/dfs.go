// Package dfs abstracts the distributed filesystem the REPL talks to.
//
// Paths are always slash-separated and absolute. Two implementations exist:
// HDFS over the namenode RPC protocol, and an afero-backed store used by the
// in-process mini-cluster and by tests.
package dfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
)

// Separator is the path separator of every FileSystem
const Separator = "/"

// Errors
var (
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
)

// Usage is the capacity report of a filesystem, in bytes
type Usage struct {
	Capacity  uint64
	Used      uint64
	Remaining uint64
}

// FileSystem is the set of operations the shell and the completers need
type FileSystem interface {
	// ReadDir lists the immediate children of dir, sorted by name
	ReadDir(dir string) ([]os.FileInfo, error)
	Stat(name string) (os.FileInfo, error)
	Open(name string) (io.ReadSeekCloser, error)
	// Create truncates or creates name; parent directories must exist
	Create(name string) (io.WriteCloser, error)
	MkdirAll(dir string, perm os.FileMode) error
	// Remove deletes a file or an empty directory
	Remove(name string) error
	RemoveAll(name string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode os.FileMode) error
	Usage() (Usage, error)
	// URI identifies the store, e.g. hdfs://namenode:8020
	URI() string
	Close() error
}

// Owned is implemented by FileInfo values that carry ownership
type Owned interface {
	Owner() string
	OwnerGroup() string
}

// Open connects to the filesystem selected by cfg
func Open(cfg *config.Config) (FileSystem, error) {
	switch cfg.FileSystem {
	case constants.FileSystemLocal:
		return NewLocal(cfg.LocalRoot)
	case constants.FileSystemHDFS, "":
		return NewHDFS(HDFSOptions{
			NameNodes:     cfg.NameNodes,
			User:          cfg.User,
			HadoopConfDir: cfg.HadoopConfDir,
		})
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidFileSystem, cfg.FileSystem)
	}
}

// Clean normalizes name to an absolute slash path
func Clean(name string) string {
	if !strings.HasPrefix(name, Separator) {
		name = Separator + name
	}
	return path.Clean(name)
}

// Join resolves name against dir unless name is already absolute
func Join(dir, name string) string {
	if strings.HasPrefix(name, Separator) {
		return Clean(name)
	}
	return Clean(path.Join(dir, name))
}

// WalkFunc is called for every path visited by Walk
type WalkFunc func(name string, info os.FileInfo, err error) error

// SkipDir returned from a WalkFunc skips the directory's children
var SkipDir = errors.New("skip this directory")

// Walk visits root and everything below it in lexical order
func Walk(fs FileSystem, root string, fn WalkFunc) error {
	root = Clean(root)
	info, err := fs.Stat(root)
	if err != nil {
		return fn(root, nil, err)
	}
	err = walk(fs, root, info, fn)
	if err == SkipDir {
		return nil
	}
	return err
}

func walk(fs FileSystem, name string, info os.FileInfo, fn WalkFunc) error {
	if err := fn(name, info, nil); err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	children, err := fs.ReadDir(name)
	if err != nil {
		if err := fn(name, info, err); err != nil && err != SkipDir {
			return err
		}
		return nil
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })

	for _, child := range children {
		err := walk(fs, path.Join(name, child.Name()), child, fn)
		if err == SkipDir {
			if child.IsDir() {
				continue
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
