package completion

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/dfs"
)

// RemoteLister lists directories of the distributed filesystem
type RemoteLister struct {
	FS dfs.FileSystem
}

func (l RemoteLister) List(dir string) ([]Entry, error) {
	infos, err := l.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

// LocalLister lists directories of an afero filesystem, normally the
// local disk
type LocalLister struct {
	FS afero.Fs
}

func (l LocalLister) List(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(l.FS, dir)
	if err != nil {
		return nil, err
	}
	return toEntries(infos), nil
}

func toEntries(infos []os.FileInfo) []Entry {
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir()})
	}
	return entries
}

// NewRemoteCompleter completes remote paths relative to workingDir
func NewRemoteCompleter(fs dfs.FileSystem, workingDir string) *PathCompleter {
	return NewPathCompleter(workingDir, dfs.Separator, RemoteLister{FS: fs})
}

// NewLocalCompleter completes local-disk paths relative to the process
// working directory
func NewLocalCompleter(fs afero.Fs) *PathCompleter {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return NewPathCompleter(cwd, string(filepath.Separator), LocalLister{FS: fs})
}
