// Package cluster saves the contents of a filesystem as a session archive.
package cluster

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// ErrLoadUnsupported is returned by Load: restoring an archive has no
// defined layout yet.
var ErrLoadUnsupported = errors.New("loading cluster state is not supported")

// Progress receives the bytes archived so far and the total to archive
type Progress func(done, total int64)

// StateManager archives the tree under "/" of a FileSystem to a local
// tar+gzip file.
type StateManager struct {
	fs     dfs.FileSystem
	local  afero.Fs
	logger *logging.Logger
}

// NewStateManager creates a manager writing archives to local
func NewStateManager(fs dfs.FileSystem, local afero.Fs, logger *logging.Logger) *StateManager {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	return &StateManager{fs: fs, local: local, logger: logger}
}

// Save writes every directory and file below "/" to path. A partially
// written archive is removed on failure.
func (m *StateManager) Save(ctx context.Context, path string, progress Progress) (err error) {
	total, err := m.size(ctx)
	if err != nil {
		return fmt.Errorf("failed to size filesystem: %w", err)
	}

	f, err := m.local.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			m.local.Remove(path)
		}
	}()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	var done int64
	if progress != nil {
		progress(0, total)
	}
	err = dfs.Walk(m.fs, dfs.Separator, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if name == dfs.Separator {
			return nil
		}
		n, err := m.add(tw, name, info)
		if err != nil {
			return err
		}
		done += n
		if progress != nil && n > 0 {
			progress(done, total)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to archive filesystem: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}

	m.logger.Info("Saved cluster state", logging.Fields{
		"archive": path,
		"bytes":   done,
		"source":  m.fs.URI(),
	})
	return nil
}

func (m *StateManager) add(tw *tar.Writer, name string, info os.FileInfo) (int64, error) {
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, err
	}
	hdr.Name = strings.TrimPrefix(name, dfs.Separator)
	if owned, ok := info.(dfs.Owned); ok {
		hdr.Uname = owned.Owner()
		hdr.Gname = owned.OwnerGroup()
	}
	if info.IsDir() {
		hdr.Name += "/"
		return 0, tw.WriteHeader(hdr)
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return 0, err
	}
	r, err := m.fs.Open(name)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return io.Copy(tw, r)
}

func (m *StateManager) size(ctx context.Context) (int64, error) {
	var total int64
	err := dfs.Walk(m.fs, dfs.Separator, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// Contents lists the entry names of an archive written by Save
func (m *StateManager) Contents(path string) ([]string, error) {
	f, err := m.local.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s is not a session archive: %w", path, err)
	}
	defer gz.Close()

	var names []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s is not a session archive: %w", path, err)
		}
		names = append(names, hdr.Name)
	}
}

// Load checks that path is a readable archive, then reports
// ErrLoadUnsupported.
func (m *StateManager) Load(path string) error {
	names, err := m.Contents(path)
	if err != nil {
		return err
	}
	m.logger.Debug("Refusing to load cluster state", logging.Fields{
		"archive": path,
		"entries": len(names),
	})
	return fmt.Errorf("%w: %s", ErrLoadUnsupported, path)
}
