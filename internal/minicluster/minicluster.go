// Package minicluster runs a single-process stand-in for a Hadoop cluster:
// a disk-backed filesystem seeded from a local directory, an HTTP file
// browser over it, and a job-tracker status endpoint.
package minicluster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/quocvuong92/hadoop-repl/internal/config"
	"github.com/quocvuong92/hadoop-repl/internal/constants"
	"github.com/quocvuong92/hadoop-repl/internal/dfs"
	"github.com/quocvuong92/hadoop-repl/internal/display"
	"github.com/quocvuong92/hadoop-repl/internal/logging"
)

// ErrIO marks failures to bring the cluster up
var ErrIO = errors.New("mini-cluster I/O failure")

// Options configures a Cluster
type Options struct {
	// LocalRoot is imported under /<basename of LocalRoot>; empty starts empty
	LocalRoot string
	// ConfigFile receives the generated cluster configuration;
	// constants.DefaultClusterConfigFile when empty
	ConfigFile string
	// DataDir holds the filesystem contents. When empty a temporary
	// directory is created and removed by Stop.
	DataDir string
	Logger  *logging.Logger
	// Progress shows a spinner during Start; nil disables it
	Progress io.Writer
}

// Cluster is a running mini-cluster
type Cluster struct {
	opts    Options
	id      string
	logger  *logging.FieldLogger
	fs      *dfs.Local
	dataDir string
	ownsDir bool
	started time.Time

	// wroteConfig is set once ConfigFile holds this cluster's configuration
	wroteConfig bool

	dfsServer *http.Server
	jtServer  *http.Server
	dfsURL    string
	jtURL     string

	stopOnce sync.Once
}

// New prepares a cluster; nothing is created until Start
func New(opts Options) *Cluster {
	if opts.ConfigFile == "" {
		opts.ConfigFile = constants.DefaultClusterConfigFile
	}
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	id := uuid.New().String()
	return &Cluster{
		opts:   opts,
		id:     id,
		logger: opts.Logger.WithFields(logging.Fields{"cluster": id}),
	}
}

// Start creates the store, imports the local root, starts both HTTP
// endpoints and writes the cluster configuration. Every failure wraps ErrIO;
// whatever was started is torn down again.
func (c *Cluster) Start(ctx context.Context) (err error) {
	var sp *display.Spinner
	if c.opts.Progress != nil {
		sp = display.NewSpinnerTo(c.opts.Progress, "Starting mini-cluster...")
		sp.Start()
		defer sp.Stop()
	}
	defer func() {
		if err != nil {
			c.Stop()
		}
	}()

	if err := c.createStore(); err != nil {
		return err
	}

	if c.opts.LocalRoot != "" {
		if sp != nil {
			sp.UpdateSuffix("Importing " + c.opts.LocalRoot + "...")
		}
		if err := c.importLocalRoot(ctx); err != nil {
			return err
		}
	}

	if sp != nil {
		sp.UpdateSuffix("Starting HTTP endpoints...")
	}
	c.started = time.Now()
	dfsHandler := http.FileServer(afero.NewHttpFs(c.fs.Afero()).Dir(dfs.Separator))
	if c.dfsServer, c.dfsURL, err = c.serve("dfs", dfsHandler); err != nil {
		return err
	}
	if c.jtServer, c.jtURL, err = c.serve("jobtracker", c.jobTrackerHandler()); err != nil {
		return err
	}

	if err := config.WriteConfigFile(c.opts.ConfigFile, c.FileConfig()); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	c.wroteConfig = true

	c.logger.Info("Mini-cluster started", logging.Fields{
		"data_dir":        c.dataDir,
		"dfs_http":        c.dfsURL,
		"jobtracker_http": c.jtURL,
		"config":          c.opts.ConfigFile,
	})
	return nil
}

func (c *Cluster) createStore() error {
	c.dataDir = c.opts.DataDir
	if c.dataDir == "" {
		dir, err := os.MkdirTemp("", constants.AppName+"-cluster-")
		if err != nil {
			return fmt.Errorf("%w: failed to create data directory: %w", ErrIO, err)
		}
		c.dataDir = dir
		c.ownsDir = true
	}
	fs, err := dfs.NewLocal(c.dataDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	c.fs = fs
	return nil
}

// importLocalRoot copies the local tree into /<basename>
func (c *Cluster) importLocalRoot(ctx context.Context) error {
	root, err := filepath.Abs(c.opts.LocalRoot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %w", ErrIO, root, dfs.ErrNotDirectory)
	}

	target := dfs.Join(dfs.Separator, filepath.Base(root))
	local := afero.NewOsFs()
	files := 0
	err = afero.Walk(local, root, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return err
		}
		dst := dfs.Join(target, filepath.ToSlash(rel))
		if info.IsDir() {
			return c.fs.MkdirAll(dst, 0755)
		}
		files++
		return copyIn(local, name, c.fs, dst)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to import %s: %w", ErrIO, root, err)
	}
	c.logger.Debug("Imported local root", logging.Fields{
		"source": root,
		"target": target,
		"files":  files,
	})
	return nil
}

func copyIn(local afero.Fs, src string, fs dfs.FileSystem, dst string) error {
	in, err := local.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// serve starts handler on an ephemeral loopback port
func (c *Cluster) serve(component string, handler http.Handler) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", constants.MiniClusterListenAddr)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s listener: %w", ErrIO, component, err)
	}
	srv := &http.Server{
		Handler:           logging.Middleware(c.opts.Logger, component, handler),
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("HTTP endpoint stopped", err, logging.Fields{"component": component})
		}
	}()
	return srv, "http://" + ln.Addr().String(), nil
}

// FS returns the cluster's filesystem
func (c *Cluster) FS() *dfs.Local {
	return c.fs
}

// ID identifies this cluster instance
func (c *Cluster) ID() string {
	return c.id
}

// DFSHTTPAddress is the URL of the file browser
func (c *Cluster) DFSHTTPAddress() string {
	return c.dfsURL
}

// JobTrackerHTTPAddress is the URL of the job-tracker status endpoint
func (c *Cluster) JobTrackerHTTPAddress() string {
	return c.jtURL
}

// ConfigFile is where the cluster configuration was written
func (c *Cluster) ConfigFile() string {
	return c.opts.ConfigFile
}

// FileConfig describes the running cluster in config file form
func (c *Cluster) FileConfig() *config.FileConfig {
	return &config.FileConfig{
		FileSystem: &config.FileSystemConfig{
			Type: constants.FileSystemLocal,
			Root: c.dataDir,
		},
		Cluster: &config.ClusterConfig{
			ID:             c.id,
			DFSHTTP:        c.dfsURL,
			JobTrackerHTTP: c.jtURL,
		},
	}
}

// Stop shuts both endpoints down and removes the data directory, when it
// was created by Start, and the configuration file. Safe to call twice.
func (c *Cluster) Stop() error {
	var errs []error
	c.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
		defer cancel()

		for _, srv := range []*http.Server{c.jtServer, c.dfsServer} {
			if srv == nil {
				continue
			}
			if err := srv.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if c.ownsDir && c.dataDir != "" {
			if err := os.RemoveAll(c.dataDir); err != nil {
				errs = append(errs, err)
			}
		}
		if c.wroteConfig {
			if err := os.Remove(c.opts.ConfigFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
		c.logger.Info("Mini-cluster stopped")
	})
	return errors.Join(errs...)
}
