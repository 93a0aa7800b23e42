package dfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/colinmarc/hdfs/v2"
	"github.com/colinmarc/hdfs/v2/hadoopconf"
)

// HDFSOptions selects the namenode(s) to connect to. Empty fields fall back
// to the Hadoop configuration in HadoopConfDir, HADOOP_CONF_DIR or
// HADOOP_HOME, and to HADOOP_USER_NAME / the OS user.
type HDFSOptions struct {
	NameNodes     []string
	User          string
	HadoopConfDir string
}

// ErrNoNameNode is returned when neither options nor hadoop configuration
// name a namenode
var ErrNoNameNode = errors.New("no namenode configured: set --namenode, HADOOP_REPL_NAMENODE or HADOOP_CONF_DIR")

// HDFS is a FileSystem backed by a remote HDFS cluster
type HDFS struct {
	client    *hdfs.Client
	namenodes []string
}

// NewHDFS connects to the namenode described by opts
func NewHDFS(opts HDFSOptions) (*HDFS, error) {
	var conf hadoopconf.HadoopConf
	var err error
	if opts.HadoopConfDir != "" {
		conf, err = hadoopconf.Load(opts.HadoopConfDir)
	} else {
		conf, err = hadoopconf.LoadFromEnvironment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hadoop configuration: %w", err)
	}

	clientOpts := hdfs.ClientOptionsFromConf(conf)
	if len(opts.NameNodes) > 0 {
		clientOpts.Addresses = opts.NameNodes
	}
	if len(clientOpts.Addresses) == 0 {
		return nil, ErrNoNameNode
	}
	clientOpts.User = opts.User
	if clientOpts.User == "" {
		clientOpts.User = os.Getenv("HADOOP_USER_NAME")
	}
	if clientOpts.User == "" {
		clientOpts.User = os.Getenv("USER")
	}

	client, err := WithRetry(context.Background(), MaxConnectAttempts, isConnectError, func() (*hdfs.Client, error) {
		return hdfs.NewClient(clientOpts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to namenode: %w", err)
	}
	return &HDFS{client: client, namenodes: clientOpts.Addresses}, nil
}

// errNoAvailableNameNodes prefixes the error hdfs.NewClient returns once
// every namenode failed to dial or handshake. The client formats the dial
// error with %s, so the net.Error is not reachable through errors.As.
const errNoAvailableNameNodes = "no available namenodes"

// isConnectError reports whether a NewClient failure is a network failure
// worth retrying. Setup errors such as missing kerberos credentials are not.
func isConnectError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.HasPrefix(err.Error(), errNoAvailableNameNodes)
}

func (h *HDFS) ReadDir(dir string) ([]os.FileInfo, error) {
	return h.client.ReadDir(Clean(dir))
}

func (h *HDFS) Stat(name string) (os.FileInfo, error) {
	return h.client.Stat(Clean(name))
}

func (h *HDFS) Open(name string) (io.ReadSeekCloser, error) {
	r, err := h.client.Open(Clean(name))
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (h *HDFS) Create(name string) (io.WriteCloser, error) {
	name = Clean(name)
	if info, err := h.client.Stat(name); err == nil {
		if info.IsDir() {
			return nil, &os.PathError{Op: "create", Path: name, Err: ErrIsDirectory}
		}
		if err := h.client.Remove(name); err != nil {
			return nil, err
		}
	}
	w, err := h.client.Create(name)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (h *HDFS) MkdirAll(dir string, perm os.FileMode) error {
	return h.client.MkdirAll(Clean(dir), perm)
}

func (h *HDFS) Remove(name string) error {
	return h.client.Remove(Clean(name))
}

func (h *HDFS) RemoveAll(name string) error {
	return h.client.RemoveAll(Clean(name))
}

func (h *HDFS) Rename(oldpath, newpath string) error {
	return h.client.Rename(Clean(oldpath), Clean(newpath))
}

func (h *HDFS) Chmod(name string, mode os.FileMode) error {
	return h.client.Chmod(Clean(name), mode)
}

func (h *HDFS) Usage() (Usage, error) {
	info, err := h.client.StatFs()
	if err != nil {
		return Usage{}, err
	}
	return Usage{Capacity: info.Capacity, Used: info.Used, Remaining: info.Remaining}, nil
}

func (h *HDFS) URI() string {
	return "hdfs://" + strings.Join(h.namenodes, ",")
}

func (h *HDFS) Close() error {
	return h.client.Close()
}
