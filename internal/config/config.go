package config

import (
	"errors"
	"os"
	"strings"

	"github.com/quocvuong92/hadoop-repl/internal/constants"
)

// Environment variable names
const (
	EnvNameNode      = "HADOOP_REPL_NAMENODE"
	EnvUser          = "HADOOP_USER_NAME"
	EnvHadoopConfDir = "HADOOP_CONF_DIR"
	EnvEditor        = "HADOOP_REPL_EDITOR"
	EnvLogLevel      = "HADOOP_REPL_LOG_LEVEL"
	EnvFileSystem    = "HADOOP_REPL_FS"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultPrompt     = constants.DefaultPrompt
	DefaultEditor     = constants.DefaultEditor
	DefaultFileSystem = constants.DefaultFileSystem
	DefaultLogLevel   = "none"
	DefaultLogFormat  = "text"
)

// Errors
var (
	ErrInvalidEditor     = errors.New("invalid editor. Use 'prompt' or 'readline'")
	ErrInvalidFileSystem = errors.New("invalid filesystem type. Use 'hdfs' or 'local'")
	ErrLocalRootNotSet   = errors.New("filesystem type 'local' requires filesystem.root")
)

// Config holds the application configuration
type Config struct {
	// Path of an explicit config file; empty means search GetConfigPaths
	ConfigFile string

	// Filesystem selection
	FileSystem string // "hdfs" or "local"
	LocalRoot  string // root directory of a "local" filesystem

	// HDFS settings
	NameNodes     []string
	User          string
	HadoopConfDir string

	// Interactive settings
	Prompt      string
	Editor      string // "prompt" or "readline"
	HistoryFile string
	Render      bool

	// Logging
	LogLevel  string
	LogFormat string
	Verbose   bool

	// Endpoints written by the mini-cluster, informational
	Cluster *ClusterConfig
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate loads the environment and the config file, fills defaults and
// checks the result. Precedence is flags, then environment, then file.
func (c *Config) Validate() error {
	var fileConfig *FileConfig
	var err error
	if c.ConfigFile != "" {
		fileConfig, err = loadConfigFromPath(c.ConfigFile)
		if err != nil {
			return err
		}
	} else if fileConfig, err = LoadConfigFile(); err != nil {
		// A broken config file in a search path is ignored, like a missing one
		fileConfig = nil
	}

	if c.FileSystem == "" {
		c.FileSystem = os.Getenv(EnvFileSystem)
	}
	if len(c.NameNodes) == 0 {
		c.NameNodes = splitList(os.Getenv(EnvNameNode))
	}
	if c.User == "" {
		c.User = os.Getenv(EnvUser)
	}
	if c.HadoopConfDir == "" {
		c.HadoopConfDir = os.Getenv(EnvHadoopConfDir)
	}
	if c.Editor == "" {
		c.Editor = os.Getenv(EnvEditor)
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}

	c.ApplyFileConfig(fileConfig)

	if c.FileSystem == "" {
		c.FileSystem = DefaultFileSystem
	}
	c.FileSystem = strings.ToLower(c.FileSystem)
	if c.Editor == "" {
		c.Editor = DefaultEditor
	}
	c.Editor = strings.ToLower(c.Editor)
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	if c.Editor != constants.EditorPrompt && c.Editor != constants.EditorReadline {
		return ErrInvalidEditor
	}
	switch c.FileSystem {
	case constants.FileSystemHDFS:
	case constants.FileSystemLocal:
		if c.LocalRoot == "" {
			return ErrLocalRootNotSet
		}
	default:
		return ErrInvalidFileSystem
	}

	return nil
}

// IsLocal reports whether the session talks to a local (mini-cluster) store
func (c *Config) IsLocal() bool {
	return c.FileSystem == constants.FileSystemLocal
}

// NameNodesString returns the configured namenodes for display
func (c *Config) NameNodesString() string {
	if len(c.NameNodes) == 0 {
		return "(from hadoop configuration)"
	}
	return strings.Join(c.NameNodes, ", ")
}

// splitList splits a comma-separated value, dropping empty items
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
