package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/hadoop-repl/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure. The mini-cluster
// writes the same structure as its generated cluster configuration file.
type FileConfig struct {
	FileSystem *FileSystemConfig `yaml:"filesystem,omitempty"`
	HDFS       *HDFSConfig       `yaml:"hdfs,omitempty"`
	REPL       *REPLConfig       `yaml:"repl,omitempty"`
	Logging    *LoggingConfig    `yaml:"logging,omitempty"`
	Cluster    *ClusterConfig    `yaml:"cluster,omitempty"`
}

// FileSystemConfig selects the backing store
type FileSystemConfig struct {
	Type string `yaml:"type,omitempty"` // "hdfs", "local"
	Root string `yaml:"root,omitempty"` // local only
}

// HDFSConfig holds namenode connection settings
type HDFSConfig struct {
	NameNodes     []string `yaml:"namenodes,omitempty"`
	User          string   `yaml:"user,omitempty"`
	HadoopConfDir string   `yaml:"hadoop_conf_dir,omitempty"`
}

// REPLConfig holds interactive settings
type REPLConfig struct {
	Prompt      string `yaml:"prompt,omitempty"`
	Editor      string `yaml:"editor,omitempty"`
	HistoryFile string `yaml:"history_file,omitempty"`
	Render      bool   `yaml:"render,omitempty"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// ClusterConfig describes the endpoints of a running mini-cluster
type ClusterConfig struct {
	ID             string `yaml:"id,omitempty"`
	DFSHTTP        string `yaml:"dfs_http,omitempty"`
	JobTrackerHTTP string `yaml:"jobtracker_http,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found in GetConfigPaths
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	return &FileConfig{}, nil
}

// ReadConfigFile parses the config file at path
func ReadConfigFile(path string) (*FileConfig, error) {
	return loadConfigFromPath(path)
}

func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// WriteConfigFile writes fc as YAML to path with owner-only permissions
func WriteConfigFile(path string, fc *FileConfig) error {
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if fc.FileSystem != nil {
		if c.FileSystem == "" && fc.FileSystem.Type != "" {
			c.FileSystem = fc.FileSystem.Type
		}
		if c.LocalRoot == "" && fc.FileSystem.Root != "" {
			c.LocalRoot = fc.FileSystem.Root
		}
	}

	if fc.HDFS != nil {
		if len(c.NameNodes) == 0 && len(fc.HDFS.NameNodes) > 0 {
			c.NameNodes = fc.HDFS.NameNodes
		}
		if c.User == "" && fc.HDFS.User != "" {
			c.User = fc.HDFS.User
		}
		if c.HadoopConfDir == "" && fc.HDFS.HadoopConfDir != "" {
			c.HadoopConfDir = fc.HDFS.HadoopConfDir
		}
	}

	if fc.REPL != nil {
		if c.Prompt == "" && fc.REPL.Prompt != "" {
			c.Prompt = fc.REPL.Prompt
		}
		if c.Editor == "" && fc.REPL.Editor != "" {
			c.Editor = fc.REPL.Editor
		}
		if c.HistoryFile == "" && fc.REPL.HistoryFile != "" {
			c.HistoryFile = fc.REPL.HistoryFile
		}
		// A bool flag can't tell "unset" from "false", so only true is applied
		if fc.REPL.Render && !c.Render {
			c.Render = true
		}
	}

	if fc.Logging != nil {
		if c.LogLevel == "" && fc.Logging.Level != "" {
			c.LogLevel = fc.Logging.Level
		}
		if c.LogFormat == "" && fc.Logging.Format != "" {
			c.LogFormat = fc.Logging.Format
		}
	}

	if fc.Cluster != nil && c.Cluster == nil {
		cluster := *fc.Cluster
		c.Cluster = &cluster
	}
}

// CreateDefaultConfigFile creates a commented config file in the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# hadoop-repl configuration
# Location: ~/.config/hadoop-repl/config.yaml

# Backing store: "hdfs" (default) or "local"
# filesystem:
#   type: hdfs
#   root: /tmp/dfs   # local only

# HDFS connection (falls back to HADOOP_CONF_DIR core-site.xml / hdfs-site.xml)
# hdfs:
#   namenodes:
#     - namenode.example.com:8020
#   user: hdfs
#   hadoop_conf_dir: /etc/hadoop/conf

# Interactive settings
# repl:
#   prompt: "hadoop> "
#   editor: prompt   # prompt or readline
#   history_file: ~/.hadoop_repl_history
#   render: false

# logging:
#   level: none   # debug, info, warn, error, none
#   format: text  # text or json
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
