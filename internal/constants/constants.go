// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// AppName is used for config directories and the banner
const AppName = "hadoop-repl"

// Prompts
const (
	DefaultPrompt    = "hadoop> "
	StandalonePrompt = "hadoop-in-a-box> "
)

// Line editor backends
const (
	EditorPrompt   = "prompt"   // go-prompt with suggestion popup
	EditorReadline = "readline" // classic readline TAB completion
	DefaultEditor  = EditorPrompt
)

// Filesystem backends
const (
	FileSystemHDFS    = "hdfs"
	FileSystemLocal   = "local"
	DefaultFileSystem = FileSystemHDFS
)

// Timeout constants used across the application
const (
	// DefaultShutdownTimeout bounds how long the mini-cluster waits for its
	// HTTP endpoints to drain
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultReadHeaderTimeout is applied to the mini-cluster HTTP servers
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Session archive defaults
const (
	// SessionArchiveLayout is the time layout of default save file names
	SessionArchiveLayout = "2006-01-02_15-04-05"
	// SessionArchiveFormat wraps the timestamp into a file name
	SessionArchiveFormat = "session-%s.tgz"
)

// Exit codes returned by the entry point
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitIO      = 100
)

// Mini-cluster defaults
const (
	// DefaultClusterConfigFile is written to the working directory when no
	// cluster configuration path is given
	DefaultClusterConfigFile = "hadoop-repl-cluster.yaml"
	// MiniClusterListenAddr binds the mini-cluster HTTP endpoints to an
	// ephemeral loopback port
	MiniClusterListenAddr = "127.0.0.1:0"
)

// TailBytes is how much of a file the tail command prints
const TailBytes = 1024
