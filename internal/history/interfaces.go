package history

// HistoryManager defines the interface for the session command history.
// This interface enables dependency injection and easier testing.
type HistoryManager interface {
	// Load reads previously saved lines from disk, if a file is configured
	Load() error

	// Save writes the lines to disk, if a file is configured
	Save() error

	// Add appends one raw input line
	Add(line string)

	// Entries returns a copy of the lines typed in this session
	Entries() []string

	// Previous returns the lines loaded from disk
	Previous() []string

	// Len returns the number of recorded lines
	Len() int
}

// Ensure concrete type implements the interface
var _ HistoryManager = (*History)(nil)
