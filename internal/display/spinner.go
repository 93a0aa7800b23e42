package display

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps briandowns/spinner with the charset used across the app
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner writing to stderr
func NewSpinner(suffix string) *Spinner {
	return NewSpinnerTo(os.Stderr, suffix)
}

// NewSpinnerTo creates a spinner writing to w
func NewSpinnerTo(w io.Writer, suffix string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	return &Spinner{s: s}
}

// Start begins the animation
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts the animation and clears the line
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateSuffix changes the text shown next to the spinner
func (sp *Spinner) UpdateSuffix(suffix string) {
	sp.s.Lock()
	sp.s.Suffix = " " + suffix
	sp.s.Unlock()
}
