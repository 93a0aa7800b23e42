// Package display handles terminal output formatting for the REPL.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// Stderr is where ShowError and ShowWarning write; tests may replace it
var Stderr io.Writer = os.Stderr

// ShowError prints an error message in red to Stderr
func ShowError(msg string) {
	fmt.Fprintln(Stderr, errorStyle.Render("Error: ")+msg)
}

// ShowWarning prints a warning message to Stderr
func ShowWarning(msg string) {
	fmt.Fprintln(Stderr, warningStyle.Render("Warning: ")+msg)
}

// Endpoint is one labelled URL in the startup banner
type Endpoint struct {
	Label string
	URL   string
}

// ShowBanner writes a title and the given endpoints as "Label: url" lines.
// The label text is kept verbatim so the lines stay greppable.
func ShowBanner(w io.Writer, title string, endpoints []Endpoint) {
	if title != "" {
		fmt.Fprintln(w, titleStyle.Render(title))
	}
	for _, e := range endpoints {
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render(e.Label+":"), e.URL)
	}
}
