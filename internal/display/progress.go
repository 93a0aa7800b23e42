package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar draws a single-line "[====>   ] 42%" bar, redrawn in place
type ProgressBar struct {
	mu    sync.Mutex
	w     io.Writer
	width int
	last  int
	done  bool
}

// NewProgressBar creates a bar of width cells writing to w
func NewProgressBar(w io.Writer, width int) *ProgressBar {
	if width <= 0 {
		width = 40
	}
	return &ProgressBar{w: w, width: width, last: -1}
}

// Update redraws the bar for current out of total. Redraws are skipped
// while the filled cell count is unchanged.
func (p *ProgressBar) Update(current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	percent := 100
	if total > 0 {
		if current > total {
			current = total
		}
		percent = int(current * 100 / total)
	}
	filled := percent * p.width / 100
	if filled == p.last {
		return
	}
	p.last = filled
	fmt.Fprint(p.w, render(filled, p.width, percent))
}

// Finish draws the bar at 100% and ends the line
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true
	fmt.Fprintln(p.w, render(p.width, p.width, 100))
}

// Abort ends the line of a partly drawn bar without completing it
func (p *ProgressBar) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true
	if p.last >= 0 {
		fmt.Fprintln(p.w)
	}
}

func render(filled, width, percent int) string {
	var sb strings.Builder
	sb.WriteString("\r[")
	sb.WriteString(strings.Repeat("=", filled))
	sb.WriteString(">")
	sb.WriteString(strings.Repeat(" ", width-filled))
	fmt.Fprintf(&sb, "] %d%%", percent)
	return sb.String()
}
