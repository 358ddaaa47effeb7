package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/elise-bgn/DownloadsCleaner/internal/progress"
)

// LiveProgress renders pass progress on a plain terminal, for runs
// without the full-screen interface. It writes to stderr so reports on
// stdout stay clean.
type LiveProgress struct {
	mu          sync.Mutex
	out         io.Writer
	update      progress.Update
	startTime   time.Time
	lastUpdate  time.Time
	termWidth   int
	enabled     bool
	statusLines int
}

// NewLiveProgress creates a new live progress display
func NewLiveProgress() *LiveProgress {
	width := 80
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		width = w
	}

	return &LiveProgress{
		out:         os.Stderr,
		startTime:   time.Now(),
		termWidth:   width,
		enabled:     true,
		statusLines: 2,
	}
}

// Start initializes the progress display area
func (lp *LiveProgress) Start() {
	if !lp.enabled {
		return
	}
	// Reserve space for status lines, then move back up to them
	fmt.Fprint(lp.out, "\n\n")
	fmt.Fprintf(lp.out, "\033[%dA", lp.statusLines)
}

// Apply updates the display with the latest pass progress.
func (lp *LiveProgress) Apply(u progress.Update) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if !lp.enabled {
		return
	}

	lp.update = u

	// Throttle repaints to avoid flickering
	now := time.Now()
	if now.Sub(lp.lastUpdate) < 100*time.Millisecond {
		return
	}
	lp.lastUpdate = now

	lp.render()
}

// render draws the progress display
func (lp *LiveProgress) render() {
	fmt.Fprint(lp.out, "\033[s")

	width := lp.termWidth - 2
	u := lp.update

	elapsed := time.Since(lp.startTime).Round(time.Second)
	var line1 string
	switch u.Phase {
	case progress.PhaseOrganizing, progress.PhaseDeciding:
		line1 = fmt.Sprintf("🗂  Organizing: %d/%d | Moved: %d (%s) | Deleted: %d | Kept: %d | Time: %s",
			u.Processed, u.Total, u.Moved, humanize.Bytes(uint64(u.MovedSize)), u.Deleted, u.Kept, elapsed)
	default:
		line1 = fmt.Sprintf("🔍 Scanning | Time: %s", elapsed)
	}
	fmt.Fprintf(lp.out, "\033[K%s\n", truncate(line1, width))

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinIdx := int(time.Now().UnixMilli()/100) % len(spinner)
	name := u.CurrentName
	if name == "" {
		name = "..."
	}
	line2 := fmt.Sprintf("%s %s", spinner[spinIdx], name)
	fmt.Fprintf(lp.out, "\033[K%s", truncate(line2, width))

	fmt.Fprint(lp.out, "\033[u")
}

// Finish completes the progress display
func (lp *LiveProgress) Finish() {
	if !lp.enabled {
		return
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()

	fmt.Fprintf(lp.out, "\033[%dB", lp.statusLines)
	fmt.Fprint(lp.out, "\033[K\n")
}

// SetEnabled enables or disables live progress
func (lp *LiveProgress) SetEnabled(enabled bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.enabled = enabled
}

// truncate truncates a string to fit width
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
