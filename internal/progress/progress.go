package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Phase represents the current phase of an organization run
type Phase string

const (
	PhaseScanning   Phase = "scanning"
	PhaseOrganizing Phase = "organizing"
	PhaseDeciding   Phase = "deciding"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// Update represents a point-in-time view of a running organization pass
type Update struct {
	Phase       Phase
	CurrentName string
	Processed   int
	Total       int
	Moved       int
	Deleted     int
	Kept        int
	Skipped     int
	MovedSize   int64
	DeletedSize int64
	StartTime   time.Time
	Error       error
}

// Reporter provides thread-safe progress reporting
type Reporter struct {
	current   *Update
	mu        sync.RWMutex
	listeners []chan Update
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan Update, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Update, 10)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish records an update and notifies listeners
func (r *Reporter) Publish(update Update) {
	r.mu.Lock()
	r.current = &update
	listeners := make([]chan Update, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	// Notify all listeners (non-blocking)
	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// Current returns the latest update, or nil before the first publish
func (r *Reporter) Current() *Update {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// FormatUpdate returns a human-readable progress string
func FormatUpdate(u *Update) string {
	if u == nil {
		return "Initializing..."
	}

	elapsed := time.Since(u.StartTime)

	switch u.Phase {
	case PhaseScanning:
		return fmt.Sprintf("Scanning... Found %d entries [%s]",
			u.Total,
			FormatDuration(elapsed))
	case PhaseDeciding:
		return fmt.Sprintf("Waiting for a decision on %s", u.CurrentName)
	case PhaseOrganizing:
		percentage := 0
		if u.Total > 0 {
			percentage = (u.Processed * 100) / u.Total
		}
		return fmt.Sprintf("Organizing... %d/%d entries (%d%%) - %d moved, %d deleted (%s)",
			u.Processed,
			u.Total,
			percentage,
			u.Moved,
			u.Deleted,
			humanize.Bytes(uint64(u.MovedSize+u.DeletedSize)))
	case PhaseComplete:
		return fmt.Sprintf("Done: %d moved, %d deleted, %d kept in %s",
			u.Moved,
			u.Deleted,
			u.Kept,
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Error: %v", u.Error)
	default:
		return "Working..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
