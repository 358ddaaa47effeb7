package organizer

import "time"

// Status is the pass-level outcome.
type Status int

const (
	// StatusCompleted means the pass visited every entry. Per-entry
	// failures do not change the status; they are collected on the
	// result instead.
	StatusCompleted Status = iota
	// StatusFailed means the pass aborted before or during the scan.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Action records one thing the pass did, or in simulate mode would
// have done.
type Action struct {
	// Name is the entry's base name.
	Name string

	// Source is where the entry was found.
	Source string

	// Dest is where it went: the category folder path for moves, the
	// trash location for deletions. Empty for keeps and skips.
	Dest string

	// Category is the classification label driving the move.
	Category string

	// Size in bytes.
	Size int64

	// Stale marks entries that tripped the age threshold.
	Stale bool

	// Renamed marks moves that needed a numeric suffix.
	Renamed bool

	// Reason says why an entry was skipped.
	Reason string
}

// Result summarizes one organization pass.
type Result struct {
	// RunID uniquely identifies the pass in logs and reports.
	RunID string

	// Root is the directory that was organized.
	Root string

	Status    Status
	Simulated bool
	StartedAt time.Time
	Duration  time.Duration

	// LogPath is where the run log was written. Empty for simulate
	// runs, which keep their log in memory.
	LogPath string

	// Moved holds every relocated entry, including stale files the
	// decision source chose to keep.
	Moved []Action

	// Deleted holds every entry sent to the trash.
	Deleted []Action

	// Kept holds stale files the decision source spared. Each also
	// appears in Moved once filed.
	Kept []Action

	// Skipped holds entries the pass deliberately left alone.
	Skipped []Action

	// Errors holds per-entry failures. The pass continues past them.
	Errors []*EntryError

	MovedSize   int64
	DeletedSize int64

	// ByCategory counts moves per category label.
	ByCategory map[string]int
}
