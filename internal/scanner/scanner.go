// Package scanner reads point-in-time snapshots of a directory's
// immediate children and evaluates how stale each one is.
package scanner

import (
	"os"
	"path/filepath"
	"time"
)

// Entry is a snapshot of one immediate child of the target directory.
// Timestamps are captured once at scan time; later evaluation never
// touches the filesystem again.
type Entry struct {
	Path       string
	Name       string
	IsDir      bool
	Size       int64
	ModTime    time.Time
	AccessTime time.Time
	StatErr    error
}

// Snapshot lists the immediate children of root in a single pass.
// Entries created after the read are not seen, removed ones may still
// appear. A missing or unreadable root is the only fatal condition;
// per-entry metadata failures are recorded on the entry itself so the
// caller can log them and keep going.
func Snapshot(root string) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		e := Entry{
			Path:  filepath.Join(root, de.Name()),
			Name:  de.Name(),
			IsDir: de.IsDir(),
		}

		info, err := de.Info()
		if err != nil {
			e.StatErr = err
			entries = append(entries, e)
			continue
		}

		e.Size = info.Size()
		e.ModTime = info.ModTime()
		if at, ok := accessTime(e.Path); ok {
			e.AccessTime = at
		} else {
			e.AccessTime = info.ModTime()
		}

		entries = append(entries, e)
	}

	return entries, nil
}
