// Package runlog writes the per-run action log the organizer leaves
// next to the files it touched.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// FilePrefix marks run-log artifacts. The organizer never
	// relocates or evaluates files carrying it.
	FilePrefix = "download_organizer_log"

	nameLayout = "2006-01-02_15-04-05"
	lineLayout = "2006-01-02 15:04:05"
)

// Sink receives the run's action messages.
type Sink interface {
	// Append records one message. Implementations prepend the
	// timestamp themselves.
	Append(message string) error
	// Path returns where the log lives on disk, or "" when it has no
	// file (nothing appended yet, or an in-memory sink).
	Path() string
}

// IsArtifact reports whether a file name belongs to a run log.
func IsArtifact(name string) bool {
	return strings.HasPrefix(name, FilePrefix)
}

// FileName returns the log file name for a run started at start. Each
// run gets its own file so logs are never interleaved.
func FileName(start time.Time) string {
	return fmt.Sprintf("%s_%s.txt", FilePrefix, start.Format(nameLayout))
}

// FormatLine renders one log line the way every sink writes it.
func FormatLine(at time.Time, message string) string {
	return fmt.Sprintf("[%s] %s", at.Format(lineLayout), message)
}

// FileSink appends timestamped lines to a log file in dir. The file is
// created on the first append, so a run that records nothing leaves
// nothing behind.
type FileSink struct {
	dir   string
	start time.Time
	clock func() time.Time

	mu   sync.Mutex
	file *os.File
	path string
}

// NewFileSink returns a sink writing into dir for a run started at
// start.
func NewFileSink(dir string, start time.Time) *FileSink {
	return &FileSink{
		dir:   dir,
		start: start,
		clock: time.Now,
	}
}

// Append writes one timestamped line, creating the log file on first
// use.
func (s *FileSink) Append(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		path := filepath.Join(s.dir, FileName(s.start))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("create run log: %w", err)
		}
		s.file = f
		s.path = path
	}

	if _, err := fmt.Fprintln(s.file, FormatLine(s.clock(), message)); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// Path returns the log file path, or "" before the first append.
func (s *FileSink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Close releases the underlying file, if one was ever created.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// MemorySink records lines without touching the filesystem. Simulate
// runs use it so a simulation leaves no trace on disk; tests use it to
// assert on what was logged.
type MemorySink struct {
	clock func() time.Time

	mu    sync.Mutex
	lines []string
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{clock: time.Now}
}

// Append records one timestamped line in memory.
func (s *MemorySink) Append(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, FormatLine(s.clock(), message))
	return nil
}

// Path always returns "" because nothing is written to disk.
func (s *MemorySink) Path() string { return "" }

// Lines returns a copy of everything appended so far.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}
