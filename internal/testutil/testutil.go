// Package testutil provides test helpers and fixtures for downloads
// cleaner tests. All file operations use t.TempDir() for safe,
// isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestFixture wraps a temporary directory that stands in for the
// downloads folder under test.
type TestFixture struct {
	T       *testing.T
	RootDir string // simulated downloads directory (auto-cleaned)
}

// NewFixture creates a new empty downloads fixture.
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// Months converts whole months to the duration the cleaner uses for
// age thresholds (one month = 30 days).
func Months(n int) time.Duration {
	return time.Duration(n) * 30 * 24 * time.Hour
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with the given content and returns its path.
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file and backdates its timestamps.
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithMode creates a file with specific permissions.
func (f *TestFixture) CreateFileWithMode(relPath string, content []byte, mode os.FileMode) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, mode); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	return fullPath
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory and returns its path.
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateDirWithAge creates a directory and backdates its timestamps.
func (f *TestFixture) CreateDirWithAge(relPath string, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateDir(relPath)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set dir time for %s: %v", fullPath, err)
	}

	return fullPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a relative path within the fixture.
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

// RelPath returns the path relative to the fixture root.
func (f *TestFixture) RelPath(fullPath string) string {
	rel, _ := filepath.Rel(f.RootDir, fullPath)
	return rel
}

// ListNames returns the sorted names of the root's immediate children.
func (f *TestFixture) ListNames() []string {
	f.T.Helper()

	dirents, err := os.ReadDir(f.RootDir)
	if err != nil {
		f.T.Fatalf("failed to read fixture root: %v", err)
	}

	names := make([]string, 0, len(dirents))
	for _, de := range dirents {
		names = append(names, de.Name())
	}
	return names
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists.
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist.
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertContent fails the test if the file's content differs.
func (f *TestFixture) AssertContent(path string, want []byte) {
	f.T.Helper()

	got, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(got) != string(want) {
		f.T.Errorf("file %s content = %q, want %q", path, got, want)
	}
}

// =============================================================================
// Run Log Helpers
// =============================================================================

// FindFileWithPrefix returns the first child of dir whose name starts
// with prefix, or "" when none does.
func FindFileWithPrefix(t *testing.T, dir, prefix string) string {
	t.Helper()

	dirents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}

	for _, de := range dirents {
		if strings.HasPrefix(de.Name(), prefix) {
			return filepath.Join(dir, de.Name())
		}
	}
	return ""
}

// ReadLines reads a file and splits it into non-empty lines.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CountContaining returns how many lines contain the substring.
func CountContaining(lines []string, substr string) int {
	count := 0
	for _, line := range lines {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}

// =============================================================================
// Utility Functions
// =============================================================================

// IsRoot returns true if running as root.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root, where permission
// denials cannot be provoked.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}
