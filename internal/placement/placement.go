// Package placement decides where an entry belongs inside the target
// directory: which "Downloaded ..." folder receives it and under what
// name when the obvious one is taken.
package placement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/elise-bgn/DownloadsCleaner/internal/category"
	"github.com/elise-bgn/DownloadsCleaner/internal/scanner"
)

const (
	// DirPrefix starts every destination folder name.
	DirPrefix = "Downloaded "

	// FoldersLabel is the pseudo-category for directories.
	FoldersLabel = "Folders"

	// maxAttempts bounds the search for a free destination name.
	maxAttempts = 10000
)

// ErrExhausted is returned when no free destination name exists.
var ErrExhausted = errors.New("no free destination name")

// DirName returns the destination folder name for a category label.
func DirName(label string) string {
	return DirPrefix + label
}

// Plan is a computed destination for a single entry.
type Plan struct {
	// Category is the label the entry classified under. Directories
	// always classify as Folders.
	Category string

	// Dir is the absolute destination directory.
	Dir string

	// Path is the absolute destination path, collision-free at the
	// time of planning.
	Path string

	// Renamed reports that a numeric suffix was needed.
	Renamed bool
}

// Planner maps entries of one target directory to destinations.
type Planner struct {
	root     string
	registry *category.Registry
	reserved map[string]struct{}
}

// New returns a planner for the given target directory and category
// rules.
func New(root string, registry *category.Registry) *Planner {
	reserved := map[string]struct{}{
		DirName(FoldersLabel): {},
	}
	for _, label := range registry.Labels() {
		reserved[DirName(label)] = struct{}{}
	}

	return &Planner{
		root:     root,
		registry: registry,
		reserved: reserved,
	}
}

// IsReserved reports whether name is one of the planner's own
// destination folders. Reserved directories are never reorganized, so
// repeated runs leave earlier results in place.
func (p *Planner) IsReserved(name string) bool {
	_, ok := p.reserved[name]
	return ok
}

// PlanFor computes the destination for an entry. The returned path does
// not exist yet; nothing is created.
func (p *Planner) PlanFor(e scanner.Entry) (Plan, error) {
	label := FoldersLabel
	if !e.IsDir {
		label = p.registry.Classify(filepath.Ext(e.Name))
	}

	dir := filepath.Join(p.root, DirName(label))
	path, renamed, err := allocate(dir, e.Name)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Category: label,
		Dir:      dir,
		Path:     path,
		Renamed:  renamed,
	}, nil
}

// allocate finds a free name in dir, starting with base and falling
// back to numbered variants.
func allocate(dir, base string) (string, bool, error) {
	first := filepath.Join(dir, base)
	if _, err := os.Lstat(first); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return first, false, nil
		}
		return "", false, err
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		name := fmt.Sprintf("%s-%d%s", stem, attempt, ext)
		candidate := filepath.Join(dir, name)
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, true, nil
			}
			return "", false, err
		}
	}

	return "", false, fmt.Errorf("exhausted name slots for %s in %s: %w", base, dir, ErrExhausted)
}
