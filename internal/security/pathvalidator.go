// Package security guards the organizer against being pointed at
// directories whose contents must never be reorganized. Moving every
// child of "/" or "/etc" into category folders would wreck a system,
// so the target root is validated before a pass touches anything.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrProtectedPath is returned when a path must not be used as an
// organization target.
var ErrProtectedPath = errors.New("protected path")

// Guard validates candidate target directories.
type Guard struct {
	// protected entries reject themselves and anything exactly one
	// level below them. "/home" therefore also rejects "/home/alice"
	// while leaving "/home/alice/Downloads" organizable.
	protected []string

	// exactOnly entries reject only themselves. The filesystem root
	// and home directories live here: "~" must never be reorganized,
	// "~/Downloads" is the whole point of the tool.
	exactOnly []string
}

// NewGuard creates a Guard preloaded with system directories and the
// current user's home.
func NewGuard() *Guard {
	g := &Guard{
		protected: []string{
			// Unix system directories
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/home",
			"/lib",
			"/lib64",
			"/proc",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			// macOS system directories
			"/System",
			"/Applications",
			"/Library/System",
			"/Users",
			"/private",
		},
		exactOnly: []string{"/", "/root"},
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		g.exactOnly = append(g.exactOnly, filepath.Clean(home))
	}
	return g
}

// ValidateRoot reports whether path may be organized. Both the path as
// given and its symlink-resolved form are checked, so a link into /etc
// cannot smuggle a protected directory past the list, and /var/log is
// still refused on systems where /var itself is a symlink. A path that
// does not exist yet passes; the organizer reports missing directories
// itself.
func (g *Guard) ValidateRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	abs = filepath.Clean(abs)

	candidates := []string{abs}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("resolving symlinks in %s: %w", path, err)
	}
	if err == nil && filepath.Clean(resolved) != abs {
		candidates = append(candidates, filepath.Clean(resolved))
	}

	for _, c := range candidates {
		if err := g.check(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Guard) check(clean string) error {
	for _, p := range g.exactOnly {
		if clean == p {
			return fmt.Errorf("%w: refusing to reorganize %s", ErrProtectedPath, clean)
		}
	}

	for _, p := range g.protected {
		if clean == p {
			return fmt.Errorf("%w: refusing to reorganize %s", ErrProtectedPath, clean)
		}
		if strings.HasPrefix(clean, p+"/") {
			rel, relErr := filepath.Rel(p, clean)
			if relErr == nil && !strings.Contains(rel, string(filepath.Separator)) {
				return fmt.Errorf("%w: refusing to reorganize %s", ErrProtectedPath, clean)
			}
		}
	}

	return nil
}

// IsProtected reports whether ValidateRoot would reject the path.
func (g *Guard) IsProtected(path string) bool {
	return g.ValidateRoot(path) != nil
}

// AddProtected marks an additional directory, and its immediate
// children, as off limits.
func (g *Guard) AddProtected(path string) {
	g.protected = append(g.protected, filepath.Clean(path))
}

// ValidatePattern checks that an exclude pattern is valid glob syntax.
// Patterns match entry names, never paths, so path traversal in a
// pattern is always a mistake.
func ValidatePattern(pattern string) error {
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("pattern %q contains path traversal", pattern)
	}
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return nil
}
