package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ValidateRoot
// =============================================================================

func TestValidateRootAllowsUserDirectories(t *testing.T) {
	g := NewGuard()

	dir := t.TempDir()
	if err := g.ValidateRoot(dir); err != nil {
		t.Errorf("ValidateRoot(%s) = %v, want nil", dir, err)
	}

	// Not existing yet is fine; the organizer reports missing roots.
	missing := filepath.Join(dir, "downloads")
	if err := g.ValidateRoot(missing); err != nil {
		t.Errorf("ValidateRoot(%s) = %v, want nil", missing, err)
	}
}

func TestValidateRootRejectsSystemDirectories(t *testing.T) {
	g := NewGuard()

	paths := []string{
		"/",
		"/etc",
		"/usr",
		"/bin",
		"/home",
		"/var/log", // one level below a protected directory
	}
	for _, p := range paths {
		err := g.ValidateRoot(p)
		if !errors.Is(err, ErrProtectedPath) {
			t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", p, err)
		}
	}
}

func TestValidateRootAllowsDeepPaths(t *testing.T) {
	g := NewGuard()

	// Two or more levels below a protected directory is regular
	// territory again, e.g. per-user temp dirs under /var/folders.
	p := "/var/folders/ab/cd/T"
	if err := g.ValidateRoot(p); err != nil {
		t.Errorf("ValidateRoot(%s) = %v, want nil", p, err)
	}
}

func TestValidateRootRejectsHomeDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}

	g := NewGuard()
	if err := g.ValidateRoot(home); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", home, err)
	}
}

func TestValidateRootAllowsDownloadsUnderHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}

	g := NewGuard()
	downloads := filepath.Join(home, "Downloads")
	if err := g.ValidateRoot(downloads); err != nil {
		t.Errorf("ValidateRoot(%s) = %v, want nil", downloads, err)
	}
}

func TestValidateRootRejectsOtherHomeRoots(t *testing.T) {
	g := NewGuard()

	for _, p := range []string{"/home/someone", "/Users/someone"} {
		if err := g.ValidateRoot(p); !errors.Is(err, ErrProtectedPath) {
			t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", p, err)
		}
	}
}

func TestValidateRootResolvesSymlinks(t *testing.T) {
	if _, err := os.Stat("/etc"); err != nil {
		t.Skip("no /etc on this system")
	}

	link := filepath.Join(t.TempDir(), "sneaky")
	if err := os.Symlink("/etc", link); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	g := NewGuard()
	if err := g.ValidateRoot(link); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", link, err)
	}
}

func TestValidateRootRelativePath(t *testing.T) {
	g := NewGuard()

	// Relative paths resolve against the working directory instead of
	// being rejected outright.
	if err := g.ValidateRoot("testdata"); err != nil {
		t.Errorf("ValidateRoot(testdata) = %v, want nil", err)
	}
}

func TestIsProtected(t *testing.T) {
	g := NewGuard()

	if !g.IsProtected("/etc") {
		t.Error("IsProtected(/etc) = false, want true")
	}
	if g.IsProtected(t.TempDir()) {
		t.Error("IsProtected(tempdir) = true, want false")
	}
}

func TestAddProtected(t *testing.T) {
	g := NewGuard()
	dir := t.TempDir()
	g.AddProtected(dir)

	if err := g.ValidateRoot(dir); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", dir, err)
	}
	child := filepath.Join(dir, "child")
	if err := g.ValidateRoot(child); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("ValidateRoot(%s) = %v, want ErrProtectedPath", child, err)
	}
	deep := filepath.Join(dir, "child", "deeper")
	if err := g.ValidateRoot(deep); err != nil {
		t.Errorf("ValidateRoot(%s) = %v, want nil", deep, err)
	}
}

// =============================================================================
// ValidatePattern
// =============================================================================

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr bool
	}{
		{"*.partial", false},
		{"data-??", false},
		{"important*", false},
		{"[unclosed", true},
		{"../secret", true},
	}

	for _, tt := range tests {
		err := ValidatePattern(tt.pattern)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePattern(%q) = %v, wantErr %v", tt.pattern, err, tt.wantErr)
		}
	}
}
