// Package platform resolves the per-OS directories the cleaner works
// with: the downloads folder, the user trash, and the config home.
package platform

import (
	"os/user"
	"runtime"
)

// Platform represents the operating system platform.
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths.
type Info struct {
	OS       Platform
	HomeDir  string
	Username string

	// DownloadsDir is the default organize target.
	DownloadsDir string

	// TrashFilesDir receives trashed items. TrashInfoDir holds their
	// restore metadata and is empty on platforms without one.
	TrashFilesDir string
	TrashInfoDir  string

	// ConfigDir is where the config file lives.
	ConfigDir string
}

// Detect returns the current platform.
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information for the current user.
func GetInfo() (*Info, error) {
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	return infoFor(Detect(), currentUser.HomeDir, currentUser.Username)
}

// infoFor builds an Info from explicit inputs so tests can exercise
// every platform branch.
func infoFor(p Platform, homeDir, username string) (*Info, error) {
	switch p {
	case MacOS:
		return getMacOSInfo(homeDir, username), nil
	case Linux:
		return getLinuxInfo(homeDir, username), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

// SupportsRestore reports whether trashed items carry the metadata
// needed to put them back.
func (i *Info) SupportsRestore() bool {
	return i.TrashInfoDir != ""
}

// Errors
var (
	ErrUnsupportedPlatform = &PlatformError{"unsupported platform"}
)

// PlatformError represents a platform-related error.
type PlatformError struct {
	Message string
}

func (e *PlatformError) Error() string {
	return e.Message
}
