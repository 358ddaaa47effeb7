package platform

import (
	"os"
	"path/filepath"
)

// getLinuxInfo returns platform-specific information for Linux. Trash
// follows the freedesktop home-trash layout under XDG_DATA_HOME.
func getLinuxInfo(homeDir, username string) *Info {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}

	trashDir := filepath.Join(dataHome, "Trash")

	return &Info{
		OS:            Linux,
		HomeDir:       homeDir,
		Username:      username,
		DownloadsDir:  filepath.Join(homeDir, "Downloads"),
		TrashFilesDir: filepath.Join(trashDir, "files"),
		TrashInfoDir:  filepath.Join(trashDir, "info"),
		ConfigDir:     configHome,
	}
}
