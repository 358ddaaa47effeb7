package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS. The
// user trash keeps no restore metadata, so TrashInfoDir stays empty
// and restore is reported unsupported.
func getMacOSInfo(homeDir, username string) *Info {
	return &Info{
		OS:            MacOS,
		HomeDir:       homeDir,
		Username:      username,
		DownloadsDir:  filepath.Join(homeDir, "Downloads"),
		TrashFilesDir: filepath.Join(homeDir, ".Trash"),
		TrashInfoDir:  "",
		ConfigDir:     filepath.Join(homeDir, ".config"),
	}
}
