package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elise-bgn/DownloadsCleaner/internal/ui/styles"
)

const (
	// MinTerminalWidth is the minimum recommended terminal width
	MinTerminalWidth = 60
	// MinTerminalHeight is the minimum recommended terminal height
	MinTerminalHeight = 16
)

// TruncatePath intelligently truncates a file path to fit within maxWidth.
// It preserves the beginning and end of the path, truncating the middle.
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	if maxWidth < 10 {
		return "..."
	}

	dir, file := filepath.Split(path)

	// If the filename alone is too long, truncate it
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	availableForDir := maxWidth - len(file) - 3
	if availableForDir <= 0 {
		return "..." + file
	}

	dir = filepath.Clean(dir)
	if len(dir) <= availableForDir {
		return filepath.Join(dir, file)
	}

	parts := strings.Split(dir, string(filepath.Separator))
	if len(parts) <= 2 {
		truncatedDir := "..." + dir[len(dir)-availableForDir:]
		return truncatedDir + string(filepath.Separator) + file
	}

	// Show first part, "...", and last part
	firstPart := parts[0]
	if firstPart == "" && len(parts) > 1 {
		firstPart = string(filepath.Separator) + parts[1]
	}

	lastPart := parts[len(parts)-1]
	estimatedLen := len(firstPart) + 1 + 3 + 1 + len(lastPart)
	if estimatedLen <= availableForDir {
		truncatedDir := firstPart + string(filepath.Separator) + "..." + string(filepath.Separator) + lastPart
		return truncatedDir + string(filepath.Separator) + file
	}

	return "..." + string(filepath.Separator) + lastPart + string(filepath.Separator) + file
}

// IsTerminalTooSmall checks if the terminal is below minimum recommended size
func IsTerminalTooSmall(width, height int) bool {
	return width < MinTerminalWidth || height < MinTerminalHeight
}

// GetSizeWarningBanner returns a warning banner if terminal is too small
func GetSizeWarningBanner(width, height int) string {
	if !IsTerminalTooSmall(width, height) {
		return ""
	}

	warning := "⚠️  Terminal too small! Recommended: 60x16 or larger"
	if width > 0 && height > 0 {
		warning += styles.DimStyle.Render(" (current: ") +
			styles.WarningStyle.Render(fmt.Sprintf("%dx%d", width, height)) +
			styles.DimStyle.Render(")")
	}

	return styles.WarningStyle.Render(warning) + "\n\n"
}
