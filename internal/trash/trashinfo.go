package trash

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// infoSuffix is appended to the trashed name to form its metadata file.
const infoSuffix = ".trashinfo"

// deletionLayout is the DeletionDate format used by desktop trash
// implementations.
const deletionLayout = "2006-01-02T15:04:05"

// formatTrashInfo renders the metadata sidecar for a trashed file. The
// original path is percent-encoded so spaces and non-ASCII names
// round-trip.
func formatTrashInfo(originalPath string, deletedAt time.Time) string {
	var b strings.Builder
	b.WriteString("[Trash Info]\n")
	b.WriteString("Path=" + escapePath(originalPath) + "\n")
	b.WriteString("DeletionDate=" + deletedAt.Format(deletionLayout) + "\n")
	return b.String()
}

// parseTrashInfo extracts the original path and deletion time from a
// metadata sidecar.
func parseTrashInfo(data []byte) (string, time.Time, error) {
	var (
		path      string
		deletedAt time.Time
		sawHeader bool
	)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !sawHeader {
			if line != "[Trash Info]" {
				return "", time.Time{}, fmt.Errorf("not a trash info file")
			}
			sawHeader = true
			continue
		}

		switch {
		case strings.HasPrefix(line, "Path="):
			raw := strings.TrimPrefix(line, "Path=")
			unescaped, err := url.PathUnescape(raw)
			if err != nil {
				return "", time.Time{}, fmt.Errorf("malformed Path value: %w", err)
			}
			path = unescaped
		case strings.HasPrefix(line, "DeletionDate="):
			raw := strings.TrimPrefix(line, "DeletionDate=")
			t, err := time.ParseInLocation(deletionLayout, raw, time.Local)
			if err != nil {
				return "", time.Time{}, fmt.Errorf("malformed DeletionDate value: %w", err)
			}
			deletedAt = t
		}
	}

	if !sawHeader {
		return "", time.Time{}, fmt.Errorf("not a trash info file")
	}
	if path == "" {
		return "", time.Time{}, fmt.Errorf("trash info has no Path")
	}
	return path, deletedAt, nil
}

// escapePath percent-encodes a filesystem path the way URLs do,
// leaving slashes intact.
func escapePath(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}
