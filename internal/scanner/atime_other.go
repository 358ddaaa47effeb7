//go:build !linux && !darwin

package scanner

import "time"

// accessTime is unavailable here; callers fall back to the
// modification time.
func accessTime(string) (time.Time, bool) {
	return time.Time{}, false
}
