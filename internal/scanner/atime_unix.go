//go:build linux || darwin

package scanner

import (
	"time"

	"golang.org/x/sys/unix"
)

// accessTime reads a path's last access time. The extra stat call is
// deliberate: the portable os.FileInfo does not expose atime.
func accessTime(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, false
	}
	sec, nsec := st.Atim.Unix()
	return time.Unix(sec, nsec), true
}
