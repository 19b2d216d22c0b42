//go:build !windows

package ovfpkg

import "golang.org/x/sys/unix"

// freeSpaceAt reports bytes free on the filesystem holding dir. known
// is false if the statfs call itself failed, in which case callers
// should skip the space check rather than block on an unknown.
func freeSpaceAt(dir string) (free uint64, known bool) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, false
	}
	return stat.Bavail * uint64(stat.Bsize), true
}
