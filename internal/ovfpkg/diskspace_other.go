//go:build windows

package ovfpkg

// freeSpaceAt is not implemented on this platform; callers treat an
// unknown result as "skip the space check".
func freeSpaceAt(dir string) (free uint64, known bool) {
	return 0, false
}
