//go:build !windows

package fstree

import "golang.org/x/sys/unix"

// VolumeInfo reports total and free bytes of the filesystem holding path.
// The second return value is false when the information is unavailable.
func VolumeInfo(path string) (Volume, bool) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Volume{}, false
	}
	bsize := int64(stat.Bsize)
	return Volume{
		TotalBytes: int64(stat.Blocks) * bsize,
		FreeBytes:  int64(stat.Bavail) * bsize,
	}, true
}
