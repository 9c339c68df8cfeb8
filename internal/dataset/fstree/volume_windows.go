//go:build windows

package fstree

import "golang.org/x/sys/windows"

// VolumeInfo reports total and free bytes of the volume holding path.
// The second return value is false when the information is unavailable.
func VolumeInfo(path string) (Volume, bool) {
	var free, total, totalFree uint64
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Volume{}, false
	}
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return Volume{}, false
	}
	return Volume{
		TotalBytes: int64(total),
		FreeBytes:  int64(free),
	}, true
}
