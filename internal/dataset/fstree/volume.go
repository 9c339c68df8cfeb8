package fstree

// Volume describes the filesystem holding a scanned root.
type Volume struct {
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes in use on the volume.
func (v Volume) UsedBytes() int64 {
	return v.TotalBytes - v.FreeBytes
}

// UsedPercent returns the used fraction of the volume as a percentage.
func (v Volume) UsedPercent() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes()) / float64(v.TotalBytes) * 100
}
