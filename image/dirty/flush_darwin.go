//go:build darwin

package dirty

import (
	"golang.org/x/sys/unix"
)

// flushRanges syncs the whole mapping. macOS msync wants the original
// mmap address, not a sub-slice base, and the kernel only writes pages
// that are actually dirty.
func (t *Tracker) flushRanges(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync uses fsync, which macOS may satisfy from the drive cache.
// fullfsync upgrades to F_FULLFSYNC for true power-loss durability.
func fdatasync(fd int, fullfsync bool) error {
	if fullfsync {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
