//go:build linux || freebsd

package dirty

import (
	"golang.org/x/sys/unix"
)

// flushRanges syncs each coalesced range on its own; msync accepts any
// page-aligned sub-slice of the mapping here. The metadata page is
// clipped off and left to FlushMeta.
func (t *Tracker) flushRanges(data []byte) error {
	for _, r := range t.coalesce() {
		start := r.Off
		if start < t.pageSize {
			start = t.pageSize
		}
		end := r.Off + r.Len
		if end > int64(len(data)) {
			end = int64(len(data))
		}
		if start >= end {
			continue
		}
		if err := unix.Msync(data[start:end], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

func msync(data []byte) error {
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync skips the timestamp-only inode update. fullfsync has no
// meaning on these systems.
func fdatasync(fd int, _ bool) error {
	return unix.Fdatasync(fd)
}
