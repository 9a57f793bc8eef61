//go:build windows

package dirty

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// flushRanges syncs each coalesced range with FlushViewOfFile, clipping
// off the metadata page for FlushMeta.
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
		if err := msync(data[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func msync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.FlushViewOfFile(addr, uintptr(len(data)))
}

// fdatasync flushes the file buffers; fullfsync has no Windows
// equivalent.
func fdatasync(fd int, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(fd))
}
