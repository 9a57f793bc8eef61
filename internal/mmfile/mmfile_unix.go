//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Map maps the file at path into memory read-only and returns its contents.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	return mapFile(f, syscall.PROT_READ)
}

// MapRW maps the file at path into memory read-write (shared) and returns its
// contents together with the open file, whose descriptor callers need for
// fdatasync. Stores through the returned slice land in the page cache and
// reach the file via msync or close.
func MapRW(path string) ([]byte, *os.File, func() error, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, nil, err
	}

	data, cleanup, err := mapFile(f, syscall.PROT_READ|syscall.PROT_WRITE)
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}
	unmap := cleanup
	cleanup = func() error {
		err := unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return data, f, cleanup, nil
}

func mapFile(f *os.File, prot int) ([]byte, func() error, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), prot, syscall.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := syscall.Munmap(data)
		if errors.Is(err, syscall.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
