// Package sharkfs is the high-level, path-based API over ramdisk image
// files.
//
// Every function opens the image, performs one operation and closes it
// again, flushing dirty pages on the way out. That keeps call sites to a
// single line and the on-disk image consistent between calls. Calls are
// serialized package-wide, so concurrent goroutines never race through
// one image's mapping. Callers that need many operations against one
// open volume use the ramfs and image packages directly.
//
// # Quick Start
//
// Create a formatted 1 MiB volume and write a file:
//
//	if err := sharkfs.Mkfs("disk.img", 1<<20); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := sharkfs.WriteFile("disk.img", "/hello.txt", []byte("hi")); err != nil {
//	    log.Fatal(err)
//	}
//
// Read it back:
//
//	data, err := sharkfs.ReadFile("disk.img", "/hello.txt")
package sharkfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lemonshark/sharkkit/image"
	"github.com/lemonshark/sharkkit/ramfs"
	"github.com/lemonshark/sharkkit/ramfs/ramdisk"
)

// ops serializes all calls. Two goroutines working on the same image file
// would otherwise race through its shared mapping.
var ops sync.Mutex

// Mkfs creates a fresh image file of the given byte size and formats it.
// The path must not exist yet.
func Mkfs(imgPath string, size int64) error {
	ops.Lock()
	defer ops.Unlock()

	if size <= 0 || size%ramdisk.BlockSize != 0 {
		return fmt.Errorf("sharkfs: size %d is not a positive multiple of %d", size, ramdisk.BlockSize)
	}

	img, err := image.Create(imgPath, int(size/ramdisk.BlockSize))
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	if _, err := ramfs.Format(img.Device()); err != nil {
		img.Close()
		os.Remove(imgPath)
		return fmt.Errorf("failed to format image: %w", err)
	}
	return img.Close()
}

// List returns the entries of the directory at path.
func List(imgPath, path string) ([]ramfs.DirEntry, error) {
	var entries []ramfs.DirEntry
	err := withVolume(imgPath, func(fs *ramfs.FS) error {
		ino, err := fs.Lookup(path)
		if err != nil {
			return err
		}
		entries, err = fs.ReadDir(ino)
		return err
	})
	return entries, err
}

// ReadFile returns the full content of the file at path.
func ReadFile(imgPath, path string) ([]byte, error) {
	var data []byte
	err := withVolume(imgPath, func(fs *ramfs.FS) error {
		ino, err := fs.Lookup(path)
		if err != nil {
			return err
		}
		data, err = fs.ReadFile(ino)
		return err
	})
	return data, err
}

// WriteFile appends data to the file at path, creating it first when it
// does not exist yet. Returns the byte count appended.
func WriteFile(imgPath, path string, data []byte) (int, error) {
	var n int
	err := withVolumeRW(imgPath, func(fs *ramfs.FS) error {
		ino, err := fs.Lookup(path)
		if errors.Is(err, ramfs.ErrNotFound) {
			ino, err = fs.CreateFile(path)
		}
		if err != nil {
			return err
		}
		n, err = fs.Append(ino, data)
		return err
	})
	return n, err
}

// Mkdir creates the directory at path; the parent must exist.
func Mkdir(imgPath, path string) error {
	return withVolumeRW(imgPath, func(fs *ramfs.FS) error {
		_, err := fs.Mkdir(path)
		return err
	})
}

// Stat describes the file or directory at path.
func Stat(imgPath, path string) (ramfs.Stat, error) {
	var st ramfs.Stat
	err := withVolume(imgPath, func(fs *ramfs.FS) error {
		ino, err := fs.Lookup(path)
		if err != nil {
			return err
		}
		st, err = fs.Stat(ino)
		return err
	})
	return st, err
}

// Info reports the volume's geometry and usage.
func Info(imgPath string) (ramfs.Info, error) {
	var info ramfs.Info
	err := withVolume(imgPath, func(fs *ramfs.FS) error {
		info = fs.Info()
		return nil
	})
	return info, err
}

// Check scans the volume for structural damage and accounting drift.
func Check(imgPath string) ([]ramfs.Problem, error) {
	var problems []ramfs.Problem
	err := withVolume(imgPath, func(fs *ramfs.FS) error {
		problems = fs.Check()
		return nil
	})
	return problems, err
}

// Dump writes the volume's hex listing to w.
func Dump(imgPath string, w io.Writer) error {
	return withVolume(imgPath, func(fs *ramfs.FS) error {
		return fs.Dump(w)
	})
}

// withVolume mounts the image read-only and runs op against it.
func withVolume(imgPath string, op func(fs *ramfs.FS) error) error {
	ops.Lock()
	defer ops.Unlock()

	img, err := image.OpenRead(imgPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer img.Close()

	fs, err := ramfs.Mount(img.Device())
	if err != nil {
		return fmt.Errorf("failed to mount image: %w", err)
	}
	return op(fs)
}

// withVolumeRW mounts the image read-write, runs op, then flushes on
// close so the file reflects every completed operation.
func withVolumeRW(imgPath string, op func(fs *ramfs.FS) error) error {
	ops.Lock()
	defer ops.Unlock()

	img, err := image.Open(imgPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer img.Close()

	fs, err := ramfs.Mount(img.Device())
	if err != nil {
		return fmt.Errorf("failed to mount image: %w", err)
	}
	if err := op(fs); err != nil {
		return err
	}
	return img.Close()
}
