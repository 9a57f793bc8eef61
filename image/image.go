// Package image stores a volume as a plain file and presents it to the
// filesystem as a block device backed by a shared memory mapping.
//
// Writes through the device land directly in the mapped pages and are
// recorded by a dirty tracker; Flush makes them durable with page-level
// syncs rather than rewriting the whole file. On platforms without mmap
// the package falls back to a heap buffer that is written back wholesale
// on Flush and Close.
//
// An Image is not goroutine safe. The sharkfs volume layer serializes
// access for callers that need it.
package image

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lemonshark/sharkkit/image/dirty"
	"github.com/lemonshark/sharkkit/internal/mmfile"
	"github.com/lemonshark/sharkkit/ramfs/ramdisk"
)

var (
	// ErrReadOnly is returned when a mutating call reaches an image
	// opened with OpenRead.
	ErrReadOnly = errors.New("image: opened read-only")

	// ErrClosed is returned for any call after Close.
	ErrClosed = errors.New("image: closed")
)

// Image is an open volume image file.
type Image struct {
	path    string
	data    []byte
	f       *os.File // nil when the platform fell back to a heap buffer
	cleanup func() error
	tracker *dirty.Tracker
	dev     *ramdisk.Device
	ro      bool
	closed  bool
}

// Create makes a zero-filled image of the given block count and opens it
// read-write. The path must not exist yet; remove it first to overwrite.
// The new image is raw capacity, not a formatted filesystem.
func Create(path string, blocks int) (*Image, error) {
	if blocks <= 0 {
		return nil, fmt.Errorf("image: block count %d out of range", blocks)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(blocks) * ramdisk.BlockSize); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	img, err := Open(path)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return img, nil
}

// Open maps an existing image read-write and attaches a dirty tracker to
// its block device.
func Open(path string) (*Image, error) {
	data, f, cleanup, err := mmfile.MapRW(path)
	if err != nil {
		return nil, err
	}

	img := &Image{
		path:    path,
		data:    data,
		f:       f,
		cleanup: cleanup,
		tracker: dirty.NewTracker(),
	}
	if err := img.attach(); err != nil {
		cleanup()
		return nil, err
	}
	return img, nil
}

// OpenRead maps an existing image read-only, for inspection commands.
// Writing through the device of a read-only image faults; don't.
func OpenRead(path string) (*Image, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}

	img := &Image{
		path:    path,
		data:    data,
		cleanup: cleanup,
		ro:      true,
	}
	if err := img.attach(); err != nil {
		cleanup()
		return nil, err
	}
	return img, nil
}

func (img *Image) attach() error {
	dev, err := ramdisk.FromBytes(img.data)
	if err != nil {
		return err
	}
	if img.tracker != nil {
		dev.SetTracker(img.tracker)
	}
	img.dev = dev
	return nil
}

// Device returns the block device view over the mapping.
func (img *Image) Device() *ramdisk.Device { return img.dev }

// Bytes exposes the raw mapped contents.
func (img *Image) Bytes() []byte { return img.data }

// Size reports the image length in bytes.
func (img *Image) Size() int64 { return int64(len(img.data)) }

// Path reports the backing file's path.
func (img *Image) Path() string { return img.path }

// ReadOnly reports whether the image was opened with OpenRead.
func (img *Image) ReadOnly() bool { return img.ro }

// Dirty reports how many write ranges are waiting for a flush.
func (img *Image) Dirty() int {
	if img.tracker == nil {
		return 0
	}
	return img.tracker.Pending()
}

// Flush makes all pending writes durable: dirty data pages first, then
// the metadata page and the descriptor according to mode.
func (img *Image) Flush(ctx context.Context, mode dirty.FlushMode) error {
	if img.closed {
		return ErrClosed
	}
	if img.ro {
		return ErrReadOnly
	}

	if img.f == nil {
		// Heap-buffer fallback: nothing is mapped, rewrite the file.
		if err := ctx.Err(); err != nil {
			return err
		}
		img.tracker.Reset()
		return os.WriteFile(img.path, img.data, 0o644)
	}

	if err := img.tracker.FlushData(ctx, img.data); err != nil {
		return err
	}
	return img.tracker.FlushMeta(ctx, img.data, int(img.f.Fd()), mode)
}

// Close flushes pending writes, releases the mapping and the descriptor.
// Calling Close again is a no-op.
func (img *Image) Close() error {
	if img.closed {
		return nil
	}

	var flushErr error
	if !img.ro {
		flushErr = img.Flush(context.Background(), dirty.FlushAuto)
	}
	img.closed = true

	err := img.cleanup()
	if flushErr != nil {
		return flushErr
	}
	return err
}
