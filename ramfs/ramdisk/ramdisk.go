// Package ramdisk provides the block device the filesystem runs on: a flat
// byte buffer addressed in fixed 512-byte blocks.
//
// The buffer can be an in-memory slice (the kernel's static ramdisk) or a
// memory-mapped image file; the filesystem above never knows the
// difference. Reads and writes move whole blocks only.
package ramdisk

import "errors"

// BlockSize is the fixed transfer unit of the device.
const BlockSize = 512

var (
	// ErrBufferSize is returned when a read or write buffer is not
	// exactly one block long.
	ErrBufferSize = errors.New("ramdisk: buffer must be one block")

	// ErrOutOfRange is returned for a block index past the device end.
	ErrOutOfRange = errors.New("ramdisk: block index out of range")

	// ErrDeviceSize is returned by New and FromBytes when the backing
	// length is zero or not block-granular.
	ErrDeviceSize = errors.New("ramdisk: size must be a positive multiple of the block size")
)

// Tracker receives the byte ranges a write touched. The image dirty
// tracker plugs in here so flushes only sync written blocks.
type Tracker interface {
	MarkDirty(start, end uint64)
}

// Device is a block view over one byte buffer.
type Device struct {
	data    []byte
	tracker Tracker
}

// New allocates a zeroed in-memory device of size bytes.
func New(size int) (*Device, error) {
	if size <= 0 || size%BlockSize != 0 {
		return nil, ErrDeviceSize
	}
	return &Device{data: make([]byte, size)}, nil
}

// FromBytes wraps an existing buffer, typically a mapped image file. The
// device aliases data; writes land in the caller's buffer.
func FromBytes(data []byte) (*Device, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrDeviceSize
	}
	return &Device{data: data}, nil
}

// SetTracker registers t to observe written ranges. Pass nil to detach.
func (d *Device) SetTracker(t Tracker) { d.tracker = t }

// TotalBlocks reports the device capacity in blocks.
func (d *Device) TotalBlocks() int { return len(d.data) / BlockSize }

// Size reports the device capacity in bytes.
func (d *Device) Size() int { return len(d.data) }

// Bytes exposes the raw backing buffer. Callers must go through
// ReadBlock/WriteBlock for filesystem data; this exists for dumps and
// integrity scans.
func (d *Device) Bytes() []byte { return d.data }

// ReadBlock copies block idx into buf. buf must be exactly one block.
func (d *Device) ReadBlock(idx uint32, buf []byte) error {
	if len(buf) != BlockSize {
		return ErrBufferSize
	}
	start := int(idx) * BlockSize
	if start+BlockSize > len(d.data) {
		return ErrOutOfRange
	}
	copy(buf, d.data[start:start+BlockSize])
	return nil
}

// WriteBlock copies data into block idx. data must be exactly one block.
func (d *Device) WriteBlock(idx uint32, data []byte) error {
	if len(data) != BlockSize {
		return ErrBufferSize
	}
	start := int(idx) * BlockSize
	if start+BlockSize > len(d.data) {
		return ErrOutOfRange
	}
	copy(d.data[start:], data)
	if d.tracker != nil {
		d.tracker.MarkDirty(uint64(start), uint64(start+BlockSize))
	}
	return nil
}

// Zero clears the whole device and reports the full range dirty.
func (d *Device) Zero() {
	for i := range d.data {
		d.data[i] = 0
	}
	if d.tracker != nil {
		d.tracker.MarkDirty(0, uint64(len(d.data)))
	}
}
