// Package dirty tracks which byte ranges of a mapped volume image have
// been written, so a flush syncs only the touched pages instead of the
// whole file.
//
// The tracker records raw ranges as the block device reports them,
// coalesces them into page-aligned runs at flush time, and pushes them out
// with platform syncs (msync on Unix, FlushViewOfFile on Windows). The
// metadata page at offset zero is held back from data flushes and synced
// last, after the blocks it references are durable.
package dirty

import (
	"context"
	"sort"

	"github.com/lemonshark/sharkkit/ramfs/ramdisk"
)

const (
	// defaultRangeCapacity pre-sizes the range slice so steady-state
	// recording does not allocate.
	defaultRangeCapacity = 64

	standardPageSize = 4096
)

// FlushMode controls how durable a flush is.
type FlushMode int

const (
	// FlushAuto syncs dirty pages and the file descriptor. The right
	// choice for almost every caller.
	FlushAuto FlushMode = iota

	// FlushDataOnly syncs dirty pages but skips the descriptor sync.
	// Use it when batching several flushes before one fdatasync.
	FlushDataOnly

	// FlushFull additionally forces the write through the drive cache
	// where the platform supports it (F_FULLFSYNC on macOS).
	FlushFull
)

// Range is a dirty byte run in absolute file offsets.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges for one mapped image.
//
// Not goroutine safe; the owning Image serializes access.
type Tracker struct {
	ranges   []Range
	pageSize int64
}

var _ ramdisk.Tracker = (*Tracker)(nil)

func NewTracker() *Tracker {
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// MarkDirty records [start, end) as written. The block device calls this
// on every write, so it only appends; alignment and merging wait until
// flush time.
func (t *Tracker) MarkDirty(start, end uint64) {
	if end <= start {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(start), Len: int64(end - start)})
}

// Pending reports how many raw ranges are waiting for a flush.
func (t *Tracker) Pending() int { return len(t.ranges) }

// Ranges returns the page-aligned, sorted, merged view of the pending
// ranges without clearing them.
func (t *Tracker) Ranges() []Range { return t.coalesce() }

// Reset drops all pending ranges, for example when the caller rewrote the
// whole file anyway.
func (t *Tracker) Reset() { t.ranges = t.ranges[:0] }

// FlushData syncs every dirty page of data except the metadata page at
// offset zero, then clears the pending ranges. data must be the mapped
// buffer the ranges were recorded against.
func (t *Tracker) FlushData(ctx context.Context, data []byte) error {
	if len(t.ranges) == 0 || len(data) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.flushRanges(data); err != nil {
		return err
	}
	t.ranges = t.ranges[:0]
	return nil
}

// FlushMeta syncs the first page, which holds the superblock and
// allocation bitmap, and then the file descriptor according to mode.
// Call it after FlushData so the metadata never lands before the blocks
// it points at.
func (t *Tracker) FlushMeta(ctx context.Context, data []byte, fd int, mode FlushMode) error {
	if len(data) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n := int(t.pageSize)
	if n > len(data) {
		n = len(data)
	}
	if err := msync(data[:n]); err != nil {
		return err
	}

	if mode == FlushDataOnly {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fdatasync(fd, mode == FlushFull)
}

// coalesce page-aligns all pending ranges, sorts them, and merges
// overlapping or adjacent runs.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = (end/t.pageSize + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	return append(merged, current)
}
