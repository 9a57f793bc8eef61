package heap

// Ref is a stable reference to an allocated block: the byte offset of the
// block's first usable byte from the start of the managed region. A Ref
// remains valid until the block is deallocated; the allocator never moves
// live blocks.
type Ref = uint64

const (
	// HeaderSize is the size of the in-place free block header. It is also
	// the granularity of the allocator: every granted span and every free
	// block span is a multiple of HeaderSize.
	HeaderSize = 16

	// MinAlign is the smallest alignment the allocator grants. Requests
	// with a smaller (or zero) alignment are rounded up to MinAlign.
	MinAlign = 16

	// MinRegion is the smallest region New accepts: one header plus one
	// granule of usable space.
	MinRegion = 32
)

// noBlock terminates the free list. It is an offset no real block can
// occupy.
const noBlock = ^uint64(0)

// Stats is a point-in-time snapshot of allocator counters. Counters are
// monotonic except LiveBytes and LiveBlocks, which track the current
// outstanding set.
type Stats struct {
	// AllocCalls counts Allocate calls that returned a block.
	AllocCalls uint64
	// FreeCalls counts Deallocate calls.
	FreeCalls uint64
	// FailedAllocs counts Allocate calls refused for lack of space.
	FailedAllocs uint64

	// BytesAllocated is the total span bytes ever granted; BytesFreed is
	// the total span bytes ever returned.
	BytesAllocated uint64
	BytesFreed     uint64

	// LiveBytes and LiveBlocks describe allocations not yet freed.
	// LiveBytes counts span bytes, so LiveBytes+FreeBytes()+header
	// overhead of the free list always equals the region size.
	LiveBytes  uint64
	LiveBlocks uint64

	// Splits counts allocations that carved a larger free block.
	// CoalesceForward and CoalesceBackward count merges performed during
	// deallocation, one per absorbed neighbor.
	Splits           uint64
	CoalesceForward  uint64
	CoalesceBackward uint64
}

// FreeBlockInfo describes one free block as seen by a list walk. Offset is
// the header position; Size is the usable bytes after the header, so the
// block covers [Offset, Offset+HeaderSize+Size).
type FreeBlockInfo struct {
	Offset uint64
	Size   uint64
}
