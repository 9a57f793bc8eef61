package heap

// Allocator is the surface shared by the raw Heap and the interrupt-safe
// KernelHeap facade. Callers that only allocate and free can accept either.
type Allocator interface {
	// Allocate grants a block of at least size bytes whose first byte is
	// aligned to align. It returns the block's offset reference and the
	// usable byte window. align must be a power of two; zero means
	// MinAlign.
	Allocate(size uint64, align uint64) (Ref, []byte, error)

	// Deallocate returns a block obtained from Allocate. size and align
	// must match the original call exactly; the allocator keeps no
	// per-block record and reconstructs the span from them.
	Deallocate(ref Ref, size uint64, align uint64) error

	// FreeBytes reports the total usable bytes across all free blocks.
	FreeBytes() uint64

	// FreeBlocks reports the number of blocks on the free list.
	FreeBlocks() int

	// Stats returns a snapshot of the allocator counters.
	Stats() Stats
}

var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*KernelHeap)(nil)
)
