package heap

import "errors"

var (
	// ErrOutOfMemory is returned when no free block can satisfy a request
	// at its alignment. The heap may still hold enough total free bytes;
	// first-fit does not compact.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrRegionTooSmall is returned by New when the region cannot hold a
	// header plus one granule of usable space.
	ErrRegionTooSmall = errors.New("heap: region too small")

	// ErrRegionMisaligned is returned by New when the region length is not
	// a multiple of the allocator granularity.
	ErrRegionMisaligned = errors.New("heap: region length not 16-byte granular")

	// ErrBadAlignment is returned when a requested alignment is not a
	// power of two.
	ErrBadAlignment = errors.New("heap: alignment not a power of two")

	// ErrOutOfRange is returned by Deallocate when the reference or its
	// reconstructed span falls outside the managed region.
	ErrOutOfRange = errors.New("heap: reference out of range")

	// ErrAlreadyInitialized is returned by KernelHeap.Init on the second
	// and later calls. The kernel hands over its region exactly once.
	ErrAlreadyInitialized = errors.New("heap: already initialized")

	// ErrNotInitialized is returned by KernelHeap operations before Init.
	ErrNotInitialized = errors.New("heap: not initialized")
)
