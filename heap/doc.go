// Package heap implements the kernel's free-list allocator over a fixed
// byte region.
//
// # Overview
//
// The allocator manages one pre-reserved span of memory, handed over exactly
// once at bootstrap. Free space is kept as a singly-linked list of free
// blocks ordered by ascending address; each free block stores its own
// metadata in a 16-byte header written at the start of the span it covers.
// Allocated blocks carry no metadata at all: the caller owns every byte it
// was granted and must hand the same size and alignment back when freeing.
//
// # Free Block Header
//
// Little-endian, written in place at the first bytes of every free span:
//
//	off 0  u64  size   usable bytes following the header
//	off 8  u64  next   offset of the next free block, or none
//
// The header footprint (16 bytes) doubles as the minimum alignment, so every
// request and every split remainder stays 16-granular. A remainder too small
// to carry a header of its own therefore cannot arise.
//
// # Allocation Strategy
//
//   - First fit: the walk returns the first block, in address order, that
//     can hold the aligned request. No attempt is made to combine disjoint
//     free blocks; fragmentation is a visible outcome.
//   - Split: the unused gap before and tail after the granted span stay on
//     the list as smaller free blocks. An exact fit consumes the whole
//     block and unlinks it.
//   - Coalesce: deallocation merges the freed span with its address
//     neighbors immediately, so contiguous free space always collapses to a
//     single block.
//
// # Interrupt Safety
//
// Heap itself performs no masking and is not reentrant. KernelHeap wraps it
// for use as the process-wide allocator: every call is bracketed by
// irq.Source Disable/Restore so a trap handler that allocates can never
// observe a half-rewritten list. See the irq subpackage.
//
// # Usage Example
//
//	region := make([]byte, 1<<20)
//	k := heap.NewKernelHeap(irq.Noop{})
//	if err := k.Init(region); err != nil {
//	    return err
//	}
//
//	ref, buf, err := k.Allocate(256, 16)
//	if err != nil {
//	    return err // heap.ErrOutOfMemory when no block fits
//	}
//	copy(buf, payload)
//
//	// Later, with the exact same size and alignment:
//	err = k.Deallocate(ref, 256, 16)
package heap
