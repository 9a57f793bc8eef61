package heap

import (
	"io"

	"github.com/lemonshark/sharkkit/heap/irq"
)

// KernelHeap is the process-wide allocator facade. It owns a Heap handed
// over once via Init and brackets every operation in an interrupt-masked
// critical section, so an allocation in a trap handler cannot interleave
// with one already in flight underneath it.
type KernelHeap struct {
	src  irq.Source
	heap *Heap
}

// NewKernelHeap returns a facade masking interrupts through src. A nil src
// means no masking, which is only safe when nothing allocates from trap
// context.
func NewKernelHeap(src irq.Source) *KernelHeap {
	if src == nil {
		src = irq.Noop{}
	}
	return &KernelHeap{src: src}
}

// Init hands the region to the allocator. It succeeds exactly once; the
// kernel's heap span is carved out of the memory map at boot and never
// grows or moves after that.
func (k *KernelHeap) Init(region []byte) error {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap != nil {
		return ErrAlreadyInitialized
	}
	h, err := New(region)
	if err != nil {
		return err
	}
	k.heap = h
	return nil
}

// Allocate grants a block under interrupt masking. See Heap.Allocate.
func (k *KernelHeap) Allocate(size, align uint64) (Ref, []byte, error) {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return 0, nil, ErrNotInitialized
	}
	return k.heap.Allocate(size, align)
}

// Deallocate returns a block under interrupt masking. See Heap.Deallocate.
func (k *KernelHeap) Deallocate(ref Ref, size, align uint64) error {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return ErrNotInitialized
	}
	return k.heap.Deallocate(ref, size, align)
}

// FreeBytes reports total free usable bytes, or zero before Init.
func (k *KernelHeap) FreeBytes() uint64 {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return 0
	}
	return k.heap.FreeBytes()
}

// FreeBlocks reports the free list length, or zero before Init.
func (k *KernelHeap) FreeBlocks() int {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return 0
	}
	return k.heap.FreeBlocks()
}

// LargestFree reports the largest single free block, or zero before Init.
func (k *KernelHeap) LargestFree() uint64 {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return 0
	}
	return k.heap.LargestFree()
}

// Stats returns the allocator counters, or a zero snapshot before Init.
func (k *KernelHeap) Stats() Stats {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return Stats{}
	}
	return k.heap.Stats()
}

// Validate checks free-list invariants under interrupt masking.
func (k *KernelHeap) Validate() error {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return ErrNotInitialized
	}
	return k.heap.Validate()
}

// DumpState writes the free-list dump to w. The write itself happens inside
// the critical section so the picture is consistent; keep w cheap.
func (k *KernelHeap) DumpState(w io.Writer) {
	flags := k.src.Disable()
	defer k.src.Restore(flags)

	if k.heap == nil {
		return
	}
	k.heap.DumpState(w)
}
