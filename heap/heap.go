package heap

// Heap is the raw free-list allocator over one caller-owned byte region.
// It performs no locking and no interrupt masking; wrap it in KernelHeap
// when trap handlers may allocate. The zero value is not usable, construct
// with New.
type Heap struct {
	data  []byte
	head  uint64
	stats Stats
}

// New takes ownership of region and initializes it as a single free block
// spanning the whole length. The region must hold at least MinRegion bytes
// and be a multiple of HeaderSize long; New fails rather than silently
// shrinking what it was given.
func New(region []byte) (*Heap, error) {
	if len(region) < MinRegion {
		return nil, ErrRegionTooSmall
	}
	if len(region)%HeaderSize != 0 {
		return nil, ErrRegionMisaligned
	}
	h := &Heap{data: region, head: 0}
	writeHeader(region, 0, header{
		size: uint64(len(region)) - HeaderSize,
		next: noBlock,
	})
	return h, nil
}

// Allocate grants a block of at least size bytes starting at an align-ed
// offset. Size zero is treated as one byte; align zero as MinAlign. The
// returned slice is the usable window into the region, capped at the
// granted span so the caller cannot grow it over a neighbor.
func (h *Heap) Allocate(size, align uint64) (Ref, []byte, error) {
	span, al, err := normalizeRequest(size, align)
	if err != nil {
		return 0, nil, err
	}
	if span < size {
		// Rounding wrapped past the top of the address space; nothing
		// can ever serve this.
		h.stats.FailedAllocs++
		return 0, nil, ErrOutOfMemory
	}
	off, ok := h.allocateSpan(span, al)
	if !ok {
		h.stats.FailedAllocs++
		heapLogf("alloc size=%d align=%d -> out of memory", size, align)
		return 0, nil, ErrOutOfMemory
	}
	h.stats.AllocCalls++
	h.stats.BytesAllocated += span
	h.stats.LiveBytes += span
	h.stats.LiveBlocks++
	heapLogf("alloc size=%d align=%d -> off=%#x span=%d", size, align, off, span)

	usable := size
	if usable == 0 {
		usable = 1
	}
	return off, h.data[off : off+usable : off+span], nil
}

// Deallocate returns the block at ref to the free list. size and align must
// repeat the Allocate call exactly: the allocator stores nothing per live
// block and reconstructs the span from them. Freeing a block twice or with
// the wrong size corrupts the list; only violations detectable from ref
// alone are refused.
func (h *Heap) Deallocate(ref Ref, size, align uint64) error {
	span, _, err := normalizeRequest(size, align)
	if err != nil {
		return err
	}
	if span < size || ref%HeaderSize != 0 || ref+span < ref || ref+span > uint64(len(h.data)) {
		return ErrOutOfRange
	}
	h.deallocateSpan(ref, span)
	h.stats.FreeCalls++
	h.stats.BytesFreed += span
	h.stats.LiveBytes -= span
	h.stats.LiveBlocks--
	heapLogf("free off=%#x size=%d align=%d span=%d", ref, size, align, span)
	return nil
}

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() Stats { return h.stats }

// Size reports the length of the managed region in bytes.
func (h *Heap) Size() uint64 { return uint64(len(h.data)) }
