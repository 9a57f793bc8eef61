package heap

import (
	"fmt"
	"os"
)

// debugHeap enables free-list trace logging at compile time. Flip it during
// allocator work; ship with false.
const debugHeap = false

// logHeap enables the same tracing at run time.
var logHeap = os.Getenv("SHARK_LOG_HEAP") != ""

func heapLogf(format string, args ...any) {
	if debugHeap || logHeap {
		fmt.Fprintf(os.Stderr, "[heap] "+format+"\n", args...)
	}
}

// setNext repoints the link that leads to a block: the list head when prev
// is noBlock, otherwise prev's next field.
func (h *Heap) setNext(prev, next uint64) {
	if prev == noBlock {
		h.head = next
		return
	}
	ph := readHeader(h.data, prev)
	ph.next = next
	writeHeader(h.data, prev, ph)
}

// allocateSpan finds the first free block, in address order, that can hold
// span bytes starting at an al-aligned offset, carves the span out, and
// returns its offset. Both span and al are already normalized.
func (h *Heap) allocateSpan(span, al uint64) (uint64, bool) {
	prev := noBlock
	cur := h.head
	for cur != noBlock {
		hd := readHeader(h.data, cur)
		end := cur + hd.span()
		p := alignUp(cur, al)
		// p < cur only when alignUp wrapped around.
		if p >= cur && p < end && end-p >= span {
			h.carve(prev, cur, p, span, hd)
			return p, true
		}
		prev = cur
		cur = hd.next
	}
	return 0, false
}

// carve removes [p, p+span) from the free block at cur. The gap before p
// (when p was pushed right by alignment) stays behind as a shrunk block at
// cur; the tail after the span becomes a new block. When both are empty the
// whole block is consumed and unlinked. Gap and tail are multiples of
// HeaderSize because every offset involved is, so a fragment too small for
// its own header cannot appear.
func (h *Heap) carve(prev, cur, p, span uint64, hd header) {
	end := cur + hd.span()
	gap := p - cur
	tail := end - (p + span)
	next := hd.next

	if tail > 0 {
		writeHeader(h.data, p+span, header{size: tail - HeaderSize, next: next})
		next = p + span
	}
	if gap > 0 {
		writeHeader(h.data, cur, header{size: gap - HeaderSize, next: next})
	} else {
		h.setNext(prev, next)
	}
	if gap > 0 || tail > 0 {
		h.stats.Splits++
	}
}

// deallocateSpan returns [off, off+span) to the free list at its
// address-ordered position, merging with the left and right neighbors when
// they touch. The list never holds two adjacent free blocks.
func (h *Heap) deallocateSpan(off, span uint64) {
	prev := noBlock
	cur := h.head
	for cur != noBlock && cur < off {
		prev = cur
		cur = readHeader(h.data, cur).next
	}

	if prev != noBlock {
		ph := readHeader(h.data, prev)
		if prev+ph.span() == off {
			// Left neighbor touches: grow it over the freed span.
			ph.size += span
			h.stats.CoalesceBackward++
			if cur != noBlock && prev+ph.span() == cur {
				ch := readHeader(h.data, cur)
				ph.size += ch.span()
				ph.next = ch.next
				h.stats.CoalesceForward++
			}
			writeHeader(h.data, prev, ph)
			return
		}
	}

	nh := header{size: span - HeaderSize, next: cur}
	if cur != noBlock && off+span == cur {
		// Right neighbor touches: absorb it into the freed block.
		ch := readHeader(h.data, cur)
		nh.size += ch.span()
		nh.next = ch.next
		h.stats.CoalesceForward++
	}
	writeHeader(h.data, off, nh)
	h.setNext(prev, off)
}

// walkFree visits every free block in list order. fn returning false stops
// the walk.
func (h *Heap) walkFree(fn func(FreeBlockInfo) bool) {
	cur := h.head
	for cur != noBlock {
		hd := readHeader(h.data, cur)
		if !fn(FreeBlockInfo{Offset: cur, Size: hd.size}) {
			return
		}
		cur = hd.next
	}
}

// FreeBytes reports the total usable bytes across all free blocks. Header
// bytes are not counted, so a fully free region reports its length minus
// one header.
func (h *Heap) FreeBytes() uint64 {
	var total uint64
	h.walkFree(func(b FreeBlockInfo) bool {
		total += b.Size
		return true
	})
	return total
}

// FreeBlocks reports the number of blocks on the free list.
func (h *Heap) FreeBlocks() int {
	n := 0
	h.walkFree(func(FreeBlockInfo) bool {
		n++
		return true
	})
	return n
}

// LargestFree reports the usable size of the largest free block, the
// number that matters when FreeBytes looks healthy but allocations fail.
func (h *Heap) LargestFree() uint64 {
	var max uint64
	h.walkFree(func(b FreeBlockInfo) bool {
		if b.Size > max {
			max = b.Size
		}
		return true
	})
	return max
}

// Validate walks the free list and checks its structural invariants:
// blocks in strictly ascending address order, every block in bounds and
// header-granular, and no two blocks adjacent.
func (h *Heap) Validate() error {
	limit := uint64(len(h.data))
	prevEnd := uint64(0)
	first := true
	cur := h.head
	for cur != noBlock {
		if cur%HeaderSize != 0 {
			return fmt.Errorf("heap: free block at %#x not header-granular", cur)
		}
		hd := readHeader(h.data, cur)
		if hd.size%HeaderSize != 0 {
			return fmt.Errorf("heap: free block at %#x has ragged size %d", cur, hd.size)
		}
		end := cur + hd.span()
		if end < cur || end > limit {
			return fmt.Errorf("heap: free block at %#x (span %d) exceeds region", cur, hd.span())
		}
		if !first {
			if cur < prevEnd {
				return fmt.Errorf("heap: free list out of order at %#x", cur)
			}
			if cur == prevEnd {
				return fmt.Errorf("heap: adjacent free blocks not coalesced at %#x", cur)
			}
		}
		first = false
		prevEnd = end
		cur = hd.next
	}
	return nil
}
