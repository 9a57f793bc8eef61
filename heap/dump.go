package heap

import (
	"fmt"
	"io"
)

// DumpState writes a human-readable picture of the free list to w. The
// layout follows the kernel's serial-console dump so transcripts stay
// comparable across ports.
func (h *Heap) DumpState(w io.Writer) {
	if h.head == noBlock {
		fmt.Fprintln(w, "========== ALLOCATOR DUMP ==========")
		fmt.Fprintln(w, "No more free memory :(")
		fmt.Fprintln(w, "====================================")
		return
	}

	fmt.Fprintln(w, "========== ALLOCATOR DUMP ==========")
	fmt.Fprintf(w, "Allocator starting at %#x\n", h.head)

	i := 0
	var total uint64
	h.walkFree(func(b FreeBlockInfo) bool {
		next := "none"
		if hd := readHeader(h.data, b.Offset); hd.next != noBlock {
			next = fmt.Sprintf("%#x", hd.next)
		}
		fmt.Fprintf(w, "  Block %d at=%#x size=%d next=%s\n", i, b.Offset, b.Size, next)
		total += b.Size
		i++
		return true
	})

	fmt.Fprintf(w, "Total free memory: %d bytes\n", total)
	fmt.Fprintln(w, "====================================")
}
