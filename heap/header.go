package heap

import "github.com/lemonshark/sharkkit/internal/buf"

// header is the decoded form of a free block's in-place metadata.
type header struct {
	size uint64 // usable bytes after the header
	next uint64 // offset of the next free block, or noBlock
}

// span is the total bytes the block covers, header included.
func (h header) span() uint64 { return HeaderSize + h.size }

func readHeader(data []byte, off uint64) header {
	return header{
		size: buf.U64LE(data[off:]),
		next: buf.U64LE(data[off+8:]),
	}
}

func writeHeader(data []byte, off uint64, h header) {
	buf.PutU64LE(data[off:], h.size)
	buf.PutU64LE(data[off+8:], h.next)
}
