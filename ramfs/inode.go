package ramfs

import "github.com/lemonshark/sharkkit/internal/buf"

// Inode flag bits. The pad bytes after the flag are written as zero and
// ignored on read.
const (
	flagDirectory = 1 << 0
	flagUsed      = 1 << 1
)

// inode is the decoded 72-byte table record. Block pointers are absolute
// block indexes; unused slots hold zero, which can never be a data block.
type inode struct {
	size   uint32
	blocks [MaxFileBlocks]uint32
	flags  byte
}

func inodeFromBytes(b []byte) inode {
	var in inode
	in.size = buf.U32LE(b)
	for i := range in.blocks {
		in.blocks[i] = buf.U32LE(b[4+i*4:])
	}
	in.flags = b[68]
	return in
}

func (in *inode) writeTo(b []byte) {
	buf.PutU32LE(b, in.size)
	for i, blk := range in.blocks {
		buf.PutU32LE(b[4+i*4:], blk)
	}
	b[68] = in.flags
	b[69], b[70], b[71] = 0, 0, 0
}

func (in *inode) used() bool { return in.flags&flagUsed != 0 }

func (in *inode) dir() bool { return in.flags&flagDirectory != 0 }

// blockCount reports how many pointer slots are populated. Blocks are
// always filled front to back.
func (in *inode) blockCount() int {
	n := 0
	for _, blk := range in.blocks {
		if blk == 0 {
			break
		}
		n++
	}
	return n
}
