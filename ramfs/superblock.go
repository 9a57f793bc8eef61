package ramfs

import "github.com/lemonshark/sharkkit/internal/buf"

// superBlock is the decoded form of block 0's fixed header. All fields are
// little-endian 32-bit on disk.
type superBlock struct {
	magic       uint32
	blockSize   uint32
	totalBlocks uint32

	inodeTableStart  uint32
	inodeTableBlocks uint32

	dataStart uint32

	// freeBlocks counts unallocated blocks, kept in step with the bitmap
	// on every allocation and release.
	freeBlocks uint32
}

func superBlockFromBytes(b []byte) superBlock {
	return superBlock{
		magic:            buf.U32LE(b[sbMagicOff:]),
		blockSize:        buf.U32LE(b[sbBlockSizeOff:]),
		totalBlocks:      buf.U32LE(b[sbTotalBlocksOff:]),
		inodeTableStart:  buf.U32LE(b[sbTableStartOff:]),
		inodeTableBlocks: buf.U32LE(b[sbTableBlocksOff:]),
		dataStart:        buf.U32LE(b[sbDataStartOff:]),
		freeBlocks:       buf.U32LE(b[sbFreeBlocksOff:]),
	}
}

func (sb *superBlock) writeTo(b []byte) {
	buf.PutU32LE(b[sbMagicOff:], sb.magic)
	buf.PutU32LE(b[sbBlockSizeOff:], sb.blockSize)
	buf.PutU32LE(b[sbTotalBlocksOff:], sb.totalBlocks)
	buf.PutU32LE(b[sbTableStartOff:], sb.inodeTableStart)
	buf.PutU32LE(b[sbTableBlocksOff:], sb.inodeTableBlocks)
	buf.PutU32LE(b[sbDataStartOff:], sb.dataStart)
	buf.PutU32LE(b[sbFreeBlocksOff:], sb.freeBlocks)
}

// geometryOK verifies the superblock describes this exact format revision
// on a device of the given block count.
func (sb *superBlock) geometryOK(deviceBlocks uint32) bool {
	return sb.magic == Magic &&
		sb.blockSize == BlockSize &&
		sb.totalBlocks == deviceBlocks &&
		sb.inodeTableStart == InodeTableStart &&
		sb.inodeTableBlocks == InodeTableBlocks &&
		sb.dataStart == DataStart
}
