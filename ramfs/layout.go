package ramfs

import "github.com/lemonshark/sharkkit/ramfs/ramdisk"

// Geometry constants. These are fixed by the on-disk format; changing any
// of them breaks every existing image.
const (
	// BlockSize is the filesystem block size, identical to the device's.
	BlockSize = ramdisk.BlockSize

	// Magic identifies a formatted volume, "SHRK" packed big-end first.
	Magic = 0x5348524B

	// InodeTableStart and InodeTableBlocks place the inode table right
	// after the superblock.
	InodeTableStart  = 1
	InodeTableBlocks = 10

	// DataStart is the first data block index.
	DataStart = InodeTableStart + InodeTableBlocks

	// InodeSize is the on-disk inode record size: 4 size bytes, 16 block
	// pointers, one flag byte, padded to 4-byte alignment.
	InodeSize      = 72
	InodesPerBlock = BlockSize / InodeSize
	MaxInodes      = InodeTableBlocks * InodesPerBlock

	// RootInode is the fixed inode of the root directory.
	RootInode = 0

	// MaxFileBlocks caps a file at the inode's inline block pointers.
	MaxFileBlocks = 16
	MaxFileSize   = MaxFileBlocks * BlockSize

	// DirEntrySize is the fixed directory record: 24 name bytes plus a
	// 32-bit inode number. Records never straddle blocks.
	DirEntrySize    = 28
	EntriesPerBlock = BlockSize / DirEntrySize
	MaxDirEntries   = MaxFileBlocks * EntriesPerBlock

	// MaxNameLen is the longest encoded name a directory entry holds.
	MaxNameLen = 24
)

// Superblock byte layout inside block 0. The bitmap words follow at
// bitmapOffset and fill the rest of the block.
const (
	sbMagicOff       = 0
	sbBlockSizeOff   = 4
	sbTotalBlocksOff = 8
	sbTableStartOff  = 12
	sbTableBlocksOff = 16
	sbDataStartOff   = 20
	sbFreeBlocksOff  = 24
	superBlockSize   = 28

	bitmapOffset = 32
	bitmapWords  = (BlockSize - bitmapOffset) / 4

	// MaxBlocks is the largest device the block-0 bitmap can govern.
	MaxBlocks = bitmapWords * 32

	// MinBlocks is the smallest formattable device: metadata plus the
	// root directory's data block.
	MinBlocks = DataStart + 1
)
