// Package ramfs implements the kernel's block filesystem over a ramdisk
// device.
//
// # On-Disk Layout
//
// The device is split into 512-byte blocks:
//
//	block 0       superblock + block allocation bitmap
//	blocks 1-10   inode table, 7 inodes per block
//	blocks 11-    data blocks (file content and directory entries)
//
// The superblock records the geometry and the free block count; the bitmap
// that follows it owns one bit per block, with the reserved metadata blocks
// marked used at format time. Inodes are fixed 72-byte records: a 32-bit
// size, sixteen 32-bit block pointers, and a flag byte. A file therefore
// tops out at 16 blocks (8 KiB). Inode 0 is always the root directory.
//
// Directories are files whose blocks hold fixed 28-byte entries: a 24-byte
// Windows-1252 name field, NUL-padded, and a 32-bit inode number. Entries
// never straddle a block boundary; each block holds 18 of them. Every
// directory starts with "." and ".." entries.
//
// # Usage
//
// A filesystem is either freshly formatted or mounted from an existing
// image:
//
//	dev, _ := ramdisk.New(1 << 20)
//	fs, err := ramfs.Format(dev)
//	...
//	ino, err := fs.CreateFile("/notes.txt")
//	_, err = fs.Append(ino, []byte("hello"))
//
// FS methods are not safe for concurrent use; callers that share a
// filesystem across goroutines serialize around it (pkg/sharkfs does).
package ramfs
