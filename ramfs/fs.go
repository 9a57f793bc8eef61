package ramfs

import (
	"strings"

	"github.com/lemonshark/sharkkit/internal/buf"
	"github.com/lemonshark/sharkkit/ramfs/ramdisk"
)

// FS is a mounted filesystem over one block device. The superblock and
// bitmap are cached in memory and written back on every mutating
// operation, so the on-disk image is consistent after each public call.
type FS struct {
	dev *ramdisk.Device
	sb  superBlock
	bm  bitmap
}

// Stat describes one inode.
type Stat struct {
	Ino    uint32
	Size   uint32
	Dir    bool
	Blocks []uint32
}

// Info describes the mounted volume.
type Info struct {
	BlockSize   uint32
	TotalBlocks uint32
	FreeBlocks  uint32
	DataStart   uint32
	Inodes      uint32
	UsedInodes  uint32
	MaxFileSize uint32
}

// Format zeroes the device, writes a fresh superblock, bitmap and inode
// table, creates the root directory with its "." and ".." entries, and
// returns the mounted filesystem.
func Format(dev *ramdisk.Device) (*FS, error) {
	blocks := dev.TotalBlocks()
	if blocks < MinBlocks {
		return nil, ErrDeviceTooSmall
	}
	if blocks > MaxBlocks {
		return nil, ErrDeviceTooLarge
	}

	dev.Zero()

	fs := &FS{dev: dev}
	fs.sb = superBlock{
		magic:            Magic,
		blockSize:        BlockSize,
		totalBlocks:      uint32(blocks),
		inodeTableStart:  InodeTableStart,
		inodeTableBlocks: InodeTableBlocks,
		dataStart:        DataStart,
		freeBlocks:       uint32(blocks),
	}
	for i := uint32(0); i < DataStart; i++ {
		fs.bm.set(i)
		fs.sb.freeBlocks--
	}

	rootBlock, err := fs.allocBlock()
	if err != nil {
		return nil, err
	}

	var entries [BlockSize]byte
	dot, _ := encodeName(".")
	dotdot, _ := encodeName("..")
	(&dirEntry{name: dot, ino: RootInode}).writeTo(entries[0:])
	(&dirEntry{name: dotdot, ino: RootInode}).writeTo(entries[DirEntrySize:])
	if err := dev.WriteBlock(rootBlock, entries[:]); err != nil {
		return nil, err
	}

	root := inode{
		size:  2 * DirEntrySize,
		flags: flagUsed | flagDirectory,
	}
	root.blocks[0] = rootBlock
	if err := fs.writeInode(RootInode, &root); err != nil {
		return nil, err
	}

	if err := fs.writeMeta(); err != nil {
		return nil, err
	}
	fsLogf("format blocks=%d free=%d", blocks, fs.sb.freeBlocks)
	return fs, nil
}

// Mount reads the superblock and bitmap of an already formatted device.
func Mount(dev *ramdisk.Device) (*FS, error) {
	var b [BlockSize]byte
	if err := dev.ReadBlock(0, b[:]); err != nil {
		return nil, err
	}

	sb := superBlockFromBytes(b[:superBlockSize])
	if !sb.geometryOK(uint32(dev.TotalBlocks())) {
		return nil, ErrNotFormatted
	}

	fs := &FS{dev: dev, sb: sb}
	fs.bm = bitmapFromBytes(b[bitmapOffset : bitmapOffset+bitmapWords*4])
	fsLogf("mount blocks=%d free=%d", sb.totalBlocks, sb.freeBlocks)
	return fs, nil
}

// Reset reformats the device in place, discarding all content. Used by
// test runners and the interactive shell's reset command.
func (fs *FS) Reset() error {
	fresh, err := Format(fs.dev)
	if err != nil {
		return err
	}
	*fs = *fresh
	return nil
}

// Device returns the underlying block device.
func (fs *FS) Device() *ramdisk.Device { return fs.dev }

// Info reports volume geometry and usage.
func (fs *FS) Info() Info {
	used := uint32(0)
	for ino := uint32(0); ino < MaxInodes; ino++ {
		in, err := fs.readInode(ino)
		if err == nil && in.used() {
			used++
		}
	}
	return Info{
		BlockSize:   fs.sb.blockSize,
		TotalBlocks: fs.sb.totalBlocks,
		FreeBlocks:  fs.sb.freeBlocks,
		DataStart:   fs.sb.dataStart,
		Inodes:      MaxInodes,
		UsedInodes:  used,
		MaxFileSize: MaxFileSize,
	}
}

// FreeBlocks reports the unallocated block count.
func (fs *FS) FreeBlocks() uint32 { return fs.sb.freeBlocks }

// Lookup resolves an absolute path to an inode number.
func (fs *FS) Lookup(path string) (uint32, error) {
	parts, err := splitAbs(path)
	if err != nil {
		return 0, err
	}
	return fs.resolve(parts)
}

// Stat describes the inode behind a number.
func (fs *FS) Stat(ino uint32) (Stat, error) {
	in, err := fs.readInode(ino)
	if err != nil {
		return Stat{}, err
	}
	if !in.used() {
		return Stat{}, ErrBadInode
	}
	st := Stat{Ino: ino, Size: in.size, Dir: in.dir()}
	st.Blocks = append(st.Blocks, in.blocks[:in.blockCount()]...)
	return st, nil
}

// CreateFile creates an empty file at an absolute path whose parent
// directory already exists. Returns the new inode number.
func (fs *FS) CreateFile(path string) (uint32, error) {
	return fs.createEntry(path, false)
}

// Mkdir creates a directory at an absolute path whose parent already
// exists. The new directory starts with "." and ".." entries. Returns the
// new inode number.
func (fs *FS) Mkdir(path string) (uint32, error) {
	return fs.createEntry(path, true)
}

func (fs *FS) createEntry(path string, dir bool) (uint32, error) {
	parts, err := splitAbs(path)
	if err != nil {
		return 0, err
	}
	if len(parts) == 0 {
		// The root cannot be created.
		return 0, ErrBadPath
	}

	base := parts[len(parts)-1]
	field, err := encodeName(base)
	if err != nil {
		return 0, err
	}

	parentIno, err := fs.resolve(parts[:len(parts)-1])
	if err != nil {
		return 0, err
	}
	parent, err := fs.readInode(parentIno)
	if err != nil {
		return 0, err
	}
	if !parent.dir() {
		return 0, ErrNotADirectory
	}

	if _, found, err := fs.lookupEntry(&parent, field); err != nil {
		return 0, err
	} else if found {
		return 0, ErrDuplicateEntry
	}

	// Fail before touching disk: entry slot, parent growth, and for
	// directories one content block.
	count := parent.size / DirEntrySize
	if count >= MaxDirEntries {
		return 0, ErrDirectoryFull
	}
	need := uint32(0)
	if count%EntriesPerBlock == 0 {
		need++
	}
	if dir {
		need++
	}
	if need > fs.sb.freeBlocks {
		return 0, ErrDiskFull
	}

	ino, err := fs.allocInode()
	if err != nil {
		return 0, err
	}

	in := inode{flags: flagUsed}
	if dir {
		blk, err := fs.allocBlock()
		if err != nil {
			return 0, err
		}
		var entries [BlockSize]byte
		dot, _ := encodeName(".")
		dotdot, _ := encodeName("..")
		(&dirEntry{name: dot, ino: ino}).writeTo(entries[0:])
		(&dirEntry{name: dotdot, ino: parentIno}).writeTo(entries[DirEntrySize:])
		if err := fs.dev.WriteBlock(blk, entries[:]); err != nil {
			return 0, err
		}
		in.flags |= flagDirectory
		in.size = 2 * DirEntrySize
		in.blocks[0] = blk
	}
	if err := fs.writeInode(ino, &in); err != nil {
		return 0, err
	}

	if err := fs.addEntry(parentIno, &parent, dirEntry{name: field, ino: ino}); err != nil {
		return 0, err
	}
	if err := fs.writeMeta(); err != nil {
		return 0, err
	}
	fsLogf("create %s dir=%t -> ino=%d", path, dir, ino)
	return ino, nil
}

// Append writes data at the end of the file, allocating data blocks as
// needed. Either the whole write fits under the file's 16-block cap and
// the free block budget, or nothing is written. Returns the byte count
// appended.
func (fs *FS) Append(ino uint32, data []byte) (int, error) {
	in, err := fs.readInode(ino)
	if err != nil {
		return 0, err
	}
	if !in.used() {
		return 0, ErrBadInode
	}
	if in.dir() {
		return 0, ErrNotAFile
	}

	newSize := uint64(in.size) + uint64(len(data))
	if newSize > MaxFileSize {
		return 0, ErrNoSpaceInFile
	}
	need := blocksFor(uint32(newSize)) - blocksFor(in.size)
	if need > fs.sb.freeBlocks {
		return 0, ErrDiskFull
	}

	size := in.size
	remaining := data
	var b [BlockSize]byte
	for len(remaining) > 0 {
		slot := size / BlockSize
		off := size % BlockSize

		var blk uint32
		if off == 0 {
			blk, err = fs.allocBlock()
			if err != nil {
				return 0, err
			}
			in.blocks[slot] = blk
			for i := range b {
				b[i] = 0
			}
		} else {
			blk = in.blocks[slot]
			if err := fs.dev.ReadBlock(blk, b[:]); err != nil {
				return 0, err
			}
		}

		n := copy(b[off:], remaining)
		if err := fs.dev.WriteBlock(blk, b[:]); err != nil {
			return 0, err
		}
		size += uint32(n)
		remaining = remaining[n:]
	}

	in.size = size
	if err := fs.writeInode(ino, &in); err != nil {
		return 0, err
	}
	if err := fs.writeMeta(); err != nil {
		return 0, err
	}
	fsLogf("append ino=%d n=%d -> size=%d", ino, len(data), size)
	return len(data), nil
}

// ReadFile returns the file's full content.
func (fs *FS) ReadFile(ino uint32) ([]byte, error) {
	in, err := fs.readInode(ino)
	if err != nil {
		return nil, err
	}
	if !in.used() {
		return nil, ErrBadInode
	}
	if in.dir() {
		return nil, ErrNotAFile
	}

	out := make([]byte, in.size)
	var b [BlockSize]byte
	for off := uint32(0); off < in.size; off += BlockSize {
		if err := fs.dev.ReadBlock(in.blocks[off/BlockSize], b[:]); err != nil {
			return nil, err
		}
		copy(out[off:], b[:])
	}
	return out, nil
}

// ReadDir lists a directory's entries in storage order, "." and ".."
// included.
func (fs *FS) ReadDir(ino uint32) ([]DirEntry, error) {
	in, err := fs.readInode(ino)
	if err != nil {
		return nil, err
	}
	if !in.used() {
		return nil, ErrBadInode
	}
	if !in.dir() {
		return nil, ErrNotADirectory
	}

	count := in.size / DirEntrySize
	out := make([]DirEntry, 0, count)
	var b [BlockSize]byte
	for i := uint32(0); i < count; i++ {
		if i%EntriesPerBlock == 0 {
			if err := fs.dev.ReadBlock(in.blocks[i/EntriesPerBlock], b[:]); err != nil {
				return nil, err
			}
		}
		rec := b[(i%EntriesPerBlock)*DirEntrySize:]
		e := dirEntryFromBytes(rec)

		child, err := fs.readInode(e.ino)
		if err != nil {
			return nil, err
		}
		out = append(out, DirEntry{
			Name: decodeName(e.name[:]),
			Ino:  e.ino,
			Dir:  child.dir(),
			Size: child.size,
		})
	}
	return out, nil
}

// --- path helpers ---

// splitAbs validates an absolute path and splits it into components.
// Repeated slashes are tolerated; a bare "/" yields no components.
func splitAbs(path string) ([]string, error) {
	if path == "" || path[0] != '/' {
		return nil, ErrBadPath
	}
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// resolve walks components from the root. Every intermediate must be a
// directory.
func (fs *FS) resolve(parts []string) (uint32, error) {
	cur := uint32(RootInode)
	for _, part := range parts {
		in, err := fs.readInode(cur)
		if err != nil {
			return 0, err
		}
		if !in.dir() {
			return 0, ErrNotADirectory
		}
		field, err := encodeName(part)
		if err != nil {
			// A name that cannot encode cannot exist on disk.
			return 0, ErrNotFound
		}
		next, found, err := fs.lookupEntry(&in, field)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, ErrNotFound
		}
		cur = next
	}
	return cur, nil
}

// --- directory internals ---

// lookupEntry scans a directory for a raw name field. Entries are written
// NUL-padded, so byte equality on the field is name equality.
func (fs *FS) lookupEntry(dir *inode, field [MaxNameLen]byte) (uint32, bool, error) {
	count := dir.size / DirEntrySize
	var b [BlockSize]byte
	for i := uint32(0); i < count; i++ {
		if i%EntriesPerBlock == 0 {
			if err := fs.dev.ReadBlock(dir.blocks[i/EntriesPerBlock], b[:]); err != nil {
				return 0, false, err
			}
		}
		rec := b[(i%EntriesPerBlock)*DirEntrySize:]
		if [MaxNameLen]byte(rec[:MaxNameLen]) == field {
			return buf.U32LE(rec[MaxNameLen:]), true, nil
		}
	}
	return 0, false, nil
}

// addEntry appends a record to the directory, growing it by one block when
// the current one is full. Capacity was checked by the caller.
func (fs *FS) addEntry(dirIno uint32, dir *inode, e dirEntry) error {
	count := dir.size / DirEntrySize
	slot := count / EntriesPerBlock
	off := (count % EntriesPerBlock) * DirEntrySize

	var b [BlockSize]byte
	var blk uint32
	if count%EntriesPerBlock == 0 {
		var err error
		blk, err = fs.allocBlock()
		if err != nil {
			return err
		}
		dir.blocks[slot] = blk
	} else {
		blk = dir.blocks[slot]
		if err := fs.dev.ReadBlock(blk, b[:]); err != nil {
			return err
		}
	}

	e.writeTo(b[off:])
	if err := fs.dev.WriteBlock(blk, b[:]); err != nil {
		return err
	}

	dir.size += DirEntrySize
	return fs.writeInode(dirIno, dir)
}

// --- inode table ---

func (fs *FS) readInode(ino uint32) (inode, error) {
	if ino >= MaxInodes {
		return inode{}, ErrBadInode
	}
	var b [BlockSize]byte
	blk := uint32(InodeTableStart) + ino/InodesPerBlock
	if err := fs.dev.ReadBlock(blk, b[:]); err != nil {
		return inode{}, err
	}
	off := (ino % InodesPerBlock) * InodeSize
	return inodeFromBytes(b[off : off+InodeSize]), nil
}

func (fs *FS) writeInode(ino uint32, in *inode) error {
	if ino >= MaxInodes {
		return ErrBadInode
	}
	var b [BlockSize]byte
	blk := uint32(InodeTableStart) + ino/InodesPerBlock
	if err := fs.dev.ReadBlock(blk, b[:]); err != nil {
		return err
	}
	off := (ino % InodesPerBlock) * InodeSize
	in.writeTo(b[off : off+InodeSize])
	return fs.dev.WriteBlock(blk, b[:])
}

// allocInode returns the lowest unused inode number and leaves marking it
// used to the caller's writeInode.
func (fs *FS) allocInode() (uint32, error) {
	for ino := uint32(0); ino < MaxInodes; ino++ {
		in, err := fs.readInode(ino)
		if err != nil {
			return 0, err
		}
		if !in.used() {
			return ino, nil
		}
	}
	return 0, ErrNoFreeInodes
}

// --- block allocation ---

// allocBlock claims the lowest free block in memory. The caller persists
// the bitmap with writeMeta once its operation succeeds.
func (fs *FS) allocBlock() (uint32, error) {
	idx, ok := fs.bm.findFree()
	if !ok || idx >= fs.sb.totalBlocks {
		return 0, ErrDiskFull
	}
	fs.bm.set(idx)
	fs.sb.freeBlocks--
	return idx, nil
}

// writeMeta persists the superblock and bitmap into block 0.
func (fs *FS) writeMeta() error {
	var b [BlockSize]byte
	fs.sb.writeTo(b[:superBlockSize])
	fs.bm.writeTo(b[bitmapOffset:])
	return fs.dev.WriteBlock(0, b[:])
}

func blocksFor(size uint32) uint32 {
	return (size + BlockSize - 1) / BlockSize
}
