package ramfs

import "errors"

var (
	// ErrNotFormatted is returned by Mount when block 0 does not carry a
	// valid superblock.
	ErrNotFormatted = errors.New("ramfs: device not formatted")

	// ErrDeviceTooSmall and ErrDeviceTooLarge bound what Format accepts:
	// at least the metadata blocks plus the root directory, at most what
	// the block-0 bitmap can track.
	ErrDeviceTooSmall = errors.New("ramfs: device too small to format")
	ErrDeviceTooLarge = errors.New("ramfs: device exceeds bitmap capacity")

	// ErrNotFound is returned when a path component or entry name does
	// not exist.
	ErrNotFound = errors.New("ramfs: no such file or directory")

	// ErrDuplicateEntry is returned when creating a name that already
	// exists in the target directory.
	ErrDuplicateEntry = errors.New("ramfs: entry already exists")

	// ErrNotAFile is returned when file I/O is attempted on a directory
	// inode.
	ErrNotAFile = errors.New("ramfs: not a file")

	// ErrNotADirectory is returned when a path walks through, or a
	// directory operation targets, a non-directory inode.
	ErrNotADirectory = errors.New("ramfs: not a directory")

	// ErrNoSpaceInFile is returned when an append would push a file past
	// its 16-block limit. Nothing is written.
	ErrNoSpaceInFile = errors.New("ramfs: file block limit reached")

	// ErrDirectoryFull is returned when a directory cannot take another
	// entry.
	ErrDirectoryFull = errors.New("ramfs: directory full")

	// ErrDiskFull is returned when no free data block remains.
	ErrDiskFull = errors.New("ramfs: no free blocks")

	// ErrNoFreeInodes is returned when the inode table is exhausted.
	ErrNoFreeInodes = errors.New("ramfs: inode table full")

	// ErrBadInode is returned for an inode number that is out of range or
	// not in use.
	ErrBadInode = errors.New("ramfs: invalid inode")

	// ErrBadPath is returned for paths that are not absolute or name the
	// root where a child is required.
	ErrBadPath = errors.New("ramfs: invalid path")

	// ErrBadName is returned for names that are empty or contain '/' or
	// NUL.
	ErrBadName = errors.New("ramfs: invalid name")

	// ErrNameTooLong is returned when a name does not fit the entry's
	// 24-byte field after encoding.
	ErrNameTooLong = errors.New("ramfs: name too long")
)
