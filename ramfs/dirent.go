package ramfs

import "github.com/lemonshark/sharkkit/internal/buf"

// dirEntry is the decoded 28-byte directory record: the raw name field
// followed by the entry's inode number.
type dirEntry struct {
	name [MaxNameLen]byte
	ino  uint32
}

func dirEntryFromBytes(b []byte) dirEntry {
	var e dirEntry
	copy(e.name[:], b[:MaxNameLen])
	e.ino = buf.U32LE(b[MaxNameLen:])
	return e
}

func (e *dirEntry) writeTo(b []byte) {
	copy(b[:MaxNameLen], e.name[:])
	buf.PutU32LE(b[MaxNameLen:], e.ino)
}

// DirEntry is one directory listing element as surfaced to callers.
type DirEntry struct {
	Name string
	Ino  uint32
	Dir  bool
	Size uint32
}
