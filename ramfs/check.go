package ramfs

import "fmt"

// Severity classifies how serious a check finding is.
type Severity int

const (
	SevInfo    Severity = iota // unusual but valid
	SevWarning                 // inconsistent accounting, content still reachable
	SevError                   // structural damage, content unreachable or unsafe
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Problem is a single finding from a volume scan.
type Problem struct {
	Severity  Severity `json:"severity"`
	Structure string   `json:"structure"` // SUPERBLOCK, BITMAP, INODE, DIRENT
	Ino       int32    `json:"ino"`       // -1 when not inode-scoped
	Block     int32    `json:"block"`     // -1 when not block-scoped
	Issue     string   `json:"issue"`
}

func (p Problem) String() string {
	where := p.Structure
	if p.Ino >= 0 {
		where = fmt.Sprintf("%s inode %d", p.Structure, p.Ino)
	}
	if p.Block >= 0 {
		where = fmt.Sprintf("%s block %d", where, p.Block)
	}
	return fmt.Sprintf("[%s] %s: %s", p.Severity, where, p.Issue)
}

// Check scans the volume's metadata for structural damage and accounting
// drift: the reserved region, every used inode's block pointers, directory
// entry targets, and the bitmap against what is actually claimed. The scan
// never mutates the image; it returns all findings rather than stopping at
// the first.
func (fs *FS) Check() []Problem {
	var problems []Problem
	report := func(sev Severity, structure string, ino, block int32, format string, args ...any) {
		problems = append(problems, Problem{
			Severity:  sev,
			Structure: structure,
			Ino:       ino,
			Block:     block,
			Issue:     fmt.Sprintf(format, args...),
		})
	}

	// Reserved blocks must be marked used or the allocator will hand out
	// metadata blocks as file data.
	for i := uint32(0); i < DataStart; i++ {
		if !fs.bm.isSet(i) {
			report(SevError, "BITMAP", -1, int32(i), "reserved block not marked used")
		}
	}

	// claimed maps every block some inode points at, to find doubly
	// claimed and leaked blocks.
	claimed := make(map[uint32]int32)

	rootSeen := false
	for ino := uint32(0); ino < MaxInodes; ino++ {
		in, err := fs.readInode(ino)
		if err != nil {
			report(SevError, "INODE", int32(ino), -1, "unreadable: %v", err)
			continue
		}
		if !in.used() {
			continue
		}
		if ino == RootInode {
			rootSeen = true
			if !in.dir() {
				report(SevError, "INODE", int32(ino), -1, "root inode is not a directory")
			}
		}

		if in.size > MaxFileSize {
			report(SevError, "INODE", int32(ino), -1,
				"size %d exceeds the %d-byte cap", in.size, MaxFileSize)
			continue
		}
		if in.dir() && in.size%DirEntrySize != 0 {
			report(SevError, "INODE", int32(ino), -1,
				"directory size %d is not a multiple of the entry size", in.size)
			continue
		}

		want := int(blocksFor(in.size))
		got := in.blockCount()
		if got != want {
			report(SevWarning, "INODE", int32(ino), -1,
				"size %d needs %d blocks but %d are attached", in.size, want, got)
		}

		for _, blk := range in.blocks[:got] {
			if blk < DataStart || blk >= fs.sb.totalBlocks {
				report(SevError, "INODE", int32(ino), int32(blk), "block pointer outside the data area")
				continue
			}
			if other, dup := claimed[blk]; dup {
				report(SevError, "INODE", int32(ino), int32(blk),
					"block also claimed by inode %d", other)
				continue
			}
			claimed[blk] = int32(ino)
			if !fs.bm.isSet(blk) {
				report(SevError, "BITMAP", int32(ino), int32(blk), "claimed block not marked used")
			}
		}

		if in.dir() {
			fs.checkDir(ino, &in, report)
		}
	}

	if !rootSeen {
		report(SevError, "INODE", RootInode, -1, "root inode not in use")
	}

	// Bits set beyond the reserved region that no inode claims are
	// leaked capacity.
	for blk := uint32(DataStart); blk < fs.sb.totalBlocks; blk++ {
		if fs.bm.isSet(blk) {
			if _, ok := claimed[blk]; !ok {
				report(SevWarning, "BITMAP", -1, int32(blk), "block marked used but unreferenced")
			}
		}
	}

	if free := fs.sb.totalBlocks - fs.bm.setCount(); free != fs.sb.freeBlocks {
		report(SevWarning, "SUPERBLOCK", -1, -1,
			"free counter %d disagrees with bitmap (%d free)", fs.sb.freeBlocks, free)
	}

	return problems
}

// checkDir validates a directory's entries: resolvable names, duplicate
// names, in-range targets, live target inodes, and the mandatory "." and
// ".." pair.
func (fs *FS) checkDir(ino uint32, in *inode, report func(Severity, string, int32, int32, string, ...any)) {
	count := in.size / DirEntrySize
	if count < 2 {
		report(SevError, "INODE", int32(ino), -1, "directory missing its \".\" and \"..\" entries")
		return
	}

	var b [BlockSize]byte
	seen := make(map[string]uint32, count)
	sawDot, sawDotDot := false, false
	for i := uint32(0); i < count; i++ {
		if i%EntriesPerBlock == 0 {
			slot := i / EntriesPerBlock
			if int(slot) >= in.blockCount() {
				report(SevError, "DIRENT", int32(ino), -1, "entries extend past the attached blocks")
				return
			}
			if err := fs.dev.ReadBlock(in.blocks[slot], b[:]); err != nil {
				report(SevError, "DIRENT", int32(ino), int32(in.blocks[slot]), "unreadable: %v", err)
				return
			}
		}
		e := dirEntryFromBytes(b[(i%EntriesPerBlock)*DirEntrySize:])
		name := decodeName(e.name[:])

		if name != "" {
			// Duplicates hide behind each other: a lookup only ever
			// reaches the first one.
			if prev, dup := seen[name]; dup {
				report(SevError, "DIRENT", int32(ino), -1,
					"duplicate name %q in entries %d and %d", name, prev, i)
				continue
			}
			seen[name] = i
		}

		switch name {
		case "":
			report(SevError, "DIRENT", int32(ino), -1, "entry %d has an empty name", i)
			continue
		case ".":
			sawDot = true
			if e.ino != ino {
				report(SevError, "DIRENT", int32(ino), -1, "\".\" points at inode %d", e.ino)
			}
			continue
		case "..":
			sawDotDot = true
		}

		if e.ino >= MaxInodes {
			report(SevError, "DIRENT", int32(ino), -1, "%q points at invalid inode %d", name, e.ino)
			continue
		}
		child, err := fs.readInode(e.ino)
		if err != nil || !child.used() {
			report(SevError, "DIRENT", int32(ino), -1, "%q points at unused inode %d", name, e.ino)
		}
	}
	if !sawDot || !sawDotDot {
		report(SevError, "DIRENT", int32(ino), -1, "directory missing \".\" or \"..\"")
	}
}
