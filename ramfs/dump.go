package ramfs

import (
	"fmt"
	"io"
)

// Dump writes a hex listing of every non-empty block to w, in the same
// layout the kernel prints on its serial console so image transcripts can
// be diffed against live output.
func (fs *FS) Dump(w io.Writer) error {
	total := fs.dev.TotalBlocks()

	if _, err := fmt.Fprintf(w, "=== RAMDISK DUMP (%d blocks, %d bytes total) ===\n",
		total, total*BlockSize); err != nil {
		return err
	}

	var b [BlockSize]byte
	for idx := 0; idx < total; idx++ {
		if err := fs.dev.ReadBlock(uint32(idx), b[:]); err != nil {
			return err
		}
		if allZero(b[:]) {
			continue
		}

		fmt.Fprintf(w, "\n--- Block %d (offset 0x%06x) ---\n", idx, idx*BlockSize)

		for row := 0; row < BlockSize/16; row++ {
			off := row * 16
			addr := idx*BlockSize + off

			fmt.Fprintf(w, "%06x  ", addr)
			for i := 0; i < 16; i++ {
				fmt.Fprintf(w, "%02X ", b[off+i])
				if i == 7 {
					fmt.Fprint(w, " ")
				}
			}
			fmt.Fprint(w, " |")
			for i := 0; i < 16; i++ {
				c := b[off+i]
				if c >= 0x20 && c < 0x7f {
					fmt.Fprintf(w, "%c", c)
				} else {
					fmt.Fprint(w, ".")
				}
			}
			fmt.Fprintln(w, "|")
		}
	}

	_, err := fmt.Fprintln(w, "\n=== END DUMP ===")
	return err
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
