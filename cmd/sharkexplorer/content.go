package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// renderFileContent formats the loaded file for the content viewport,
// honoring the current text/hex mode.
func (m *Model) renderFileContent() string {
	if m.contentPath == "" {
		return helpStyle.Render("Select a file to view its content.")
	}
	if len(m.content) == 0 {
		return helpStyle.Render("(empty file)")
	}
	if m.hexMode || !utf8.Valid(m.content) {
		return hexdump(m.content)
	}
	return string(m.content)
}

// hexdump renders data in the volume dump row layout: offset, sixteen
// hex bytes split at the half, then the printable column.
func hexdump(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		fmt.Fprintf(&b, "%06x  ", off)

		for i := 0; i < 16; i++ {
			if off+i < len(data) {
				fmt.Fprintf(&b, "%02X ", data[off+i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteString(" ")
			}
		}

		b.WriteString(" |")
		for i := 0; i < 16 && off+i < len(data); i++ {
			c := data[off+i]
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
