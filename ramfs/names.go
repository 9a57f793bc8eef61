package ramfs

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/lemonshark/sharkkit/ramfs/namecache"
)

// encodeName converts a UTF-8 name into the fixed 24-byte Windows-1252
// entry field, NUL-padded. Names must be non-empty, contain no '/' or NUL,
// and fit the field after encoding.
func encodeName(name string) ([MaxNameLen]byte, error) {
	var field [MaxNameLen]byte
	if name == "" {
		return field, ErrBadName
	}
	if strings.ContainsAny(name, "/\x00") {
		return field, ErrBadName
	}

	raw := []byte(name)
	if !isASCII(raw) {
		encoded, err := charmap.Windows1252.NewEncoder().Bytes(raw)
		if err != nil {
			// A rune with no Windows-1252 mapping.
			return field, ErrBadName
		}
		raw = encoded
	}
	if len(raw) > MaxNameLen {
		return field, ErrNameTooLong
	}
	copy(field[:], raw)
	return field, nil
}

// decodeName converts a raw 24-byte entry field back to a UTF-8 string,
// trimming the NUL padding. Decodes are memoized in the namecache since a
// path walk hits the same fields repeatedly.
func decodeName(field []byte) string {
	if name, _, ok := namecache.Lookup(field); ok {
		return name
	}

	raw := field
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	var name string
	if isASCII(raw) {
		// Fast path: ASCII is identical in Windows-1252 and UTF-8.
		name = string(raw)
	} else {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			// Windows-1252 decoding cannot fail on arbitrary bytes, but
			// fall back to the raw bytes rather than dropping the entry.
			decoded = raw
		}
		name = string(decoded)
	}

	namecache.Store(field, name, namecache.Hash(field))
	return name
}

// isASCII checks if all bytes are < 0x80, the shared subset of
// Windows-1252 and UTF-8.
func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
