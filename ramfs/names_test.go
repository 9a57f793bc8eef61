package ramfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeNameRoundTrip(t *testing.T) {
	for _, name := range []string{
		"a",
		"text.txt",
		"other-text.txt",
		".",
		"..",
		strings.Repeat("x", MaxNameLen),
	} {
		field, err := encodeName(name)
		require.NoError(t, err, "name=%q", name)
		assert.Equal(t, name, decodeName(field[:]), "name=%q", name)
	}
}

func Test_EncodeNameWindows1252(t *testing.T) {
	// é is a single byte in Windows-1252, two in UTF-8.
	field, err := encodeName("café.txt")
	require.NoError(t, err)
	assert.Equal(t, byte(0xE9), field[3], "é must encode to its 1252 byte")
	assert.Equal(t, "café.txt", decodeName(field[:]))

	// A rune with no Windows-1252 mapping cannot be stored.
	_, err = encodeName("日記.txt")
	require.ErrorIs(t, err, ErrBadName)
}

func Test_EncodeNameRejectsBadInput(t *testing.T) {
	_, err := encodeName("")
	require.ErrorIs(t, err, ErrBadName)

	_, err = encodeName("a/b")
	require.ErrorIs(t, err, ErrBadName)

	_, err = encodeName("nul\x00byte")
	require.ErrorIs(t, err, ErrBadName)

	_, err = encodeName(strings.Repeat("x", MaxNameLen+1))
	require.ErrorIs(t, err, ErrNameTooLong)

	// Length is checked after encoding: 24 two-byte runes fit once they
	// collapse to single 1252 bytes.
	_, err = encodeName(strings.Repeat("é", MaxNameLen))
	require.NoError(t, err)
}

func Test_DecodeNameStopsAtNul(t *testing.T) {
	var field [MaxNameLen]byte
	copy(field[:], "short")
	field[10] = 'X' // garbage after the terminator must be invisible

	assert.Equal(t, "short", decodeName(field[:]))
}
