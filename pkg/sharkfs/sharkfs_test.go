package sharkfs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemonshark/sharkkit/pkg/sharkfs"
	"github.com/lemonshark/sharkkit/ramfs"
)

func newTestImage(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "volume.img")
	require.NoError(t, sharkfs.Mkfs(path, size))
	return path
}

func Test_MkfsCreatesFormattedImage(t *testing.T) {
	path := newTestImage(t, 1<<20)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), st.Size())

	info, err := sharkfs.Info(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2048), info.TotalBlocks)
	assert.Equal(t, uint32(1), info.UsedInodes)

	problems, err := sharkfs.Check(path)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func Test_MkfsRejectsBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.img")

	require.Error(t, sharkfs.Mkfs(path, 1000), "size must be block granular")
	require.Error(t, sharkfs.Mkfs(path, 0))

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_MkfsRefusesExistingImage(t *testing.T) {
	path := newTestImage(t, 1<<20)
	require.ErrorIs(t, sharkfs.Mkfs(path, 1<<20), os.ErrExist)
}

func Test_WriteThenReadAcrossOpens(t *testing.T) {
	path := newTestImage(t, 1<<20)

	n, err := sharkfs.WriteFile(path, "/notes.txt", []byte("first line\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	// Second write appends; a fresh open must see both.
	_, err = sharkfs.WriteFile(path, "/notes.txt", []byte("second line\n"))
	require.NoError(t, err)

	data, err := sharkfs.ReadFile(path, "/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(data))
}

func Test_MkdirAndList(t *testing.T) {
	path := newTestImage(t, 1<<20)

	require.NoError(t, sharkfs.Mkdir(path, "/docs"))
	require.NoError(t, sharkfs.Mkdir(path, "/docs/old"))
	_, err := sharkfs.WriteFile(path, "/docs/readme", []byte("hello"))
	require.NoError(t, err)

	entries, err := sharkfs.List(path, "/docs")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, "..", entries[1].Name)
	assert.Equal(t, "old", entries[2].Name)
	assert.True(t, entries[2].Dir)
	assert.Equal(t, "readme", entries[3].Name)
	assert.False(t, entries[3].Dir)
	assert.Equal(t, uint32(5), entries[3].Size)
}

func Test_StatDistinguishesKinds(t *testing.T) {
	path := newTestImage(t, 1<<20)

	require.NoError(t, sharkfs.Mkdir(path, "/d"))
	_, err := sharkfs.WriteFile(path, "/f", bytes.Repeat([]byte("x"), 600))
	require.NoError(t, err)

	st, err := sharkfs.Stat(path, "/d")
	require.NoError(t, err)
	assert.True(t, st.Dir)

	st, err = sharkfs.Stat(path, "/f")
	require.NoError(t, err)
	assert.False(t, st.Dir)
	assert.Equal(t, uint32(600), st.Size)
	assert.Len(t, st.Blocks, 2)
}

func Test_ErrorsPassThrough(t *testing.T) {
	path := newTestImage(t, 1<<20)

	_, err := sharkfs.ReadFile(path, "/missing")
	require.ErrorIs(t, err, ramfs.ErrNotFound)

	require.NoError(t, sharkfs.Mkdir(path, "/d"))
	_, err = sharkfs.ReadFile(path, "/d")
	require.ErrorIs(t, err, ramfs.ErrNotAFile)

	err = sharkfs.Mkdir(path, "/d")
	require.ErrorIs(t, err, ramfs.ErrDuplicateEntry)

	_, err = sharkfs.List(path, "relative")
	require.ErrorIs(t, err, ramfs.ErrBadPath)

	_, err = sharkfs.Info(filepath.Join(t.TempDir(), "missing.img"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func Test_FailedWriteLeavesImageConsistent(t *testing.T) {
	path := newTestImage(t, 1<<20)

	_, err := sharkfs.WriteFile(path, "/f", bytes.Repeat([]byte("x"), ramfs.MaxFileSize))
	require.NoError(t, err)

	_, err = sharkfs.WriteFile(path, "/f", []byte("y"))
	require.ErrorIs(t, err, ramfs.ErrNoSpaceInFile)

	st, err := sharkfs.Stat(path, "/f")
	require.NoError(t, err)
	assert.Equal(t, uint32(ramfs.MaxFileSize), st.Size)

	problems, err := sharkfs.Check(path)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func Test_DumpWritesListing(t *testing.T) {
	path := newTestImage(t, 16*512)

	var sb strings.Builder
	require.NoError(t, sharkfs.Dump(path, &sb))
	assert.Contains(t, sb.String(), "=== RAMDISK DUMP (16 blocks, 8192 bytes total) ===")
	assert.Contains(t, sb.String(), "=== END DUMP ===")
}
