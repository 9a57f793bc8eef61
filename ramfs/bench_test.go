package ramfs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// Benchmark_Append_256B measures steady-state append cost. The file is
// recreated whenever it hits the 16-block cap; that reset runs off the
// clock.
func Benchmark_Append_256B(b *testing.B) {
	fs := newTestFS(b, 1<<20)
	ino, err := fs.CreateFile("/bench.dat")
	require.NoError(b, err)

	chunk := bytes.Repeat([]byte("x"), 256)

	b.ResetTimer()
	b.ReportAllocs()

	written := 0
	for range b.N {
		if written+len(chunk) > MaxFileSize {
			b.StopTimer()
			require.NoError(b, fs.Reset())
			ino, err = fs.CreateFile("/bench.dat")
			require.NoError(b, err)
			written = 0
			b.StartTimer()
		}
		n, err := fs.Append(ino, chunk)
		if err != nil {
			b.Fatal(err)
		}
		written += n
	}
}

// Benchmark_Lookup_DeepPath measures path resolution through three
// directory levels.
func Benchmark_Lookup_DeepPath(b *testing.B) {
	fs := newTestFS(b, 1<<20)
	_, err := fs.Mkdir("/usr")
	require.NoError(b, err)
	_, err = fs.Mkdir("/usr/share")
	require.NoError(b, err)
	_, err = fs.Mkdir("/usr/share/doc")
	require.NoError(b, err)
	want, err := fs.CreateFile("/usr/share/doc/readme")
	require.NoError(b, err)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		ino, err := fs.Lookup("/usr/share/doc/readme")
		if err != nil {
			b.Fatal(err)
		}
		if ino != want {
			b.Fatal("lookup resolved the wrong inode")
		}
	}
}

// Benchmark_ReadDir_FullBlock measures directory enumeration with a full
// block of entries, name decode included.
func Benchmark_ReadDir_FullBlock(b *testing.B) {
	fs := newTestFS(b, 1<<20)
	// 16 files plus "." and ".." fill the root's first block exactly
	for i := 0; i < 16; i++ {
		_, err := fs.CreateFile("/file" + string(rune('a'+i)))
		require.NoError(b, err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		entries, err := fs.ReadDir(RootInode)
		if err != nil {
			b.Fatal(err)
		}
		if len(entries) != 18 {
			b.Fatal("unexpected entry count")
		}
	}
}
