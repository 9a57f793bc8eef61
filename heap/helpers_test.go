package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap builds a heap over a fresh zeroed region of n bytes.
func newTestHeap(t testing.TB, n int) *Heap {
	t.Helper()
	h, err := New(make([]byte, n))
	require.NoError(t, err)
	return h
}

// collectFree snapshots the free list in address order.
func collectFree(h *Heap) []FreeBlockInfo {
	var out []FreeBlockInfo
	h.walkFree(func(b FreeBlockInfo) bool {
		out = append(out, b)
		return true
	})
	return out
}

// requireFreeList asserts the exact free list layout, offset and usable
// size per block in address order.
func requireFreeList(t *testing.T, h *Heap, want []FreeBlockInfo) {
	t.Helper()
	got := collectFree(h)
	require.Equal(t, want, got, "free list layout mismatch")
	require.NoError(t, h.Validate())
}
