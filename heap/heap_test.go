package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NewValidatesRegion verifies the bootstrap contract: the region must
// be large enough for a header plus one granule and header-granular in
// length.
func Test_NewValidatesRegion(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrRegionTooSmall)

	_, err = New(make([]byte, 16))
	require.ErrorIs(t, err, ErrRegionTooSmall)

	_, err = New(make([]byte, 40))
	require.ErrorIs(t, err, ErrRegionMisaligned)

	h, err := New(make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, uint64(16), h.FreeBytes(), "32-byte region holds one granule after the header")
}

// Test_BootstrapSingleBlock verifies that a fresh region becomes one free
// block spanning the whole length, usable size = length minus one header.
func Test_BootstrapSingleBlock(t *testing.T) {
	h := newTestHeap(t, 1024)

	assert.Equal(t, uint64(1008), h.FreeBytes())
	assert.Equal(t, 1, h.FreeBlocks())
	assert.Equal(t, uint64(1008), h.LargestFree())
	requireFreeList(t, h, []FreeBlockInfo{{Offset: 0, Size: 1008}})
}

// Test_AllocateSplitsFromLowEnd verifies that the first allocation lands at
// the region base and leaves the remainder as a single shifted free block.
func Test_AllocateSplitsFromLowEnd(t *testing.T) {
	h := newTestHeap(t, 1024)

	ref, buf, err := h.Allocate(80, 16)
	require.NoError(t, err)
	assert.Equal(t, Ref(0), ref, "first fit should grant the region base")
	assert.Len(t, buf, 80)
	assert.Equal(t, 80, cap(buf), "window must be capped at the granted span")

	assert.Equal(t, uint64(928), h.FreeBytes())
	requireFreeList(t, h, []FreeBlockInfo{{Offset: 80, Size: 928}})

	st := h.Stats()
	assert.Equal(t, uint64(1), st.AllocCalls)
	assert.Equal(t, uint64(1), st.Splits)
	assert.Equal(t, uint64(80), st.LiveBytes)
	assert.Equal(t, uint64(1), st.LiveBlocks)
}

// Test_DeallocateRestoresSingleBlock verifies that freeing the only live
// block merges back into one region-spanning free block.
func Test_DeallocateRestoresSingleBlock(t *testing.T) {
	h := newTestHeap(t, 1024)

	ref, _, err := h.Allocate(80, 16)
	require.NoError(t, err)

	require.NoError(t, h.Deallocate(ref, 80, 16))

	assert.Equal(t, uint64(1008), h.FreeBytes())
	requireFreeList(t, h, []FreeBlockInfo{{Offset: 0, Size: 1008}})

	st := h.Stats()
	assert.Equal(t, uint64(1), st.CoalesceForward, "freed span should absorb the block to its right")
	assert.Equal(t, uint64(0), st.CoalesceBackward)
	assert.Equal(t, uint64(0), st.LiveBytes)
	assert.Equal(t, uint64(0), st.LiveBlocks)
}

// Test_OutOfMemoryOnFragmentedFit verifies that a request bigger than the
// largest remaining block fails even though the heap once held enough.
func Test_OutOfMemoryOnFragmentedFit(t *testing.T) {
	h := newTestHeap(t, 1024)

	_, _, err := h.Allocate(500, 16)
	require.NoError(t, err)
	assert.Equal(t, uint64(496), h.FreeBytes(), "500 rounds to a 512-byte span")

	_, _, err = h.Allocate(600, 16)
	require.ErrorIs(t, err, ErrOutOfMemory)

	assert.Equal(t, uint64(496), h.FreeBytes(), "a failed allocation must not disturb the list")
	assert.Equal(t, uint64(1), h.Stats().FailedAllocs)
	require.NoError(t, h.Validate())
}

// Test_FragmentationSurvivesLiveMiddle verifies that freeing blocks around
// a live one leaves two disjoint free blocks that only merge once the
// middle is freed too.
func Test_FragmentationSurvivesLiveMiddle(t *testing.T) {
	h := newTestHeap(t, 1024)

	// Three 100-byte requests round to 112-byte spans back to back.
	r1, _, err := h.Allocate(100, 16)
	require.NoError(t, err)
	r2, _, err := h.Allocate(100, 16)
	require.NoError(t, err)
	r3, _, err := h.Allocate(100, 16)
	require.NoError(t, err)
	assert.Equal(t, Ref(0), r1)
	assert.Equal(t, Ref(112), r2)
	assert.Equal(t, Ref(224), r3)

	require.NoError(t, h.Deallocate(r1, 100, 16))
	require.NoError(t, h.Deallocate(r3, 100, 16))

	// r2 is still live between them; the two frees must not merge across
	// it. The third span merges forward into the bootstrap remainder.
	requireFreeList(t, h, []FreeBlockInfo{
		{Offset: 0, Size: 96},
		{Offset: 224, Size: 784},
	})
	assert.Equal(t, uint64(880), h.FreeBytes())

	// 880 free bytes in total, but the biggest single block spans 800;
	// a request between the two must fail.
	_, _, err = h.Allocate(850, 16)
	require.ErrorIs(t, err, ErrOutOfMemory)

	// Freeing the middle block collapses everything back to one span.
	require.NoError(t, h.Deallocate(r2, 100, 16))
	requireFreeList(t, h, []FreeBlockInfo{{Offset: 0, Size: 1008}})

	st := h.Stats()
	assert.Equal(t, uint64(1), st.CoalesceBackward)
	assert.Equal(t, uint64(2), st.CoalesceForward)
}

// Test_ZeroSizeAllocation verifies that a zero-byte request is served as a
// one-byte block on a full granule.
func Test_ZeroSizeAllocation(t *testing.T) {
	h := newTestHeap(t, 1024)

	ref, buf, err := h.Allocate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Ref(0), ref)
	assert.Len(t, buf, 1)
	assert.Equal(t, 16, cap(buf))
	assert.Equal(t, uint64(1024-16-16), h.FreeBytes())

	require.NoError(t, h.Deallocate(ref, 0, 0))
	assert.Equal(t, uint64(1008), h.FreeBytes())
}

// Test_DeallocateRejectsBadArguments verifies the checks the allocator can
// perform from the reference alone. Everything subtler is the caller's
// contract.
func Test_DeallocateRejectsBadArguments(t *testing.T) {
	h := newTestHeap(t, 1024)

	ref, _, err := h.Allocate(64, 16)
	require.NoError(t, err)

	require.ErrorIs(t, h.Deallocate(ref, 64, 3), ErrBadAlignment)
	require.ErrorIs(t, h.Deallocate(ref+1, 64, 16), ErrOutOfRange)
	require.ErrorIs(t, h.Deallocate(2048, 64, 16), ErrOutOfRange)
	require.ErrorIs(t, h.Deallocate(ref, ^uint64(0)-32, 16), ErrOutOfRange)

	require.NoError(t, h.Deallocate(ref, 64, 16))
}

// Test_WriteThroughWindow verifies the returned slice really aliases the
// region and that filling it cannot touch a neighboring block.
func Test_WriteThroughWindow(t *testing.T) {
	region := make([]byte, 1024)
	h, err := New(region)
	require.NoError(t, err)

	_, a, err := h.Allocate(48, 16)
	require.NoError(t, err)
	_, b, err := h.Allocate(48, 16)
	require.NoError(t, err)

	for i := range a {
		a[i] = 0xAA
	}
	for i := range b {
		b[i] = 0xBB
	}

	for i := range a {
		require.Equal(t, byte(0xAA), a[i], "block A corrupted at %d", i)
	}
	assert.Equal(t, byte(0xAA), region[0])
	assert.Equal(t, byte(0xBB), region[48])
	require.NoError(t, h.Validate())
}
