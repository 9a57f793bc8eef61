package ramfs

import (
	"math/bits"

	"github.com/lemonshark/sharkkit/internal/buf"
)

// bitmap tracks block allocation, one bit per block across the whole
// device, metadata blocks included. Stored as little-endian 32-bit words in
// block 0 behind the superblock.
type bitmap [bitmapWords]uint32

func bitmapFromBytes(b []byte) bitmap {
	var bm bitmap
	for i := range bm {
		bm[i] = buf.U32LE(b[i*4:])
	}
	return bm
}

func (bm *bitmap) writeTo(b []byte) {
	for i, w := range bm {
		buf.PutU32LE(b[i*4:], w)
	}
}

func (bm *bitmap) set(idx uint32) {
	bm[idx/32] |= 1 << (idx % 32)
}

func (bm *bitmap) unset(idx uint32) {
	bm[idx/32] &^= 1 << (idx % 32)
}

func (bm *bitmap) isSet(idx uint32) bool {
	return bm[idx/32]&(1<<(idx%32)) != 0
}

// findFree returns the lowest clear bit, scanning from bit 0. The format
// step marks all reserved blocks used, so the result is always a real data
// block on a well-formed volume.
func (bm *bitmap) findFree() (uint32, bool) {
	for i, w := range bm {
		if w != ^uint32(0) {
			return uint32(i)*32 + uint32(bits.TrailingZeros32(^w)), true
		}
	}
	return 0, false
}

// setCount reports how many bits are set, for integrity checking against
// the superblock's free counter.
func (bm *bitmap) setCount() uint32 {
	var n uint32
	for _, w := range bm {
		n += uint32(bits.OnesCount32(w))
	}
	return n
}
