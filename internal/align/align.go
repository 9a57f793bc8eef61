// Package align provides alignment arithmetic for power-of-two boundaries.
//
// The allocator and the filesystem both round sizes and offsets to fixed
// boundaries; the helpers here keep that arithmetic in one place.
package align

// Up returns n aligned up to the next multiple of a.
// a must be a power of two; Up panics otherwise.
//
// Example:
//
//	Up(1, 16)  = 16
//	Up(16, 16) = 16
//	Up(17, 16) = 32
func Up(n, a uint64) uint64 {
	if !IsPow2(a) {
		panic("align: boundary must be a power of two")
	}
	return (n + a - 1) &^ (a - 1)
}

// Up16 returns n aligned up to the next 16-byte boundary.
// Used for heap request sizes, which must stay 16-granular.
//
// Example:
//
//	Up16(1)  = 16
//	Up16(16) = 16
//	Up16(17) = 32
func Up16(n uint64) uint64 {
	return (n + 15) &^ 15
}

// Down returns n aligned down to the previous multiple of a.
// a must be a power of two; Down panics otherwise.
func Down(n, a uint64) uint64 {
	if !IsPow2(a) {
		panic("align: boundary must be a power of two")
	}
	return n &^ (a - 1)
}

// IsPow2 reports whether a is a power of two. Zero is not.
func IsPow2(a uint64) bool {
	return a != 0 && a&(a-1) == 0
}
