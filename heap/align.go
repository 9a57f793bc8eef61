package heap

// Local alignment helpers. The exported API uses `align` as a parameter
// name, which would shadow the internal/align package inside these
// functions, so the two one-liners live here instead.

func isPow2(n uint64) bool { return n != 0 && n&(n-1) == 0 }

// alignUp rounds n up to the next multiple of a. a must be a power of two.
func alignUp(n, a uint64) uint64 { return (n + a - 1) &^ (a - 1) }

// blockSpan converts a caller's size into the span the allocator actually
// grants: at least one granule, rounded up to header granularity.
func blockSpan(size uint64) uint64 {
	if size == 0 {
		size = 1
	}
	return alignUp(size, HeaderSize)
}

// normalizeRequest validates and widens a request. The returned span is the
// full footprint to carve; the returned alignment is at least MinAlign.
func normalizeRequest(size, align uint64) (span, al uint64, err error) {
	if align == 0 {
		align = MinAlign
	}
	if !isPow2(align) {
		return 0, 0, ErrBadAlignment
	}
	if align < MinAlign {
		align = MinAlign
	}
	return blockSpan(size), align, nil
}
