package heap

import (
	"testing"
)

// BenchmarkAllocFreePair measures the steady-state cost of an allocation
// immediately followed by its deallocation on an otherwise empty heap.
func BenchmarkAllocFreePair(b *testing.B) {
	h, err := New(make([]byte, 1<<20))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		size := uint64(16 + (i%64)*8)
		ref, _, err := h.Allocate(size, 16)
		if err != nil {
			b.Fatal(err)
		}
		if err := h.Deallocate(ref, size, 16); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAllocFragmented measures first-fit walk cost against a heap
// pre-fragmented into many small holes, the worst case for a list scan.
func BenchmarkAllocFragmented(b *testing.B) {
	h, err := New(make([]byte, 1<<20))
	if err != nil {
		b.Fatal(err)
	}

	// Alternate live/free 32-byte spans to pin several thousand holes.
	var refs []Ref
	for {
		ref, _, aerr := h.Allocate(32, 16)
		if aerr != nil {
			break
		}
		refs = append(refs, ref)
	}
	for i := 0; i < len(refs); i += 2 {
		if err := h.Deallocate(refs[i], 32, 16); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		// 33 bytes never fit a 32-byte hole, forcing a full-list walk.
		_, _, aerr := h.Allocate(33, 16)
		if aerr != ErrOutOfMemory {
			b.Fatal("expected exhausted walk")
		}
	}
}

// BenchmarkKernelHeapAllocFreePair measures the facade overhead: the same
// pair as BenchmarkAllocFreePair plus the critical-section bracketing.
func BenchmarkKernelHeapAllocFreePair(b *testing.B) {
	k := NewKernelHeap(nil)
	if err := k.Init(make([]byte, 1<<20)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		size := uint64(16 + (i%64)*8)
		ref, _, err := k.Allocate(size, 16)
		if err != nil {
			b.Fatal(err)
		}
		if err := k.Deallocate(ref, size, 16); err != nil {
			b.Fatal(err)
		}
	}
}
