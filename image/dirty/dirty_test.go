package dirty

import (
	"testing"
)

func Test_Tracker_PageAlignment(t *testing.T) {
	tracker := NewTracker()

	// An unaligned write lands somewhere inside page 0.
	tracker.MarkDirty(100, 300)

	coalesced := tracker.coalesce()
	if len(coalesced) != 1 {
		t.Fatalf("expected 1 coalesced range, got %d", len(coalesced))
	}
	if coalesced[0].Off != 0 {
		t.Errorf("start not aligned: got %d, want 0", coalesced[0].Off)
	}
	if coalesced[0].Len != 4096 {
		t.Errorf("length not aligned: got %d, want 4096", coalesced[0].Len)
	}
}

func Test_Tracker_CoalesceAdjacent(t *testing.T) {
	tracker := NewTracker()

	tracker.MarkDirty(4096, 8192)
	tracker.MarkDirty(8192, 12288)

	coalesced := tracker.coalesce()
	if len(coalesced) != 1 {
		t.Fatalf("expected 1 merged range, got %d", len(coalesced))
	}
	if coalesced[0].Off != 4096 || coalesced[0].Len != 8192 {
		t.Errorf("merged range: got (%d, %d), want (4096, 8192)",
			coalesced[0].Off, coalesced[0].Len)
	}
}

func Test_Tracker_CoalesceOverlapping(t *testing.T) {
	tracker := NewTracker()

	tracker.MarkDirty(0, 8192)
	tracker.MarkDirty(4096, 12288)

	coalesced := tracker.coalesce()
	if len(coalesced) != 1 {
		t.Fatalf("expected 1 merged range, got %d", len(coalesced))
	}
	if coalesced[0].Off != 0 || coalesced[0].Len != 12288 {
		t.Errorf("merged range: got (%d, %d), want (0, 12288)",
			coalesced[0].Off, coalesced[0].Len)
	}
}

func Test_Tracker_CoalesceSeparate(t *testing.T) {
	tracker := NewTracker()

	tracker.MarkDirty(0, 4096)
	tracker.MarkDirty(20480, 24576)

	coalesced := tracker.coalesce()
	if len(coalesced) != 2 {
		t.Fatalf("expected 2 separate ranges, got %d", len(coalesced))
	}
	if coalesced[0].Off != 0 || coalesced[0].Len != 4096 {
		t.Errorf("first range: got (%d, %d), want (0, 4096)",
			coalesced[0].Off, coalesced[0].Len)
	}
	if coalesced[1].Off != 20480 || coalesced[1].Len != 4096 {
		t.Errorf("second range: got (%d, %d), want (20480, 4096)",
			coalesced[1].Off, coalesced[1].Len)
	}
}

func Test_Tracker_BlockWritesMergeAcrossPages(t *testing.T) {
	tracker := NewTracker()

	// Sixteen 512-byte block writes spanning pages 0 and 1, out of order.
	for _, blk := range []uint64{8, 0, 9, 1, 2, 3, 12, 4, 5, 6, 7, 10, 11, 13, 15, 14} {
		tracker.MarkDirty(blk*512, (blk+1)*512)
	}

	coalesced := tracker.coalesce()
	if len(coalesced) != 1 {
		t.Fatalf("expected 1 merged range, got %d", len(coalesced))
	}
	if coalesced[0].Off != 0 || coalesced[0].Len != 8192 {
		t.Errorf("merged range: got (%d, %d), want (0, 8192)",
			coalesced[0].Off, coalesced[0].Len)
	}
}

func Test_Tracker_RangesSortedAndDisjoint(t *testing.T) {
	tracker := NewTracker()

	// Every other page, recorded backwards.
	for i := range 100 {
		off := uint64((99 - i) * 8192)
		tracker.MarkDirty(off, off+512)
	}

	coalesced := tracker.Ranges()
	if len(coalesced) != 100 {
		t.Fatalf("expected 100 ranges, got %d", len(coalesced))
	}
	for i := 1; i < len(coalesced); i++ {
		prevEnd := coalesced[i-1].Off + coalesced[i-1].Len
		if coalesced[i].Off < prevEnd {
			t.Errorf("range %d at %d overlaps previous end %d",
				i, coalesced[i].Off, prevEnd)
		}
	}
}

func Test_Tracker_PendingAndReset(t *testing.T) {
	tracker := NewTracker()

	if tracker.Pending() != 0 {
		t.Fatalf("fresh tracker has %d pending ranges", tracker.Pending())
	}
	if tracker.Ranges() != nil {
		t.Fatalf("fresh tracker returned ranges")
	}

	tracker.MarkDirty(0, 512)
	tracker.MarkDirty(512, 1024)
	tracker.MarkDirty(8192, 8704)
	if tracker.Pending() != 3 {
		t.Fatalf("expected 3 pending ranges, got %d", tracker.Pending())
	}

	tracker.Reset()
	if tracker.Pending() != 0 {
		t.Errorf("reset left %d pending ranges", tracker.Pending())
	}
}

func Test_Tracker_IgnoresEmptyRanges(t *testing.T) {
	tracker := NewTracker()

	tracker.MarkDirty(64, 64)
	tracker.MarkDirty(100, 50)

	if tracker.Pending() != 0 {
		t.Errorf("empty ranges were recorded: %d pending", tracker.Pending())
	}
}

func Benchmark_Tracker_MarkDirty(b *testing.B) {
	tracker := NewTracker()

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		tracker.MarkDirty(uint64(i)*512, uint64(i+1)*512)
	}
}

func Benchmark_Tracker_Coalesce100Ranges(b *testing.B) {
	tracker := NewTracker()
	for i := range 100 {
		tracker.MarkDirty(uint64(i)*4096, uint64(i)*4096+512)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		_ = tracker.coalesce()
	}
}
