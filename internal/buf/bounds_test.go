package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(512, 0, 18, 28)
	if err != nil || end != 504 {
		t.Fatalf("CheckListBounds(512,0,18,28)=%d,%v want 504,nil", end, err)
	}
	if _, err := CheckListBounds(512, 0, 19, 28); err == nil {
		t.Fatalf("expected bounds error for 19 records of 28 bytes in one block")
	}
	if _, err := CheckListBounds(512, 0, math.MaxInt, 28); err == nil {
		t.Fatalf("expected overflow error")
	}
	if _, err := CheckListBounds(512, -4, 1, 28); err == nil {
		t.Fatalf("expected negative offset error")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
