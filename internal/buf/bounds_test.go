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

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(64, 1024); !ok || p != 65536 {
		t.Fatalf("MulOverflowSafe(64,1024)=%d,%v want 65536,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("zero operand should yield 0,true; got %d,%v", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2, 3); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 3); ok {
		t.Fatalf("negative operand must be rejected")
	}
}

func TestFootprint(t *testing.T) {
	total, err := Footprint(4, 64, 8)
	if err != nil || total != 288 {
		t.Fatalf("Footprint(4,64,8)=%d,%v want 288,nil", total, err)
	}
	if _, err := Footprint(math.MaxInt/4, 64, 8); err == nil {
		t.Fatalf("expected overflow error")
	}
	if _, err := Footprint(-1, 64, 8); err == nil {
		t.Fatalf("expected error for negative count")
	}
}

func TestAlignHelpers(t *testing.T) {
	cases := []struct {
		n, align, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 16, 16},
		{100, 64, 128},
	}
	for _, c := range cases {
		if got := AlignUp(c.n, c.align); got != c.want {
			t.Fatalf("AlignUp(%d,%d)=%d want %d", c.n, c.align, got, c.want)
		}
	}
	if got := AlignUpPtr(0x1001, 0x1000); got != 0x2000 {
		t.Fatalf("AlignUpPtr=%#x want 0x2000", got)
	}
	if !IsPow2(1) || !IsPow2(4096) || IsPow2(0) || IsPow2(12) || IsPow2(-8) {
		t.Fatalf("IsPow2 misclassified a value")
	}
	if LowBit(96) != 32 || LowBit(1) != 1 || LowBit(0) != 0 {
		t.Fatalf("LowBit returned unexpected values")
	}
}

func TestHas(t *testing.T) {
	if !Has(16, 0, 16) {
		t.Fatalf("full range should fit")
	}
	if Has(16, 8, 9) {
		t.Fatalf("range past the end should not fit")
	}
	if Has(16, -1, 1) || Has(16, 0, -1) {
		t.Fatalf("negative operands should not fit")
	}
	if Has(16, math.MaxInt, 1) {
		t.Fatalf("overflowing range should not fit")
	}
}
