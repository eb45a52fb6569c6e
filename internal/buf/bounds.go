// Package buf contains overflow-safe size arithmetic shared by the arena and
// allocator packages.
package buf

import (
	"fmt"
	"math"
	"math/bits"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative sizes, returning ok = false when
// the product would overflow int. Negative operands are rejected.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Footprint returns count * (size + overhead), the byte footprint of count
// equally sized slots that each carry overhead bytes of bookkeeping.
//
//	total, err := buf.Footprint(blockCount, blockSize, headerSize)
//	if err != nil {
//	    return fmt.Errorf("pool: %w", err)
//	}
func Footprint(count, size, overhead int) (int, error) {
	if count < 0 || size < 0 || overhead < 0 {
		return 0, fmt.Errorf("negative operand: count=%d size=%d overhead=%d", count, size, overhead)
	}
	slot, ok := AddOverflowSafe(size, overhead)
	if !ok {
		return 0, fmt.Errorf("overflow: size=%d + overhead=%d", size, overhead)
	}
	total, ok := MulOverflowSafe(count, slot)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * slot=%d", count, slot)
	}
	return total, nil
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the next multiple of align, which must be a power of two.
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}

// AlignUpPtr is AlignUp for addresses.
func AlignUpPtr(p, align uintptr) uintptr {
	mask := align - 1
	return (p + mask) &^ mask
}

// LowBit returns the largest power of two dividing n. LowBit(0) is 0.
func LowBit(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << bits.TrailingZeros(uint(n))
}

// Has reports whether [off, off+n) lies within a region of length size.
func Has(size, off, n int) bool {
	if off < 0 || n < 0 || off > size {
		return false
	}
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= size
}
