package alloc

import (
	"fmt"
	"math"

	"github.com/joshuapare/arenakit/internal/buf"
)

// MaxPoolDepth bounds the number of tiers in a Multipool.
const MaxPoolDepth = 16

// TierLayout describes where one tier's original blocks live in the arena.
type TierLayout struct {
	Depth     int `json:"depth"`      // tier index, 0 is the largest
	BlockSize int `json:"block_size"` // usable bytes per block
	Stride    int `json:"stride"`     // distance between consecutive blocks
	Offset    int `json:"offset"`     // arena offset of the tier's first block
	Count     int `json:"count"`      // blocks originally assigned to the tier
}

// Layout is the arena plan for a Multipool.
type Layout struct {
	BlockCount int
	BlockSize  int
	Depth      int

	// Unit is the stride of the finest tier. Every block starts on a Unit
	// boundary, so offset/Unit is the block's slot in the header table.
	Unit int

	ArenaSize int // bytes of block storage
	Slots     int // header table entries
	Tiers     []TierLayout
}

// Footprint is ArenaSize plus the header table, what MaxSize reports.
func (l Layout) Footprint() int {
	return l.ArenaSize + l.Slots*HeaderSize
}

// slotStride returns the number of header slots one tier-d block spans.
func (l Layout) slotStride(d int) int {
	return l.Tiers[d].Stride / l.Unit
}

// Plan validates a Multipool configuration and computes its layout.
//
// Tier d holds blockCount blocks of blockSize>>d bytes. Strides are powers of
// two multiples of Unit (the finest block size rounded up to MaxAlign), so a
// tier-d block splits exactly into 2^(t-d) tier-t blocks and every tier-d
// block offset is a multiple of its stride.
func Plan(blockCount, blockSize, poolDepth int) (Layout, error) {
	if blockCount <= 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrZeroBlockCount, blockCount)
	}
	if blockSize <= 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrZeroBlockSize, blockSize)
	}
	if poolDepth < 1 || poolDepth > MaxPoolDepth {
		return Layout{}, fmt.Errorf("%w: %d (want 1..%d)", ErrBadDepth, poolDepth, MaxPoolDepth)
	}
	if blockSize%(1<<(poolDepth-1)) != 0 {
		return Layout{}, fmt.Errorf("%w: %d across %d tiers", ErrIndivisible, blockSize, poolDepth)
	}
	return planLayout(blockCount, blockSize, poolDepth)
}

// planLayout computes the layout without the precondition checks that Plan
// performs; overflow is still reported.
func planLayout(blockCount, blockSize, poolDepth int) (Layout, error) {
	finest := blockSize >> (poolDepth - 1)
	if finest < 1 {
		finest = 1
	}
	unit := buf.AlignUp(finest, MaxAlign)

	l := Layout{
		BlockCount: blockCount,
		BlockSize:  blockSize,
		Depth:      poolDepth,
		Unit:       unit,
		Tiers:      make([]TierLayout, poolDepth),
	}

	off := 0
	for d := range poolDepth {
		stride := unit << (poolDepth - 1 - d)
		span, ok := buf.MulOverflowSafe(blockCount, stride)
		if !ok {
			return Layout{}, fmt.Errorf("%w: tier %d", ErrTooLarge, d)
		}
		l.Tiers[d] = TierLayout{
			Depth:     d,
			BlockSize: blockSize >> d,
			Stride:    stride,
			Offset:    off,
			Count:     blockCount,
		}
		if off, ok = buf.AddOverflowSafe(off, span); !ok {
			return Layout{}, fmt.Errorf("%w: tier %d", ErrTooLarge, d)
		}
	}

	l.ArenaSize = off
	l.Slots = off / unit
	if l.Slots > math.MaxInt32 {
		return Layout{}, fmt.Errorf("%w: %d slots", ErrTooLarge, l.Slots)
	}
	if _, err := buf.Footprint(l.Slots, 0, HeaderSize); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrTooLarge, err)
	}
	return l, nil
}

// TierAlign returns the alignment every tier-d block is guaranteed to have
// when the arena base is aligned to baseAlign.
func (l Layout) TierAlign(d, baseAlign int) int {
	return min(buf.LowBit(l.Tiers[d].Stride), baseAlign)
}
