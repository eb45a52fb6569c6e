package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlan_ThreeTiers checks offsets, strides and sizes for a small plan.
func TestPlan_ThreeTiers(t *testing.T) {
	l, err := Plan(4, 256, 3)
	require.NoError(t, err)

	assert.Equal(t, 64, l.Unit)
	assert.Equal(t, []TierLayout{
		{Depth: 0, BlockSize: 256, Stride: 256, Offset: 0, Count: 4},
		{Depth: 1, BlockSize: 128, Stride: 128, Offset: 1024, Count: 4},
		{Depth: 2, BlockSize: 64, Stride: 64, Offset: 1536, Count: 4},
	}, l.Tiers)
	assert.Equal(t, 1792, l.ArenaSize)
	assert.Equal(t, 28, l.Slots)
	assert.Equal(t, 1792+28*HeaderSize, l.Footprint())
}

// TestPlan_UnitRoundsToMaxAlign checks that tiny finest blocks still start on
// MaxAlign boundaries.
func TestPlan_UnitRoundsToMaxAlign(t *testing.T) {
	l, err := Plan(2, 24, 2)
	require.NoError(t, err)

	assert.Equal(t, MaxAlign, l.Unit)
	assert.Equal(t, 32, l.Tiers[0].Stride)
	assert.Equal(t, 16, l.Tiers[1].Stride)
	assert.Equal(t, 12, l.Tiers[1].BlockSize)
	for _, tier := range l.Tiers {
		assert.Zero(t, tier.Offset%tier.Stride, "tier %d offset must be stride aligned", tier.Depth)
	}
}

// TestPlan_PoolFootprint checks the single-tier footprint formula.
func TestPlan_PoolFootprint(t *testing.T) {
	l, err := Plan(10, 64, 1)
	require.NoError(t, err)
	assert.Equal(t, 10*(64+HeaderSize), l.Footprint())
}

// TestPlan_Rejects covers every configuration error.
func TestPlan_Rejects(t *testing.T) {
	tests := []struct {
		name               string
		count, size, depth int
		want               error
	}{
		{"zero count", 0, 64, 1, ErrZeroBlockCount},
		{"negative count", -1, 64, 1, ErrZeroBlockCount},
		{"zero size", 4, 0, 1, ErrZeroBlockSize},
		{"zero depth", 4, 64, 0, ErrBadDepth},
		{"deep", 4, 1 << 20, MaxPoolDepth + 1, ErrBadDepth},
		{"indivisible", 4, 100, 4, ErrIndivisible},
		{"overflow", math.MaxInt / 8, 1 << 10, 1, ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.count, tt.size, tt.depth)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// TestLayout_TierAlign checks the alignment each tier can promise.
func TestLayout_TierAlign(t *testing.T) {
	l, err := Plan(4, 48, 1)
	require.NoError(t, err)
	assert.Equal(t, 16, l.TierAlign(0, 64))

	l, err = Plan(4, 1024, 3)
	require.NoError(t, err)
	assert.Equal(t, 64, l.TierAlign(0, 64), "capped by the arena base")
	assert.Equal(t, 256, l.TierAlign(2, 4096))
}
