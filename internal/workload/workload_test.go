package workload

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/alloc"
)

func TestLoad_Multipool(t *testing.T) {
	w, err := Load(filepath.Join("testdata", "multipool.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "split and clear", w.Name)
	assert.Equal(t, alloc.KindMultipool, w.Allocator.Kind)
	require.Len(t, w.Steps, 9)
	assert.Equal(t, alloc.MaxAlign, w.Steps[0].Align, "align defaults to MaxAlign")
	assert.Equal(t, 64, w.Steps[3].Align)
	assert.Zero(t, w.Steps[4].Align, "realloc takes no alignment")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown op", "allocator: {kind: stack, capacity: 64}\nsteps: [{op: grow, name: a}]", ErrUnknownOp},
		{"alloc without name", "allocator: {kind: stack, capacity: 64}\nsteps: [{op: alloc, size: 8}]", ErrBadStep},
		{"alloc without size", "allocator: {kind: stack, capacity: 64}\nsteps: [{op: alloc, name: a}]", ErrBadStep},
		{"bad align", "allocator: {kind: stack, capacity: 64}\nsteps: [{op: alloc, name: a, size: 8, align: 12}]", ErrBadStep},
		{"free without name", "allocator: {kind: stack, capacity: 64}\nsteps: [{op: free}]", ErrBadStep},
		{"bad allocator", "allocator: {kind: pool, block_count: 0, block_size: 8}\nsteps: []", alloc.ErrZeroBlockCount},
		{"empty", "", ErrBadStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("allocator: {kind: stack, capacity: 64}\nsteps: []\nextra: 1"))
	require.Error(t, err, "unknown fields are rejected")
}

func TestRun_Multipool(t *testing.T) {
	w, err := Load(filepath.Join("testdata", "multipool.yaml"))
	require.NoError(t, err)
	r, err := w.Build()
	require.NoError(t, err)
	defer r.Close()

	var seen []int
	res, err := Run(context.Background(), r, w.Steps, func(o Outcome) { seen = append(seen, o.Index) })
	require.NoError(t, err)

	require.Len(t, res.Steps, 9)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, seen)

	// Third 64-byte request splits a 128-byte block.
	assert.True(t, res.Steps[2].OK)
	assert.True(t, res.Steps[4].OK, "realloc within a 256-byte block")
	assert.False(t, res.Steps[6].OK, "300 bytes exceeds every tier")
	assert.Equal(t, 1, res.Failures)

	assert.Equal(t, 64+64+64+256, res.PeakUsage)
	assert.Equal(t, 4, res.PeakCount)

	last := res.Steps[8]
	assert.True(t, last.OK)
	assert.Equal(t, 0, last.Offset, "clear restored tier 0's first block")
	assert.Equal(t, 256, res.Final.MemoryUsage)
	require.Len(t, res.Final.Tiers, 3)
	assert.Zero(t, res.Final.Tiers[1].SplitAway)
}

func TestRun_StackReuse(t *testing.T) {
	w, err := Load(filepath.Join("testdata", "stack.yaml"))
	require.NoError(t, err)
	r, err := w.Build()
	require.NoError(t, err)
	defer r.Close()

	res, err := Run(context.Background(), r, w.Steps, nil)
	require.NoError(t, err)

	assert.Equal(t, 96, res.Steps[1].Offset)
	assert.Equal(t, 96, res.Steps[2].Usage)
	assert.Equal(t, 96, res.Steps[3].Offset, "tail reuses scratch")
	assert.False(t, res.Steps[4].OK)
	assert.Equal(t, 1024, res.Final.MemoryUsage)
	assert.Empty(t, res.Final.Tiers)
}

func TestRun_NameErrors(t *testing.T) {
	p := alloc.NewPool(4, 16)
	defer p.Close()

	_, err := Run(context.Background(), p, []Step{{Op: OpFree, Name: "ghost"}}, nil)
	require.ErrorIs(t, err, ErrUnknownName)

	_, err = Run(context.Background(), p, []Step{{Op: OpRealloc, Name: "ghost", Size: 4}}, nil)
	require.ErrorIs(t, err, ErrUnknownName)

	res, err := Run(context.Background(), p, []Step{
		{Op: OpAlloc, Name: "a", Size: 8},
		{Op: OpAlloc, Name: "a", Size: 8},
	}, nil)
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, res.Steps, 1)
	assert.Equal(t, 1, res.Final.AllocationCount)

	_, err = Run(context.Background(), p, []Step{{Op: "grow"}}, nil)
	require.ErrorIs(t, err, ErrUnknownOp)
}

func TestRun_Cancelled(t *testing.T) {
	p := alloc.NewPool(4, 16)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	steps := []Step{
		{Op: OpAlloc, Name: "a", Size: 8, Align: 8},
		{Op: OpAlloc, Name: "b", Size: 8, Align: 8},
	}
	res, err := Run(ctx, p, steps, func(Outcome) { cancel() })
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, res.Steps, 1)
}

func TestRun_FreeThenReuseName(t *testing.T) {
	p := alloc.NewPool(1, 32)
	defer p.Close()

	res, err := Run(context.Background(), p, []Step{
		{Op: OpAlloc, Name: "x", Size: 32, Align: 8},
		{Op: OpFree, Name: "x"},
		{Op: OpAlloc, Name: "x", Size: 32, Align: 8},
	}, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Failures)
	assert.Equal(t, res.Steps[0].Offset, res.Steps[2].Offset)
}
