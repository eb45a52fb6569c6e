//go:build debug

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/internal/check"
)

// violation runs fn and returns the precondition panic it raised, if any.
func violation(fn func()) (v *PreconditionError) {
	defer func() { v = check.Recover(recover()) }()
	fn()
	return nil
}

func requireViolation(t *testing.T, want error, fn func()) {
	t.Helper()
	v := violation(fn)
	require.NotNil(t, v, "expected a precondition panic")
	assert.ErrorIs(t, v, want)
}

func TestChecked_Preconditions(t *testing.T) {
	m := NewMultipool(2, 64, 2)
	s := NewStack(64)

	requireViolation(t, ErrZeroSize, func() { m.Allocate(0, 8) })
	requireViolation(t, ErrBadAlignment, func() { m.Allocate(8, 0) })
	requireViolation(t, ErrBadAlignment, func() { s.Allocate(8, 3) })
	requireViolation(t, ErrNilFree, func() { m.Free(nil) })
	requireViolation(t, ErrNilFree, func() { s.Free(nil) })
	requireViolation(t, ErrZeroBlockCount, func() { NewPool(0, 64) })
	requireViolation(t, ErrIndivisible, func() { NewMultipool(1, 100, 4) })
	requireViolation(t, ErrZeroCapacity, func() { NewStack(0) })
}

func TestChecked_DoubleFree(t *testing.T) {
	p := NewPool(4, 32)
	b := p.Allocate(32, 8)
	p.Free(b)
	requireViolation(t, ErrDoubleFree, func() { p.Free(b) })
}

func TestChecked_ForeignFree(t *testing.T) {
	m := NewMultipool(2, 128, 2)
	b := m.Allocate(128, 8)
	require.NotNil(t, b)

	requireViolation(t, ErrForeign, func() { m.Free(make([]byte, 8)) })
	requireViolation(t, ErrForeign, func() { m.Free(b[16:]) })
}

func TestChecked_UseAfterFree(t *testing.T) {
	p := NewPool(2, 64)
	b := p.Allocate(64, 8)
	p.Free(b)
	b[3] ^= 0xff

	requireViolation(t, ErrCorrupted, func() { p.Allocate(64, 8) })
}

func TestChecked_SplitKeepsCanaries(t *testing.T) {
	m := NewMultipool(1, 256, 3)
	for range 7 {
		require.Nil(t, violation(func() { require.NotNil(t, m.Allocate(64, 8)) }))
	}
	m.Clear()
	assert.Nil(t, violation(func() { m.Allocate(256, 8) }))
}

func TestChecked_StackOrder(t *testing.T) {
	s := NewStack(256)
	a := s.Allocate(16, 8)
	b := s.Allocate(16, 8)

	requireViolation(t, ErrOutOfOrder, func() { s.Free(a) })
	requireViolation(t, ErrForeign, func() { s.Free(make([]byte, 1)) })
	requireViolation(t, ErrForeign, func() { s.Free(b[4:]) })

	s.Free(b)
	requireViolation(t, ErrForeign, func() { s.Free(b) })
}
