package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// addr returns the address of b's first byte.
func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// span is a live allocation's byte range within its arena.
type span struct{ off, end int }

// requireDisjoint fails when any two spans overlap.
func requireDisjoint(t testing.TB, spans []span) {
	t.Helper()
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			require.False(t, a.off < b.end && b.off < a.end,
				"allocations [%d,%d) and [%d,%d) overlap", a.off, a.end, b.off, b.end)
		}
	}
}

// requireConserved checks that every tier accounts for all of its blocks:
// those it started with plus those it borrowed are either free, handed out,
// or split into finer tiers.
func requireConserved(t testing.TB, m *Multipool) {
	t.Helper()
	for _, s := range m.Tiers() {
		require.Equal(t, m.Layout().BlockCount+s.Borrowed, s.Free+s.Allocated+s.SplitAway,
			"tier %d: %+v", s.Depth, s)
	}
}
