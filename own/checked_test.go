//go:build debug

package own

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/check"
)

func TestChecked_ZeroCount(t *testing.T) {
	s := alloc.NewStack(64)

	for _, fn := range []func(){
		func() { ConstructArray[int](s, 0) },
		func() { DestroyArray[int](s, nil) },
	} {
		var v *check.Violation
		func() {
			defer func() { v = check.Recover(recover()) }()
			fn()
		}()
		require.NotNil(t, v)
		require.ErrorIs(t, v, alloc.ErrZeroCount)
	}
}
