package alloc

import (
	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/logger"
)

// Option configures the arena behind a plain constructor.
type Option func(*arena.Options)

// WithBacking selects heap or mapped memory for the arena.
func WithBacking(b arena.Backing) Option {
	return func(o *arena.Options) { o.Backing = b }
}

// WithLock pins a mapped arena into RAM.
func WithLock() Option {
	return func(o *arena.Options) { o.Lock = true }
}

// newArena creates the arena for a plain constructor. A mapped arena that
// cannot be created falls back to the heap; callers that need to see the
// error use New with a Config.
func newArena(size int, opts []Option) *arena.Arena {
	var o arena.Options
	for _, opt := range opts {
		opt(&o)
	}
	a, err := arena.New(size, o)
	if err != nil && o.Backing != arena.Heap {
		logger.Warn("alloc: mapped arena unavailable, using heap", "size", size, "error", err)
		a, err = arena.New(size, arena.Options{})
	}
	if err != nil {
		panic(err)
	}
	return a
}
