package alloc

import "github.com/joshuapare/arenakit/arena"

// Pool is a fixed-block allocator: a Multipool with a single tier.
//
// Construction threads the free list through every block in address order.
// Allocate pops the head and Free pushes onto it, so reuse is LIFO. Requests
// larger than BlockSize fail.
type Pool struct {
	Multipool
}

// NewPool creates a pool of blockCount blocks of blockSize bytes.
// Both must be positive.
//
// Blocks sit on strides of blockSize rounded up to MaxAlign, so they are
// aligned to the lowest set bit of that stride, capped by the arena base
// alignment: a 100-byte pool (112-byte stride) guarantees 16, a 128-byte pool
// guarantees 64. Allocate returns nil for a stricter alignment even when
// blocks are free; Tiers()[0].Align reports the guarantee.
func NewPool(blockCount, blockSize int, opts ...Option) *Pool {
	l := mustPlan("NewPool", blockCount, blockSize, 1)
	p := &Pool{}
	p.init(newArena(l.ArenaSize, opts), l)
	return p
}

// NewPoolOn creates a pool over an existing arena of at least
// Plan(blockCount, blockSize, 1).ArenaSize bytes and takes ownership of it.
func NewPoolOn(a *arena.Arena, blockCount, blockSize int) *Pool {
	l := mustPlan("NewPoolOn", blockCount, blockSize, 1)
	p := &Pool{}
	p.init(a, l)
	return p
}

// BlockSize returns the usable bytes per block.
func (p *Pool) BlockSize() int { return p.layout.BlockSize }

// BlockCount returns the number of blocks.
func (p *Pool) BlockCount() int { return p.layout.BlockCount }

// FreeCount returns the number of blocks on the free list.
func (p *Pool) FreeCount() int { return p.fl.access[0].free }

var _ Region = (*Pool)(nil)
