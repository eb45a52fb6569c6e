package alloc

import (
	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
	"github.com/joshuapare/arenakit/internal/check"
)

// Multipool is a tiered fixed-block allocator.
//
// Tier 0 holds blocks of BlockSize bytes and tier d holds blocks of
// BlockSize>>d bytes; each tier is initially assigned BlockCount blocks.
// Requests are served from the smallest tier that fits. When that tier is
// empty, one block is borrowed from the nearest larger tier that has a free
// block and split into same-size siblings of the requested tier.
//
// Freed blocks return to the tier recorded in their header and are never
// merged back into larger blocks; Clear restores the original partition.
type Multipool struct {
	arena  *arena.Arena
	layout Layout
	align  []int // guaranteed alignment per tier

	fl freeList

	usedMemory     int
	numAllocations int

	debug poolDebug
}

// TierStats is a snapshot of one tier's bookkeeping.
type TierStats struct {
	Depth     int `json:"depth"`
	BlockSize int `json:"block_size"`
	Align     int `json:"align"`
	Free      int `json:"free"`
	Allocated int `json:"allocated"`
	SplitAway int `json:"split_away"` // original-or-borrowed blocks split into finer tiers
	Borrowed  int `json:"borrowed"`   // blocks gained from splitting coarser tiers
}

// NewMultipool creates a Multipool, heap-backed unless opts say otherwise.
// blockCount and blockSize must be positive, poolDepth in 1..MaxPoolDepth,
// and blockSize divisible by 2^(poolDepth-1).
func NewMultipool(blockCount, blockSize, poolDepth int, opts ...Option) *Multipool {
	l := mustPlan("NewMultipool", blockCount, blockSize, poolDepth)
	m := &Multipool{}
	m.init(newArena(l.ArenaSize, opts), l)
	return m
}

// NewMultipoolOn creates a Multipool over an existing arena, which must hold
// at least Plan(...).ArenaSize bytes. The Multipool takes ownership of a.
func NewMultipoolOn(a *arena.Arena, blockCount, blockSize, poolDepth int) *Multipool {
	l := mustPlan("NewMultipoolOn", blockCount, blockSize, poolDepth)
	m := &Multipool{}
	m.init(a, l)
	return m
}

func mustPlan(op string, blockCount, blockSize, poolDepth int) Layout {
	if check.Enabled {
		if _, err := Plan(blockCount, blockSize, poolDepth); err != nil {
			check.Fail(op, err, "block_count=%d block_size=%d pool_depth=%d", blockCount, blockSize, poolDepth)
		}
	}
	l, err := planLayout(blockCount, blockSize, poolDepth)
	if err != nil {
		panic(err)
	}
	return l
}

func (m *Multipool) init(a *arena.Arena, l Layout) {
	if check.Enabled && a.Len() < l.ArenaSize {
		check.Fail("Multipool.init", ErrTooLarge, "arena=%d need=%d", a.Len(), l.ArenaSize)
	}
	m.arena = a
	m.layout = l
	m.align = make([]int, l.Depth)
	for d := range l.Depth {
		m.align[d] = l.TierAlign(d, a.Align())
	}
	m.fl = freeList{
		headers: make([]blockHeader, l.Slots),
		access:  make([]accessHeader, l.Depth),
	}
	m.Clear()

	if logAlloc {
		logInit("multipool", "block_count", l.BlockCount, "block_size", l.BlockSize,
			"pool_depth", l.Depth, "arena", l.ArenaSize, "backing", a.Backing().String())
	}
}

// tierFor returns the smallest tier whose blocks hold size bytes at the
// requested alignment, or -1.
func (m *Multipool) tierFor(size, alignment int) int {
	for d := m.layout.Depth - 1; d >= 0; d-- {
		if m.layout.Tiers[d].BlockSize >= size && m.align[d] >= alignment {
			return d
		}
	}
	return -1
}

// Allocate pops a block from the smallest fitting tier, splitting a larger
// block when that tier is empty. It returns nil when no tier at or above the
// target has a free block, or when size exceeds the largest block.
func (m *Multipool) Allocate(size, alignment int) []byte {
	if check.Enabled {
		checkRequest("Multipool.Allocate", size, alignment)
	}

	t := m.tierFor(size, alignment)
	if t < 0 {
		if logAlloc {
			logReject("multipool", size, alignment)
		}
		return nil
	}

	slot := m.fl.pop(t)
	if slot == nilSlot {
		slot = m.split(t)
		if slot == nilSlot {
			if logAlloc {
				logExhausted("multipool", t, size, m.usedMemory)
			}
			return nil
		}
	}
	m.debug.onAllocate(m, t, slot)

	m.fl.access[t].allocated++
	m.usedMemory += m.layout.Tiers[t].BlockSize
	m.numAllocations++

	return m.arena.Slice(slot*m.layout.Unit, size)
}

// split borrows a block from the nearest larger tier with a free block and
// divides it into 2^(t-d) tier-t siblings. The first sibling is returned and
// the rest are pushed onto tier t in ascending address order.
func (m *Multipool) split(t int) int {
	for d := t - 1; d >= 0; d-- {
		slot := m.fl.pop(d)
		if slot == nilSlot {
			continue
		}
		m.debug.onAllocate(m, d, slot)

		n := 1 << (t - d)
		step := m.layout.slotStride(t)
		for i := n - 1; i >= 1; i-- {
			sib := slot + i*step
			m.fl.push(t, sib)
			m.debug.onRelease(m, t, sib)
		}
		m.fl.headers[slot].depth = uint16(t)
		m.debug.onRelease(m, t, slot)

		m.fl.access[d].splitAway++
		m.fl.access[t].borrowed += n

		if logAlloc {
			logSplit("multipool", d, t, n)
		}
		return slot
	}
	return nilSlot
}

// Free pushes b's block onto the free list of the tier recorded in its header.
func (m *Multipool) Free(b []byte) {
	off := m.arena.Offset(b)
	if check.Enabled {
		if b == nil {
			check.Fail("Multipool.Free", ErrNilFree, "")
		}
		if off < 0 {
			check.Fail("Multipool.Free", ErrForeign, "addr outside arena")
		}
	}
	if off < 0 {
		return
	}

	slot := off / m.layout.Unit
	t := int(m.fl.headers[slot].depth)
	m.debug.onFree(m, t, slot, off)

	m.fl.push(t, slot)
	m.debug.onRelease(m, t, slot)

	m.fl.access[t].allocated--
	m.usedMemory -= m.layout.Tiers[t].BlockSize
	m.numAllocations--
}

// Clear restores every tier's original free list, discarding split history.
func (m *Multipool) Clear() {
	m.fl.reset(m.layout)
	m.usedMemory = 0
	m.numAllocations = 0
	m.debug.onClear(m)

	if logAlloc {
		logClear("multipool", m.layout.ArenaSize)
	}
}

// CanAllocate reports whether Allocate(size, alignment) would succeed now.
func (m *Multipool) CanAllocate(size, alignment int) bool {
	t := m.tierFor(size, alignment)
	if t < 0 {
		return false
	}
	for d := t; d >= 0; d-- {
		if m.fl.access[d].free > 0 {
			return true
		}
	}
	return false
}

// Reallocate resizes b within its block. It returns nil when size exceeds the
// block size of b's tier.
func (m *Multipool) Reallocate(b []byte, size int) []byte {
	if check.Enabled && size <= 0 {
		check.Fail("Multipool.Reallocate", ErrZeroSize, "size=%d", size)
	}
	off := m.arena.Offset(b)
	if off < 0 {
		return nil
	}
	t := int(m.fl.headers[off/m.layout.Unit].depth)
	if size > m.layout.Tiers[t].BlockSize {
		return nil
	}
	return m.arena.Slice(off, size)
}

// AllocationCapacity returns the block size of b's tier, or 0 for nil.
func (m *Multipool) AllocationCapacity(b []byte) int {
	off := m.arena.Offset(b)
	if off < 0 {
		return 0
	}
	return m.layout.Tiers[m.fl.headers[off/m.layout.Unit].depth].BlockSize
}

// MaxSize returns the arena size plus the header table.
func (m *Multipool) MaxSize() int { return m.layout.Footprint() }

// MemoryUsage returns the summed block sizes of live allocations.
func (m *Multipool) MemoryUsage() int { return m.usedMemory }

// AllocationCount returns the number of live allocations.
func (m *Multipool) AllocationCount() int { return m.numAllocations }

// Layout returns the arena plan.
func (m *Multipool) Layout() Layout { return m.layout }

// Depth returns the number of tiers.
func (m *Multipool) Depth() int { return m.layout.Depth }

// TierBlockSize returns the block size of tier d.
func (m *Multipool) TierBlockSize(d int) int { return m.layout.Tiers[d].BlockSize }

// Tiers returns per-tier statistics.
func (m *Multipool) Tiers() []TierStats {
	out := make([]TierStats, m.layout.Depth)
	for d, a := range m.fl.access {
		out[d] = TierStats{
			Depth:     d,
			BlockSize: m.layout.Tiers[d].BlockSize,
			Align:     m.align[d],
			Free:      a.free,
			Allocated: a.allocated,
			SplitAway: a.splitAway,
			Borrowed:  a.borrowed,
		}
	}
	return out
}

// Arena exposes the backing region.
func (m *Multipool) Arena() *arena.Arena { return m.arena }

// Close releases the arena.
func (m *Multipool) Close() error {
	m.fl = freeList{}
	return m.arena.Release()
}

// checkRequest asserts the Allocate preconditions shared by all strategies.
func checkRequest(op string, size, alignment int) {
	if size <= 0 {
		check.Fail(op, ErrZeroSize, "size=%d", size)
	}
	if !buf.IsPow2(alignment) {
		check.Fail(op, ErrBadAlignment, "alignment=%d", alignment)
	}
}

var _ Region = (*Multipool)(nil)
