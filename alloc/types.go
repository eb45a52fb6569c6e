package alloc

import (
	"unsafe"

	"github.com/joshuapare/arenakit/internal/check"
)

// MaxAlign is the alignment suitable for any Go scalar type. Pool blocks are
// laid out on MaxAlign boundaries.
const MaxAlign = 16

// HeaderSize is the bookkeeping cost of one block header.
const HeaderSize = int(unsafe.Sizeof(blockHeader{}))

// Allocator is the capability set every allocation strategy implements.
//
// Implementations:
//   - Stack: bump allocator with LIFO release
//   - Pool: fixed-size blocks
//   - Multipool: tiered fixed-size blocks
type Allocator interface {
	// Allocate returns exactly size bytes aligned to alignment, or nil when
	// the request cannot currently be satisfied. size and alignment must be
	// positive and alignment a power of two.
	Allocate(size, alignment int) []byte

	// Free returns a slice obtained from Allocate. It may have been resliced
	// as long as it still starts at the allocation's first byte.
	Free(b []byte)

	// Clear invalidates every outstanding allocation. No destructors run.
	Clear()
}

// Region is an Allocator that also reports on and manages its arena.
type Region interface {
	Allocator

	// CanAllocate reports whether Allocate(size, alignment) would succeed now.
	CanAllocate(size, alignment int) bool

	// Reallocate resizes b in place. It returns the resized slice, or nil when
	// the allocation cannot hold size bytes without moving; b stays valid then.
	Reallocate(b []byte, size int) []byte

	// AllocationCapacity returns how many bytes b can hold in place.
	AllocationCapacity(b []byte) int

	// MaxSize returns the total footprint: arena bytes plus block headers.
	MaxSize() int

	// MemoryUsage returns the bytes currently handed out.
	MemoryUsage() int

	// AllocationCount returns the number of live allocations.
	AllocationCount() int

	// Close releases the arena. The allocator is unusable afterwards.
	Close() error
}

// PreconditionError is the panic value raised by checked builds.
type PreconditionError = check.Violation
