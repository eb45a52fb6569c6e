// Package alloc provides region allocators that carve allocations out of a
// single pre-sized arena.
//
// # Overview
//
// Every allocator owns exactly one arena (see package arena) for its entire
// lifetime. Allocation and release never touch the Go heap or the operating
// system; they only move bookkeeping. When a request cannot be satisfied the
// allocator returns nil rather than growing.
//
// # Allocator Interface
//
// The contract every strategy implements:
//
//   - Allocate(size, alignment): a slice of exactly size bytes whose first byte
//     is alignment-aligned, or nil
//   - Free(b): give a previously allocated slice back
//   - Clear(): forget every outstanding allocation in one step
//
// Region extends the contract with introspection (MaxSize, MemoryUsage,
// AllocationCount), in-place Reallocate, CanAllocate, AllocationCapacity and
// Close.
//
// # Implementations
//
// Stack: linear bump allocator
//
//   - O(1) allocation, any power-of-two alignment
//   - LIFO release only: Free must receive the most recent live allocation
//
// Multipool: tiered fixed-block pools
//
//   - PoolDepth tiers, tier d holds blocks of BlockSize >> d
//   - O(1) allocation and release via per-tier free lists
//   - An empty tier splits one block borrowed from the nearest larger tier
//   - Freed blocks stay in the tier they were split into (no coalescing);
//     Clear restores the original partition
//
// Pool: a Multipool with a single tier.
//
// # Usage Example
//
//	p := alloc.NewPool(128, 256)
//	defer p.Close()
//
//	b := p.Allocate(200, 8)
//	if b == nil {
//	    return errPoolFull
//	}
//	copy(b, payload)
//	p.Free(b)
//
// # Configuration
//
// The plain constructors (NewStack, NewPool, NewMultipool) treat bad
// parameters as programmer errors and accept options such as
// WithBacking(arena.Mapped). Tools that read sizes from files build a Config
// instead; New validates it and reports every failure as an error:
//
//	r, err := alloc.New(alloc.Config{Kind: alloc.KindMultipool, BlockCount: 64, BlockSize: 4096, PoolDepth: 4})
//
// # Free Lists
//
// Block headers are not stored inside the arena. Each allocator keeps a side
// table with one header per slot of its finest granularity; free lists are
// chains of slot indices through that table, and a block's slot is recovered
// from the offset of the slice handed to Free.
//
// # Checked Builds
//
// Preconditions (zero sizes, bad alignments, nil slices) and misuse (double
// free, out-of-order Stack free, foreign slices, writes to freed blocks) are
// unchecked by default. Building with `-tags debug` turns them into panics
// carrying a *PreconditionError that unwraps to one of the sentinel errors in
// this package.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Give each goroutine its own
// allocator or synchronize access externally.
//
// # Related Packages
//
//   - github.com/joshuapare/arenakit/arena: backing memory regions
//   - github.com/joshuapare/arenakit/own: typed construction and single-owner handles
package alloc
