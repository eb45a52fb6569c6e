// Package arena provides the fixed-size backing region that arenakit
// allocators carve allocations from.
//
// # Overview
//
// An Arena is one contiguous byte region sized exactly once at construction.
// It never grows, shrinks or hands memory back to the system piecemeal; the
// whole region is returned at once by Release. Allocators own their arena for
// their entire lifetime and address blocks by byte offset from Base.
//
// # Backings
//
//   - Heap: a Go byte slice, over-allocated so that Base is aligned to BaseAlign.
//   - Mapped: an anonymous private mapping obtained from the operating system
//     (mmap on unix, VirtualAlloc on windows). Base is page aligned and the
//     pages can optionally be locked into RAM. Platforms without a mapping
//     primitive fall back to Heap.
//
// # Garbage Collection
//
// Mapped memory is invisible to the Go garbage collector, and Heap memory is a
// plain []byte that the collector does not scan for pointers. Values stored in
// an arena must never hold the only reference to a heap object.
//
// # Thread Safety
//
// Arena instances are not thread-safe.
package arena
