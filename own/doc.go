// Package own layers typed construction and single-owner handles on top of
// any alloc.Allocator.
//
// # Construction
//
// Construct allocates sizeof(T) bytes at alignof(T), zeroes them and runs an
// initializer on the result:
//
//	p := own.Construct(pool, func(v *Vertex) { v.X, v.Y = 1, 2 })
//	if p == nil {
//	    // pool exhausted; the initializer did not run
//	}
//	defer own.Destroy(pool, p)
//
// Destroy calls Destruct on values whose pointer type implements Destructor
// and then returns the bytes to the allocator. It must be the only way a
// constructed value is torn down; Clear on the allocator runs no destructors.
//
// # Handles
//
// MakeUnique wraps a constructed value in a Handle bound to its allocator:
//
//	h := own.MakeUnique(stack, newMesh)
//	defer h.Reset()
//
// Reset destroys the value exactly once. Release detaches it, after which
// the caller owns the pointer and must Destroy it.
//
// # Garbage Collector
//
// Allocator memory is not scanned by the garbage collector. A value stored in
// an arena must not hold the only reference to a heap object: pointers,
// slices, maps, strings and interfaces inside T are invisible to the
// collector. Plain-data types are the intended use.
package own
