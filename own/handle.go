package own

import "github.com/joshuapare/arenakit/alloc"

// Handle is the single owner of a constructed value. Reset destroys the value
// on the allocator it came from, so the usual pattern is
//
//	h := own.MakeUnique(a, init)
//	defer h.Reset()
//
// A Handle must not be copied once in use.
type Handle[T any] struct {
	a alloc.Allocator
	p *T
}

// MakeUnique constructs a T on a and returns a handle owning it. When the
// allocator is exhausted the handle is empty and Reset does nothing.
func MakeUnique[T any](a alloc.Allocator, init func(*T)) *Handle[T] {
	return &Handle[T]{a: a, p: Construct(a, init)}
}

// Get returns the owned value, or nil.
func (h *Handle[T]) Get() *T {
	if h == nil {
		return nil
	}
	return h.p
}

// Valid reports whether the handle owns a value.
func (h *Handle[T]) Valid() bool { return h.Get() != nil }

// Reset destroys the owned value. Later calls are no-ops.
func (h *Handle[T]) Reset() {
	if h == nil || h.p == nil {
		return
	}
	p := h.p
	h.p = nil
	Destroy(h.a, p)
}

// Release gives up ownership without destroying the value. The caller becomes
// responsible for calling Destroy.
func (h *Handle[T]) Release() *T {
	if h == nil {
		return nil
	}
	p := h.p
	h.p = nil
	return p
}
