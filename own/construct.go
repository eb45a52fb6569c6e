package own

import (
	"unsafe"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/buf"
	"github.com/joshuapare/arenakit/internal/check"
)

// Destructor is implemented by types that release resources when destroyed.
type Destructor interface {
	Destruct()
}

// footprint returns the allocation size and alignment for one T. Zero-size
// types still take one byte so each construction has a distinct address.
func footprint[T any]() (size, align int) {
	var zero T
	size = int(unsafe.Sizeof(zero))
	align = int(unsafe.Alignof(zero))
	return max(size, 1), align
}

// Construct allocates a zeroed T from a and runs init on it. It returns nil,
// without running init, when the allocator is exhausted. init may be nil.
func Construct[T any](a alloc.Allocator, init func(*T)) *T {
	size, align := footprint[T]()
	b := a.Allocate(size, align)
	if b == nil {
		return nil
	}
	clear(b)

	p := (*T)(unsafe.Pointer(unsafe.SliceData(b)))
	if init != nil {
		init(p)
	}
	return p
}

// New constructs a copy of v in a.
func New[T any](a alloc.Allocator, v T) *T {
	return Construct(a, func(p *T) { *p = v })
}

// Destroy runs p's destructor, if any, and frees its memory. A nil p is a
// no-op.
func Destroy[T any](a alloc.Allocator, p *T) {
	if p == nil {
		return
	}
	if d, ok := any(p).(Destructor); ok {
		d.Destruct()
	}
	size, _ := footprint[T]()
	a.Free(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
}

// ConstructArray allocates count zeroed elements in one contiguous block.
// count must be positive. It returns nil when the allocator is exhausted or
// the total size overflows.
func ConstructArray[T any](a alloc.Allocator, count int) []T {
	if check.Enabled && count <= 0 {
		check.Fail("own.ConstructArray", alloc.ErrZeroCount, "count=%d", count)
	}
	b := allocArray[T](a, count)
	if b == nil {
		return nil
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), count)
}

// ConstructArrayOf allocates count copies of v.
func ConstructArrayOf[T any](a alloc.Allocator, count int, v T) []T {
	s := ConstructArray[T](a, count)
	for i := range s {
		s[i] = v
	}
	return s
}

// arrayBytes returns the byte size of count elements.
func arrayBytes[T any](count int) (int, bool) {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return 1, true
	}
	return buf.MulOverflowSafe(int(unsafe.Sizeof(zero)), count)
}

func allocArray[T any](a alloc.Allocator, count int) []byte {
	if count <= 0 {
		return nil
	}
	total, ok := arrayBytes[T](count)
	if !ok {
		return nil
	}
	_, align := footprint[T]()
	return a.Allocate(total, align)
}

// DestroyArray destructs the elements of s in reverse order and frees the
// block. s must be a whole slice returned by ConstructArray.
func DestroyArray[T any](a alloc.Allocator, s []T) {
	if check.Enabled && len(s) == 0 {
		check.Fail("own.DestroyArray", alloc.ErrZeroCount, "len=0")
	}
	if len(s) == 0 {
		return
	}
	for i := len(s) - 1; i >= 0; i-- {
		if d, ok := any(&s[i]).(Destructor); ok {
			d.Destruct()
		}
	}
	size, _ := arrayBytes[T](len(s))
	a.Free(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size))
}
