package alloc

import (
	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
	"github.com/joshuapare/arenakit/internal/check"
)

// Stack is a linear bump allocator over a single arena.
//
// Allocations advance a cursor; Free rewinds it to where it stood before the
// freed block and its alignment padding, so blocks must be freed in exact
// reverse order of allocation. Out of order frees are not detected outside
// checked builds and silently discard every later allocation.
type Stack struct {
	arena  *arena.Arena
	cursor int

	// frames holds one entry per live allocation, oldest first. The last
	// entry is the only block that can grow in place.
	frames []frame
}

// frame is a live allocation's start and the cursor before its padding.
type frame struct {
	off  int
	prev int
}

// NewStack creates a stack of capacity bytes, heap-backed by default.
func NewStack(capacity int, opts ...Option) *Stack {
	if check.Enabled && capacity <= 0 {
		check.Fail("NewStack", ErrZeroCapacity, "capacity=%d", capacity)
	}
	return NewStackOn(newArena(capacity, opts))
}

// NewStackOn creates a stack spanning the whole of a and takes ownership of it.
func NewStackOn(a *arena.Arena) *Stack {
	s := &Stack{arena: a}
	if logAlloc {
		logInit("stack", "capacity", a.Len(), "backing", a.Backing().String())
	}
	return s
}

// fit returns the aligned offset for a request, or -1 when it does not fit.
func (s *Stack) fit(size, alignment int) int {
	base := s.arena.Base()
	off := int(buf.AlignUpPtr(base+uintptr(s.cursor), uintptr(alignment)) - base)
	if !buf.Has(s.arena.Len(), off, size) {
		return -1
	}
	return off
}

// Allocate bumps the cursor past the next aligned run of size bytes.
func (s *Stack) Allocate(size, alignment int) []byte {
	if check.Enabled {
		checkRequest("Stack.Allocate", size, alignment)
	}

	off := s.fit(size, alignment)
	if off < 0 {
		if logAlloc {
			logExhausted("stack", 0, size, s.cursor)
		}
		return nil
	}

	s.frames = append(s.frames, frame{off: off, prev: s.cursor})
	s.cursor = off + size

	return s.arena.Slice(off, size)
}

// Free rewinds the cursor to where it stood before b was allocated. b must be
// the most recent live allocation.
func (s *Stack) Free(b []byte) {
	off := s.arena.Offset(b)
	if check.Enabled {
		if b == nil {
			check.Fail("Stack.Free", ErrNilFree, "")
		}
		if off < 0 || off >= s.cursor {
			check.Fail("Stack.Free", ErrForeign, "offset %d, cursor %d", off, s.cursor)
		}
	}
	if off < 0 {
		return
	}

	i := len(s.frames) - 1
	for i >= 0 && s.frames[i].off > off {
		i--
	}
	live := i >= 0 && s.frames[i].off == off
	if check.Enabled {
		switch {
		case !live:
			check.Fail("Stack.Free", ErrForeign, "offset %d is not a block start", off)
		case i != len(s.frames)-1:
			check.Fail("Stack.Free", ErrOutOfOrder, "offset %d, top is %d", off, s.top())
		}
	}
	if !live {
		return
	}

	s.cursor = s.frames[i].prev
	s.frames = s.frames[:i]
}

// top returns the offset of the most recent live allocation, or -1.
func (s *Stack) top() int {
	if len(s.frames) == 0 {
		return -1
	}
	return s.frames[len(s.frames)-1].off
}

// Clear resets the cursor to zero.
func (s *Stack) Clear() {
	s.cursor = 0
	s.frames = s.frames[:0]

	if logAlloc {
		logClear("stack", s.arena.Len())
	}
}

// CanAllocate reports whether Allocate(size, alignment) would succeed now.
func (s *Stack) CanAllocate(size, alignment int) bool {
	return s.fit(size, alignment) >= 0
}

// Reallocate resizes b in place. Shrinking always succeeds; growing succeeds
// only for the most recent allocation and only while the arena has room.
func (s *Stack) Reallocate(b []byte, size int) []byte {
	if check.Enabled && size <= 0 {
		check.Fail("Stack.Reallocate", ErrZeroSize, "size=%d", size)
	}
	off := s.arena.Offset(b)
	if off < 0 {
		return nil
	}
	if off == s.top() {
		if !buf.Has(s.arena.Len(), off, size) {
			return nil
		}
		s.cursor = off + size
		return s.arena.Slice(off, size)
	}
	if size <= len(b) {
		return s.arena.Slice(off, size)
	}
	return nil
}

// AllocationCapacity returns the room b has to grow in place: the rest of the
// arena for the most recent allocation, len(b) otherwise.
func (s *Stack) AllocationCapacity(b []byte) int {
	off := s.arena.Offset(b)
	switch {
	case off < 0:
		return 0
	case off == s.top():
		return s.arena.Len() - off
	default:
		return len(b)
	}
}

// MaxSize returns the arena capacity.
func (s *Stack) MaxSize() int { return s.arena.Len() }

// MemoryUsage returns the cursor position.
func (s *Stack) MemoryUsage() int { return s.cursor }

// AllocationCount returns the number of live allocations.
func (s *Stack) AllocationCount() int { return len(s.frames) }

// Remaining returns the bytes between the cursor and the end of the arena.
func (s *Stack) Remaining() int { return s.arena.Len() - s.cursor }

// Arena exposes the backing region.
func (s *Stack) Arena() *arena.Arena { return s.arena }

// Close releases the arena.
func (s *Stack) Close() error {
	s.cursor, s.frames = 0, nil
	return s.arena.Release()
}

var _ Region = (*Stack)(nil)
