package arena

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/arenakit/internal/buf"
)

// BaseAlign is the minimum alignment of every arena's first byte.
const BaseAlign = 64

// Backing selects where arena memory comes from.
type Backing uint8

const (
	// Heap backs the arena with a Go byte slice.
	Heap Backing = iota
	// Mapped backs the arena with an anonymous operating system mapping.
	Mapped
)

// String returns the backing name used in configuration files.
func (b Backing) String() string {
	switch b {
	case Heap:
		return "heap"
	case Mapped:
		return "mapped"
	default:
		return fmt.Sprintf("backing(%d)", uint8(b))
	}
}

// ParseBacking maps a configuration name back to a Backing. The empty string is Heap.
func ParseBacking(s string) (Backing, error) {
	switch s {
	case "", "heap":
		return Heap, nil
	case "mapped", "mmap":
		return Mapped, nil
	default:
		return Heap, fmt.Errorf("arena: unknown backing %q", s)
	}
}

// Options configures arena creation.
type Options struct {
	Backing Backing

	// Lock pins mapped pages into RAM. Ignored for Heap arenas.
	Lock bool
}

// Arena is a fixed-size region of memory with an aligned base address.
type Arena struct {
	mem     []byte // aligned view handed to allocators
	base    uintptr
	align   int
	backing Backing

	// release unmaps Mapped arenas; nil for Heap.
	release func() error
}

// New creates an arena of exactly size usable bytes.
func New(size int, opts Options) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	if opts.Backing == Mapped {
		mem, align, release, err := mapRegion(size, opts.Lock)
		if err != nil {
			return nil, fmt.Errorf("%w: %d bytes: %v", ErrMapFail, size, err)
		}
		if mem != nil {
			return &Arena{
				mem:     mem,
				base:    uintptr(unsafe.Pointer(unsafe.SliceData(mem))),
				align:   align,
				backing: Mapped,
				release: release,
			}, nil
		}
		// No mapping primitive on this platform; fall through to Heap.
	}

	total, ok := buf.AddOverflowSafe(size, BaseAlign)
	if !ok {
		return nil, fmt.Errorf("%w: %d overflows", ErrBadSize, size)
	}
	raw := make([]byte, total)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	shift := int(buf.AlignUpPtr(addr, BaseAlign) - addr)
	mem := raw[shift : shift+size : shift+size]

	return &Arena{
		mem:     mem,
		base:    addr + uintptr(shift),
		align:   BaseAlign,
		backing: Heap,
	}, nil
}

// MustNew is New for sizes known to be valid; it panics on error.
func MustNew(size int, opts Options) *Arena {
	a, err := New(size, opts)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns the whole region.
func (a *Arena) Bytes() []byte { return a.mem }

// Len returns the region size in bytes.
func (a *Arena) Len() int { return len(a.mem) }

// Base returns the address of the first byte.
func (a *Arena) Base() uintptr { return a.base }

// Align returns the guaranteed alignment of Base.
func (a *Arena) Align() int { return a.align }

// Backing reports where the memory came from.
func (a *Arena) Backing() Backing { return a.backing }

// Released reports whether Release has been called.
func (a *Arena) Released() bool { return a.mem == nil }

// Slice returns [off, off+n) with its capacity clipped to n so appends cannot
// spill into neighbouring allocations. The range is not bounds-checked beyond
// what slicing itself enforces.
func (a *Arena) Slice(off, n int) []byte {
	end := off + n
	return a.mem[off:end:end]
}

// Offset returns the offset of b's first byte within the arena, or -1 when b
// does not point into it. b may have zero length as long as it kept the
// original data pointer.
func (a *Arena) Offset(b []byte) int {
	p := unsafe.SliceData(b)
	if p == nil {
		return -1
	}
	addr := uintptr(unsafe.Pointer(p))
	if addr < a.base || addr >= a.base+uintptr(len(a.mem)) {
		return -1
	}
	return int(addr - a.base)
}

// Release returns the region to the system. The arena is unusable afterwards;
// calling Release twice is a no-op.
func (a *Arena) Release() error {
	if a.mem == nil {
		return nil
	}
	release := a.release
	a.mem, a.base, a.release = nil, 0, nil
	if release != nil {
		return release()
	}
	return nil
}
