package alloc

import "errors"

// Configuration errors, returned by Plan, Config.Validate and New.
var (
	// ErrZeroCapacity indicates a Stack with no capacity.
	ErrZeroCapacity = errors.New("alloc: capacity must be positive")

	// ErrZeroBlockCount indicates a pool with no blocks.
	ErrZeroBlockCount = errors.New("alloc: block count must be positive")

	// ErrZeroBlockSize indicates a pool with zero-sized blocks.
	ErrZeroBlockSize = errors.New("alloc: block size must be positive")

	// ErrBadDepth indicates a pool depth outside 1..MaxPoolDepth.
	ErrBadDepth = errors.New("alloc: pool depth out of range")

	// ErrIndivisible indicates a block size that cannot be halved PoolDepth-1 times.
	ErrIndivisible = errors.New("alloc: block size not divisible across tiers")

	// ErrTooLarge indicates a footprint that overflows int or the slot index.
	ErrTooLarge = errors.New("alloc: arena too large")

	// ErrUnknownKind indicates an unrecognized allocator kind.
	ErrUnknownKind = errors.New("alloc: unknown allocator kind")
)

// Precondition and misuse classes, carried by *PreconditionError in checked builds.
var (
	// ErrZeroSize indicates a zero or negative allocation size.
	ErrZeroSize = errors.New("alloc: size must be positive")

	// ErrBadAlignment indicates an alignment that is not a positive power of two.
	ErrBadAlignment = errors.New("alloc: alignment must be a positive power of two")

	// ErrZeroCount indicates an array operation on zero elements.
	ErrZeroCount = errors.New("alloc: element count must be positive")

	// ErrNilFree indicates Free was handed a nil slice.
	ErrNilFree = errors.New("alloc: cannot free nil")

	// ErrForeign indicates a slice that was not allocated from this allocator.
	ErrForeign = errors.New("alloc: slice not owned by this allocator")

	// ErrDoubleFree indicates a block freed while already free.
	ErrDoubleFree = errors.New("alloc: double free")

	// ErrOutOfOrder indicates a Stack free that is not the most recent allocation.
	ErrOutOfOrder = errors.New("alloc: stack free out of order")

	// ErrCorrupted indicates a free block was written to after it was freed.
	ErrCorrupted = errors.New("alloc: free block modified after free")
)
