package arena

import "errors"

var (
	// ErrBadSize indicates a non-positive or overflowing arena size.
	ErrBadSize = errors.New("arena: size must be positive")

	// ErrMapFail indicates the operating system refused to map the region.
	ErrMapFail = errors.New("arena: map failed")
)
