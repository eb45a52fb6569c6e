//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapRegion creates an anonymous private read/write mapping of size bytes.
func mapRegion(size int, lock bool) ([]byte, int, func() error, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, 0, nil, err
	}
	if lock {
		if err := unix.Mlock(mem); err != nil {
			_ = unix.Munmap(mem)
			return nil, 0, nil, err
		}
	}
	release := func() error {
		err := unix.Munmap(mem)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return mem, unix.Getpagesize(), release, nil
}
