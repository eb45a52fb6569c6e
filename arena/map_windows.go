//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapRegion reserves and commits size bytes of private read/write memory.
func mapRegion(size int, lock bool) ([]byte, int, func() error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, 0, nil, err
	}
	if lock {
		if err := windows.VirtualLock(addr, uintptr(size)); err != nil {
			_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
			return nil, 0, nil, err
		}
	}
	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}
	// VirtualAlloc reservations are aligned to the allocation granularity (64 KiB).
	return mem, 1 << 16, release, nil
}
