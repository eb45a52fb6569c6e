//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly) && !windows

package arena

// mapRegion reports no mapping primitive; New falls back to a Heap arena.
func mapRegion(size int, lock bool) ([]byte, int, func() error, error) {
	return nil, 0, nil, nil
}
