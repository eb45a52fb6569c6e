//go:build !debug

package alloc

// poolDebug is a no-op outside checked builds.
type poolDebug struct{}

func (poolDebug) onAllocate(*Multipool, int, int)  {}
func (poolDebug) onRelease(*Multipool, int, int)   {}
func (poolDebug) onFree(*Multipool, int, int, int) {}
func (poolDebug) onClear(*Multipool)               {}
