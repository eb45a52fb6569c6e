//go:build debug

package alloc

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"

	"github.com/joshuapare/arenakit/internal/check"
)

// canaryLen is how many leading bytes of a free block carry its canary.
const canaryLen = 16

// poolDebug tags every block with its state and stamps free blocks with a
// slot-specific canary that is verified when the block is handed out again.
type poolDebug struct{}

func (poolDebug) onAllocate(m *Multipool, t, slot int) {
	h := &m.fl.headers[slot]
	if h.state != stateFree {
		check.Fail("Multipool.Allocate", ErrCorrupted, "slot %d on tier %d free list is not free", slot, t)
	}
	if !canaryIntact(m.canaryBytes(t, slot), slot, t) {
		check.Fail("Multipool.Allocate", ErrCorrupted, "slot %d tier %d", slot, t)
	}
	h.state = stateUsed
}

func (poolDebug) onRelease(m *Multipool, t, slot int) {
	m.fl.headers[slot].state = stateFree
	writeCanary(m.canaryBytes(t, slot), slot, t)
}

func (poolDebug) onFree(m *Multipool, t, slot, off int) {
	if t >= m.layout.Depth || off%m.layout.Tiers[t].Stride != 0 {
		check.Fail("Multipool.Free", ErrForeign, "offset %d is not a block start", off)
	}
	switch m.fl.headers[slot].state {
	case stateUsed:
	case stateFree:
		check.Fail("Multipool.Free", ErrDoubleFree, "offset %d tier %d", off, t)
	default:
		check.Fail("Multipool.Free", ErrForeign, "offset %d is inside another block", off)
	}
}

func (poolDebug) onClear(m *Multipool) {
	for i := range m.fl.headers {
		m.fl.headers[i].state = 0
	}
	l := m.layout
	for d, tier := range l.Tiers {
		first := tier.Offset / l.Unit
		for i := range tier.Count {
			slot := first + i*l.slotStride(d)
			m.fl.headers[slot].state = stateFree
			writeCanary(m.canaryBytes(d, slot), slot, d)
		}
	}
}

func (m *Multipool) canaryBytes(t, slot int) []byte {
	return m.arena.Slice(slot*m.layout.Unit, min(canaryLen, m.layout.Tiers[t].BlockSize))
}

func canaryWord(slot, tier int) uint32 {
	var key [8]byte
	binary.LittleEndian.PutUint32(key[0:4], uint32(slot))
	binary.LittleEndian.PutUint32(key[4:8], uint32(tier))
	return murmur3.Sum32(key[:])
}

func writeCanary(b []byte, slot, tier int) {
	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], canaryWord(slot, tier))
	for i := range b {
		b[i] = word[i%4]
	}
}

func canaryIntact(b []byte, slot, tier int) bool {
	var word [4]byte
	binary.LittleEndian.PutUint32(word[:], canaryWord(slot, tier))
	for i := range b {
		if b[i] != word[i%4] {
			return false
		}
	}
	return true
}
