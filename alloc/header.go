package alloc

// nilSlot terminates a free list.
const nilSlot = -1

// Block states, maintained by checked builds only.
const (
	stateFree uint16 = iota + 1
	stateUsed
)

// blockHeader is the side-table record for the block starting at a slot.
type blockHeader struct {
	next  int32  // slot of the next free block in the same tier, or nilSlot
	depth uint16 // tier the block currently belongs to
	state uint16 // stateFree/stateUsed in checked builds, zero otherwise
}

// accessHeader is the per-tier entry point into the free list.
type accessHeader struct {
	firstFree int32
	free      int // blocks on the free list
	allocated int // blocks handed out
	splitAway int // blocks borrowed by finer tiers
	borrowed  int // blocks this tier gained by splitting coarser ones
}

// freeList threads tiers of free blocks through a header table.
type freeList struct {
	headers []blockHeader
	access  []accessHeader
}

func (f *freeList) push(d, slot int) {
	a := &f.access[d]
	h := &f.headers[slot]
	h.next = a.firstFree
	h.depth = uint16(d)
	a.firstFree = int32(slot)
	a.free++
}

func (f *freeList) pop(d int) int {
	a := &f.access[d]
	slot := int(a.firstFree)
	if slot == nilSlot {
		return nilSlot
	}
	a.firstFree = f.headers[slot].next
	a.free--
	return slot
}

// reset rebuilds every tier's free list over its original blocks, in
// ascending address order.
func (f *freeList) reset(l Layout) {
	for d, tier := range l.Tiers {
		f.access[d] = accessHeader{firstFree: nilSlot}
		step := l.slotStride(d)
		first := tier.Offset / l.Unit
		for i := tier.Count - 1; i >= 0; i-- {
			f.push(d, first+i*step)
		}
	}
}
