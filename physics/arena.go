package physics

import "iter"

const (
	arenaBlockSize = 64
)

// arena stores values of type `T` in fixed size blocks and hands out
// generation-tagged handles. Blocks are never moved, so pointers returned by
// get stay valid until the slot is removed. A freed slot is reused by the next
// insert with a bumped generation, so handles to the old occupant stop
// resolving.
type arena[T any] struct {
	tag       uint16
	blocks    []*[arenaBlockSize]T
	gens      []*[arenaBlockSize]uint16
	filled    []*[arenaBlockSize]bool
	freeSlots []uint32
	nextIndex uint32
	count     int
}

func newArena[T any](tag uint16) *arena[T] {
	return &arena[T]{tag: tag}
}

// insert stores item and returns its handle.
func (a *arena[T]) insert(item T) handle {
	var index uint32
	if len(a.freeSlots) > 0 {
		index = a.freeSlots[len(a.freeSlots)-1]
		a.freeSlots = a.freeSlots[:len(a.freeSlots)-1]
	} else {
		index = a.nextIndex
		a.nextIndex++

		if int(index/arenaBlockSize) >= len(a.blocks) {
			a.blocks = append(a.blocks, new([arenaBlockSize]T))
			a.gens = append(a.gens, new([arenaBlockSize]uint16))
			a.filled = append(a.filled, new([arenaBlockSize]bool))
		}
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	gen := a.gens[blockIdx][slotIdx]
	if gen == 0 {
		gen = 1
		a.gens[blockIdx][slotIdx] = gen
	}

	a.blocks[blockIdx][slotIdx] = item
	a.filled[blockIdx][slotIdx] = true
	a.count++

	return newHandle(a.tag, gen, index)
}

// get returns a pointer to the live value behind h.
func (a *arena[T]) get(h handle) (*T, bool) {
	if h == 0 || h.tag() != a.tag {
		return nil, false
	}

	index := h.index()
	if index >= a.nextIndex {
		return nil, false
	}

	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	if !a.filled[blockIdx][slotIdx] || a.gens[blockIdx][slotIdx] != h.generation() {
		return nil, false
	}

	return &a.blocks[blockIdx][slotIdx], true
}

// remove frees the slot behind h. It reports false for stale or foreign handles.
func (a *arena[T]) remove(h handle) bool {
	if _, ok := a.get(h); !ok {
		return false
	}

	index := h.index()
	blockIdx := index / arenaBlockSize
	slotIdx := index % arenaBlockSize

	var zero T
	a.blocks[blockIdx][slotIdx] = zero
	a.filled[blockIdx][slotIdx] = false

	// Generation 0 is reserved so a handle is never 0.
	a.gens[blockIdx][slotIdx]++
	if a.gens[blockIdx][slotIdx] == 0 {
		a.gens[blockIdx][slotIdx] = 1
	}

	a.freeSlots = append(a.freeSlots, index)
	a.count--
	return true
}

func (a *arena[T]) len() int {
	return a.count
}

// all yields every live slot in index order.
func (a *arena[T]) all() iter.Seq2[handle, *T] {
	return func(yield func(handle, *T) bool) {
		for i := uint32(0); i < a.nextIndex; i++ {
			blockIdx := i / arenaBlockSize
			slotIdx := i % arenaBlockSize

			if !a.filled[blockIdx][slotIdx] {
				continue
			}

			h := newHandle(a.tag, a.gens[blockIdx][slotIdx], i)
			if !yield(h, &a.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}
