package FlatMap

import (
	"math"
	"unsafe"

	"github.com/g-m-twostay/go-nx/Lifecycle"
	"golang.org/x/exp/constraints"
)

// index maps a slot to 1 + the position of its node, 0 being an empty slot.
type index interface {
	at(i int) int
	put(i, v int)
	len() int
	bits() int
	clear()
	free(a Lifecycle.Allocator)
}

type table[W constraints.Unsigned] []W

func (u table[W]) at(i int) int {
	return int(u[i])
}

func (u table[W]) put(i, v int) {
	u[i] = W(v)
}

func (u table[W]) len() int {
	return len(u)
}

func (u table[W]) bits() int {
	return int(8 * unsafe.Sizeof(W(0)))
}

func (u table[W]) clear() {
	clear(u)
}

func (u table[W]) free(a Lifecycle.Allocator) {
	Lifecycle.FreeBlock(a, []W(u))
}

func makeTable[W constraints.Unsigned](a Lifecycle.Allocator, m int) (index, bool) {
	s := Lifecycle.AllocBlock[W](a, m)
	if s == nil {
		return nil, false
	}
	return table[W](s), true
}

// widthFor is the narrowest entry width, in bits, whose maximum value is at least m.
func widthFor(m int) int {
	switch {
	case m <= math.MaxUint8:
		return 8
	case m <= math.MaxUint16:
		return 16
	case uint64(m) <= math.MaxUint32:
		return 32
	}
	return 64
}

func newIndex(a Lifecycle.Allocator, m int) (index, bool) {
	switch widthFor(m) {
	case 8:
		return makeTable[uint8](a, m)
	case 16:
		return makeTable[uint16](a, m)
	case 32:
		return makeTable[uint32](a, m)
	}
	return makeTable[uint64](a, m)
}
