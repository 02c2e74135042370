package Go_Nx

import (
	"hash/maphash"
	"sync"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := Hasher(42)
	assert.Equal(t, h.HashString("go-nx"), h.HashBytes([]byte("go-nx")))
	assert.Equal(t, h.HashString("go-nx"), h.Strings()("go-nx"))
	assert.NotEqual(t, h.HashString("go-nx"), Hasher(43).HashString("go-nx"))
	assert.NotEqual(t, h.mix(xxhash.Sum64String("a")), xxhash.Sum64String("a"))

	ints := Ints[int64](h)
	assert.Equal(t, HashInt(h, int64(7)), ints(7))
	assert.NotEqual(t, ints(7), ints(8))

	seen := make(map[uint64]bool, 1000)
	for i := range 1000 {
		seen[HashInt(h, uint32(i))] = true
	}
	assert.Len(t, seen, 1000)

	c := Comparable[[2]int](maphash.MakeSeed())
	assert.Equal(t, c([2]int{1, 2}), c([2]int{1, 2}))
}

func TestBitArray(t *testing.T) {
	b := NewBitArray(100)
	require.GreaterOrEqual(t, b.Len(), 100)
	assert.Equal(t, -1, b.First())
	b.Set(99)
	b.Set(64)
	b.Set(3)
	assert.True(t, b.Get(64))
	assert.False(t, b.Get(65))
	assert.Equal(t, 3, b.First())
	assert.Equal(t, 3, b.Count())
	b.Clr(3)
	assert.Equal(t, 64, b.First())
	assert.Equal(t, 2, b.Count())
	assert.Zero(t, NewBitArray(0).Len())
}

func TestAtomicUint(t *testing.T) {
	var u AtomicUint
	assert.Equal(t, uint(5), u.Add(5))
	assert.Equal(t, uint(2), u.Sub(3))
	assert.Equal(t, uint(2), u.Sub(0))
	assert.Equal(t, uint(2), u.Swap(10))
	assert.False(t, u.CompareAndSwap(2, 1))
	assert.True(t, u.CompareAndSwap(10, 1))
	assert.Equal(t, uint(7), u.Max(7))
	assert.Equal(t, uint(7), u.Max(3))

	var m AtomicUint
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Max(uint(i))
		}()
	}
	wg.Wait()
	assert.Equal(t, uint(63), m.Load())
}
