//go:build linux || darwin || freebsd || netbsd || openbsd

package Lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap(t *testing.T) {
	s := AllocBlock[uint64](Mmap, 1000)
	require.Len(t, s, 1000)
	for i := range s {
		assert.Zero(t, s[i])
		s[i] = uint64(i) * 3
	}
	assert.Equal(t, uint64(2997), s[999])
	FreeBlock(Mmap, s)
}

func TestMmap_Refusals(t *testing.T) {
	assert.Nil(t, AllocBlock[string](Mmap, 4))
	assert.Nil(t, AllocBlock[struct{}](Mmap, 4))
}

func TestMmap_UnderBudget(t *testing.T) {
	b := NewBudget(Mmap, 4096)
	s := AllocBlock[byte](b, 4096)
	require.NotNil(t, s)
	assert.Nil(t, AllocBlock[byte](b, 1))
	FreeBlock(b, s)
	assert.Zero(t, b.Stats().Live)
}
