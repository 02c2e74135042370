package Go_Nx

import (
	"hash/maphash"
	"unsafe"

	"github.com/cespare/xxhash"
	"golang.org/x/exp/constraints"
)

// Hasher is a seed for the hash functions below. The zero Hasher is valid and every Hasher is deterministic, so
// two processes using the same seed probe their tables in the same order.
type Hasher uint64

// finalizer from murmur3, folds the seed into an xxhash digest.
func (u Hasher) mix(h uint64) uint64 {
	h ^= uint64(u)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// HashBytes hashes the given byte slice.
func (u Hasher) HashBytes(b []byte) uint64 {
	return u.mix(xxhash.Sum64(b))
}

// HashString directly hashes a string without converting it to bytes.
func (u Hasher) HashString(v string) uint64 {
	return u.mix(xxhash.Sum64String(v))
}

// HashMem hashes the memory contents in the range [addr, addr+size) as bytes.
// Only use it on values without pointers or padding.
func (u Hasher) HashMem(addr unsafe.Pointer, size uintptr) uint64 {
	return u.mix(xxhash.Sum64(unsafe.Slice((*byte)(addr), size)))
}

// Strings returns u.HashString as a function value.
func (u Hasher) Strings() func(string) uint64 {
	return u.HashString
}

// HashInt hashes the memory of v.
func HashInt[K constraints.Integer](u Hasher, v K) uint64 {
	return u.HashMem(unsafe.Pointer(&v), unsafe.Sizeof(v))
}

// Ints returns HashInt bound to u.
func Ints[K constraints.Integer](u Hasher) func(K) uint64 {
	return func(k K) uint64 {
		return HashInt(u, k)
	}
}

// Comparable hashes any comparable key with the runtime's hash function. It's slower than the typed variants but
// works for structs and interfaces.
func Comparable[K comparable](seed maphash.Seed) func(K) uint64 {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}
