package FlatMap

import (
	"fmt"
	"hash/maphash"
	"reflect"

	Go_Nx "github.com/g-m-twostay/go-nx"
	"github.com/g-m-twostay/go-nx/Lifecycle"
)

type options struct {
	cfg      Config
	alloc    Lifecycle.Allocator
	keys     any
	vals     any
	hash     any
	capacity int
}

// Option configures New. The typed options are checked against the Map's key and value types when it's created.
type Option func(*options)

func WithConfig(c Config) Option {
	return func(o *options) {
		o.cfg = c
	}
}

// WithAllocator serves both the node array and the index table from a.
func WithAllocator(a Lifecycle.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

func WithKeys[K comparable](lc Lifecycle.Lifecycle[K]) Option {
	return func(o *options) {
		o.keys = lc
	}
}

func WithValues[V any](lc Lifecycle.Lifecycle[V]) Option {
	return func(o *options) {
		o.vals = lc
	}
}

// WithHasher replaces the default hash function. It must be deterministic for the lifetime of the Map.
func WithHasher[K comparable](f func(K) uint64) Option {
	return func(o *options) {
		o.hash = f
	}
}

// WithCapacity sizes the table so that n entries fit without a resize.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

func typed[T any](v any, name string) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, want %v", ErrOption, name, v, reflect.TypeFor[T]())
	}
	return t, nil
}

// defaultHasher uses xxhash for strings and integers and the runtime hash for everything else.
func defaultHasher[K comparable]() func(K) uint64 {
	seed := maphash.MakeSeed()
	h := Go_Nx.Hasher(maphash.Comparable(seed, 0))
	var f any
	switch any(*new(K)).(type) {
	case string:
		f = h.Strings()
	case int:
		f = Go_Nx.Ints[int](h)
	case int64:
		f = Go_Nx.Ints[int64](h)
	case int32:
		f = Go_Nx.Ints[int32](h)
	case uint:
		f = Go_Nx.Ints[uint](h)
	case uint64:
		f = Go_Nx.Ints[uint64](h)
	case uint32:
		f = Go_Nx.Ints[uint32](h)
	case uintptr:
		f = Go_Nx.Ints[uintptr](h)
	default:
		return Go_Nx.Comparable[K](seed)
	}
	return f.(func(K) uint64)
}
