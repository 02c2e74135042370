package Ptr

import (
	"unsafe"

	"github.com/g-m-twostay/go-nx/Lifecycle"
)

// Array owns n contiguous elements starting at a base pointer.
type Array[T any] struct {
	_    noCopy
	base *T
	n    int
	drop func(*T, int)
}

// WrapArray owns n elements at base, destroying them with drop. A nil drop leaves them to the garbage collector.
func WrapArray[T any](base *T, n int, drop func(*T, int)) Array[T] {
	return Array[T]{base: base, n: n, drop: drop}
}

// MakeArray allocates n elements in env and default constructs them, rolling back on failure.
func MakeArray[T any](env Lifecycle.Env[T], n int) (Array[T], error) {
	env = env.Resolve()
	s := Lifecycle.AllocBlock[T](env.Alloc, n)
	if s == nil {
		if n > 0 {
			return Array[T]{}, Lifecycle.ErrOutOfMemory
		}
		return Array[T]{}, nil
	}
	if err := Lifecycle.ConstructRange(env.Life, s); err != nil {
		Lifecycle.FreeBlock(env.Alloc, s)
		return Array[T]{}, err
	}
	return Array[T]{base: unsafe.SliceData(s), n: n, drop: func(p *T, n int) {
		s := unsafe.Slice(p, n)
		Lifecycle.DestroyRange(env.Life, s)
		Lifecycle.FreeBlock(env.Alloc, s)
	}}, nil
}

// At returns the i-th element. There is no bounds check; i must be in [0, Len()).
func (u *Array[T]) At(i int) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(u.base), uintptr(i)*unsafe.Sizeof(*u.base)))
}

func (u *Array[T]) Len() int {
	return u.n
}

func (u *Array[T]) Empty() bool {
	return u.base == nil
}

// Slice views the elements; the view is only valid while u owns them.
func (u *Array[T]) Slice() []T {
	if u.base == nil {
		return nil
	}
	return unsafe.Slice(u.base, u.n)
}

// Release ownership of the elements.
func (u *Array[T]) Release() (*T, int) {
	p, n := u.base, u.n
	u.base, u.n = nil, 0
	return p, n
}

// Reset destroys the owned elements, if any, and takes ownership of n elements at base.
func (u *Array[T]) Reset(base *T, n int) {
	if old, oldN := u.base, u.n; old != base {
		u.base, u.n = base, n
		if old != nil && u.drop != nil {
			u.drop(old, oldN)
		}
	}
}

// Move ownership into the returned Array, leaving u empty.
func (u *Array[T]) Move() Array[T] {
	p, n := u.Release()
	return Array[T]{base: p, n: n, drop: u.drop}
}

// Close is Reset(nil, 0).
func (u *Array[T]) Close() {
	u.Reset(nil, 0)
}
