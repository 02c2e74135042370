/*
Package Arrays implements Array, a heap array whose length is fixed at creation. The length, the environment the
elements live in, and the elements themselves share a single allocation, so an Array is managed through one
pointer.

The header holds interface values, so allocators that refuse layouts with Go pointers, like Lifecycle.Mmap, can't
serve an Array.
*/
package Arrays

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/g-m-twostay/go-nx/Ptr"
)

type Array[T any] struct {
	length int
	env    Lifecycle.Env[T]
	// followed by length elements of T.
	data [0]T
}

// layout of an Array holding n elements. The field order matches Array, so the element offsets agree.
func layout[T any](n int) reflect.Type {
	return reflect.StructOf([]reflect.StructField{
		{Name: "Length", Type: reflect.TypeFor[int]()},
		{Name: "Env", Type: reflect.TypeFor[Lifecycle.Env[T]]()},
		{Name: "Data", Type: reflect.ArrayOf(n, reflect.TypeFor[T]())},
	})
}

func alloc[T any](env Lifecycle.Env[T], n int) (*Array[T], error) {
	if n < 0 {
		return nil, ErrOutOfRange
	}
	if !Lifecycle.Fits[T](n) {
		return nil, Lifecycle.ErrOutOfMemory
	}
	p := (*Array[T])(env.Alloc.Alloc(layout[T](n)))
	if p == nil {
		return nil, Lifecycle.ErrOutOfMemory
	}
	p.length, p.env = n, env
	return p, nil
}

func (u *Array[T]) free() {
	u.env.Alloc.Free(unsafe.Pointer(u), layout[T](u.length))
}

// Create an Array of n default constructed elements in env. Allocation failure is reported as
// Lifecycle.ErrOutOfMemory; if an element fails to construct, the ones before it are destroyed and the storage is
// released before the error is returned.
func Create[T any](env Lifecycle.Env[T], n int) (*Array[T], error) {
	env = env.Resolve()
	a, err := alloc(env, n)
	if err != nil {
		return nil, err
	}
	if err = Lifecycle.ConstructRange(env.Life, a.Slice()); err != nil {
		a.free()
		return nil, err
	}
	return a, nil
}

// CreateFrom creates an Array holding elems, moved in if moving never fails and copied otherwise. CreateFrom takes
// ownership of elems: they are destroyed after their contents went into the array, whether or not that succeeded.
func CreateFrom[T any](env Lifecycle.Env[T], elems ...T) (*Array[T], error) {
	env = env.Resolve()
	defer Lifecycle.DestroyRange(env.Life, elems)
	a, err := alloc(env, len(elems))
	if err != nil {
		return nil, err
	}
	if err = Lifecycle.ConstructRangeByMove(env.Life, a.Slice(), elems); err != nil {
		a.free()
		return nil, err
	}
	return a, nil
}

// Make is Create with the result owned by a Ptr.Unique.
func Make[T any](env Lifecycle.Env[T], n int) (Ptr.Unique[Array[T]], error) {
	a, err := Create(env, n)
	if err != nil {
		return Ptr.Unique[Array[T]]{}, err
	}
	return Ptr.Wrap(a, (*Array[T]).Destroy), nil
}

// Destroy the elements in descending order and release the allocation. u must not be used afterward.
func (u *Array[T]) Destroy() {
	Lifecycle.DestroyRange(u.env.Life, u.Slice())
	u.free()
}

func (u *Array[T]) Len() int {
	return u.length
}

// Slice views the elements in place.
func (u *Array[T]) Slice() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&u.data)), u.length)
}

// At returns a pointer to the i-th element; it panics if i is out of range.
func (u *Array[T]) At(i int) *T {
	return &u.Slice()[i]
}

func (u *Array[T]) Get(i int) T {
	return u.Slice()[i]
}

// Set assigns v to the i-th element.
func (u *Array[T]) Set(i int, v T) error {
	return u.env.Life.Assign(u.At(i), &v)
}

// All iterates over index-element pairs.
func (u *Array[T]) All() iter.Seq2[int, T] {
	return slices.All(u.Slice())
}

func within(length, off, count int) bool {
	return off >= 0 && count >= 0 && off <= length && count <= length-off
}

// Copy assigns count elements of src starting at srcOff to dst starting at dstOff. src and dst may be the same
// array with overlapping ranges; the result is as if the source range was copied to a temporary first. It stops at
// the first failing assignment, leaving the elements assigned so far in place.
func Copy[T any](src *Array[T], srcOff int, dst *Array[T], dstOff int, count int) error {
	if !within(src.length, srcOff, count) || !within(dst.length, dstOff, count) {
		return ErrOutOfRange
	}
	lc := dst.env.Life
	s, d := src.Slice()[srcOff:srcOff+count], dst.Slice()[dstOff:dstOff+count]
	if src == dst && dstOff > srcOff {
		for i := count - 1; i >= 0; i-- {
			if err := lc.Assign(&d[i], &s[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range count {
		if err := lc.Assign(&d[i], &s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Fill assigns v to length elements of a starting at offset.
func Fill[T any](a *Array[T], offset, length int, v T) error {
	if !within(a.length, offset, length) {
		return ErrOutOfRange
	}
	d := a.Slice()[offset : offset+length]
	for i := range d {
		if err := a.env.Life.Assign(&d[i], &v); err != nil {
			return err
		}
	}
	return nil
}
