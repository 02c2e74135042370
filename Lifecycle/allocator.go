package Lifecycle

import (
	"reflect"
	"unsafe"
)

// Allocator hands out raw storage. Alloc returns zeroed storage laid out as t, or nil when the request can't be
// served; it never partially succeeds. The layout is passed in full so that storage holding Go pointers stays
// visible to the garbage collector. Free releases storage obtained from the same allocator with the same layout and
// ignores nil.
type Allocator interface {
	Alloc(t reflect.Type) unsafe.Pointer
	Free(p unsafe.Pointer, t reflect.Type)
}

type heap struct{}

// Heap allocates from the Go runtime. Free is a no-op; the collector reclaims storage once it is unreachable.
var Heap Allocator = heap{}

func (heap) Alloc(t reflect.Type) unsafe.Pointer {
	return reflect.New(t).UnsafePointer()
}

func (heap) Free(unsafe.Pointer, reflect.Type) {}

var byteType = reflect.TypeFor[byte]()

// maxBytes is the largest single request passed on to an allocator.
const maxBytes = ^uintptr(0) >> 2

// Allocate requests size bytes of pointer-free storage from a.
func Allocate(a Allocator, size uintptr) unsafe.Pointer {
	if size > maxBytes {
		return nil
	}
	return a.Alloc(reflect.ArrayOf(int(size), byteType))
}

// Release frees storage obtained through Allocate with the same size.
func Release(a Allocator, p unsafe.Pointer, size uintptr) {
	if p != nil {
		a.Free(p, reflect.ArrayOf(int(size), byteType))
	}
}

// BlockType is the layout of n contiguous elements of T.
func BlockType[T any](n int) reflect.Type {
	return reflect.ArrayOf(n, reflect.TypeFor[T]())
}

// AllocBlock returns storage for n elements of T as a slice with len == cap == n, or nil if a refuses. n <= 0
// doesn't touch the allocator. The elements are zeroed but not constructed.
func AllocBlock[T any](a Allocator, n int) []T {
	if n <= 0 || !Fits[T](n) {
		return nil
	}
	p := a.Alloc(BlockType[T](n))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*T)(p), n)
}

// Fits reports whether n elements of T stay within the largest request passed on to an allocator.
func Fits[T any](n int) bool {
	sz := unsafe.Sizeof(*new(T))
	return n >= 0 && (sz == 0 || uintptr(n) <= maxBytes/sz)
}

// FreeBlock releases a block obtained through AllocBlock. Only the capacity of s matters.
func FreeBlock[T any](a Allocator, s []T) {
	if cap(s) == 0 {
		return
	}
	a.Free(unsafe.Pointer(unsafe.SliceData(s)), BlockType[T](cap(s)))
}

// Confirm checks a batch of pointers returned by allocations, reporting ErrNilPointer if any of them is nil.
func Confirm(ptrs ...unsafe.Pointer) error {
	for _, p := range ptrs {
		if p == nil {
			return ErrNilPointer
		}
	}
	return nil
}

// HasPointers reports whether values of t contain anything the garbage collector has to trace.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
