//go:build linux || darwin || freebsd || netbsd || openbsd

package Lifecycle

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"
)

type mmapAlloc struct{}

// Mmap serves every request with its own anonymous private mapping. The collector doesn't scan mapped memory, so
// layouts containing Go pointers are refused, as are zero-sized ones.
var Mmap Allocator = mmapAlloc{}

func (mmapAlloc) Alloc(t reflect.Type) unsafe.Pointer {
	size := t.Size()
	if size == 0 || HasPointers(t) {
		return nil
	}
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		L.Debug("mmap failed", "size", size, "err", err)
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

func (mmapAlloc) Free(p unsafe.Pointer, t reflect.Type) {
	if p == nil {
		return
	}
	if err := unix.Munmap(unsafe.Slice((*byte)(p), t.Size())); err != nil {
		L.Warn("munmap failed", "size", t.Size(), "err", err)
	}
}
