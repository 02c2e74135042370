//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package Lifecycle

import (
	"reflect"
	"unsafe"
)

type mmapAlloc struct{}

// Mmap refuses every request on platforms without anonymous mappings.
var Mmap Allocator = mmapAlloc{}

func (mmapAlloc) Alloc(reflect.Type) unsafe.Pointer { return nil }

func (mmapAlloc) Free(unsafe.Pointer, reflect.Type) {}
