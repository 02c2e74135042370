package Go_Nx

import "sync/atomic"

// AtomicUint is a counter backed by uintptr. The zero value is 0.
type AtomicUint struct {
	v atomic.Uintptr
}

func (u *AtomicUint) Load() uint {
	return uint(u.v.Load())
}
func (u *AtomicUint) Store(v uint) {
	u.v.Store(uintptr(v))
}
func (u *AtomicUint) Add(d uint) uint {
	return uint(u.v.Add(uintptr(d)))
}

// Sub d from the counter; the caller guarantees it doesn't underflow.
func (u *AtomicUint) Sub(d uint) uint {
	return uint(u.v.Add(^uintptr(d - 1)))
}
func (u *AtomicUint) Swap(v uint) uint {
	return uint(u.v.Swap(uintptr(v)))
}
func (u *AtomicUint) CompareAndSwap(exp, v uint) bool {
	return u.v.CompareAndSwap(uintptr(exp), uintptr(v))
}

// Max raises the counter to v if v is larger, returning the value after the call.
func (u *AtomicUint) Max(v uint) uint {
	for {
		if old := u.Load(); old >= v || u.CompareAndSwap(old, v) {
			return max(old, v)
		}
	}
}
