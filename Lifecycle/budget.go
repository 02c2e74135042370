package Lifecycle

import (
	"reflect"
	"unsafe"

	Go_Nx "github.com/g-m-twostay/go-nx"
)

// Budget wraps another allocator, accounting every request and refusing the ones that exceed its limits. It's the
// allocation counter and the allocation failure switch of the tests, and the statistics source of nxbench.
type Budget struct {
	Base  Allocator // nil means Heap.
	Limit uintptr   // refuse requests that would make the live bytes exceed Limit; 0 disables.
	// FailAt refuses exactly the FailAt-th request (counting from 1, including refused ones); 0 disables.
	FailAt uint

	attempts, allocs, frees, refused Go_Nx.AtomicUint
	live, peak                       Go_Nx.AtomicUint
}

// Stats is a snapshot of a Budget's counters.
type Stats struct {
	Allocs  uint `json:"allocs"`
	Frees   uint `json:"frees"`
	Refused uint `json:"refused"`
	Live    uint `json:"live_bytes"`
	Peak    uint `json:"peak_bytes"`
}

// NewBudget over base with a byte limit.
func NewBudget(base Allocator, limit uintptr) *Budget {
	return &Budget{Base: base, Limit: limit}
}

func (u *Budget) base() Allocator {
	if u.Base == nil {
		return Heap
	}
	return u.Base
}

func (u *Budget) Alloc(t reflect.Type) unsafe.Pointer {
	size := uint(t.Size())
	n := u.attempts.Add(1)
	if u.FailAt != 0 && n == u.FailAt {
		return u.refuse(t, "injected failure")
	}
	if u.Limit != 0 && u.live.Load()+size > uint(u.Limit) {
		return u.refuse(t, "limit exceeded")
	}
	p := u.base().Alloc(t)
	if p == nil {
		return u.refuse(t, "base allocator refused")
	}
	u.allocs.Add(1)
	u.peak.Max(u.live.Add(size))
	return p
}

func (u *Budget) refuse(t reflect.Type, why string) unsafe.Pointer {
	u.refused.Add(1)
	L.Debug("allocation refused", "reason", why, "type", t.String(), "size", t.Size())
	return nil
}

func (u *Budget) Free(p unsafe.Pointer, t reflect.Type) {
	if p == nil {
		return
	}
	u.frees.Add(1)
	u.live.Sub(uint(t.Size()))
	u.base().Free(p, t)
}

// Stats of the allocations made so far.
func (u *Budget) Stats() Stats {
	return Stats{
		Allocs:  u.allocs.Load(),
		Frees:   u.frees.Load(),
		Refused: u.refused.Load(),
		Live:    u.live.Load(),
		Peak:    u.peak.Load(),
	}
}
