package Lifecycle

import (
	"errors"

	Go_Nx "github.com/g-m-twostay/go-nx"
)

// ErrInjected is the failure Counted produces on request.
var ErrInjected = errors.New("lifecycle: injected failure")

// Tracked is the element type Counted works on. ID identifies one constructed object; moving hands the ID over and
// leaves -1 behind.
type Tracked struct {
	ID  int
	Val int
}

// Counted is a Lifecycle[Tracked] test double. It counts every call, remembers the order of destructions, tracks
// which IDs are alive, and fails deterministically on request.
type Counted struct {
	Inits, Copies, Moves, Assigns, Destroys int

	// FailAt makes the FailAt-th construction (Init, Copy or Move, counting from 1) fail; 0 disables.
	FailAt int
	// FailDestroyAt makes the FailDestroyAt-th Destroy fail; 0 disables.
	FailDestroyAt int
	// Destroyed lists the IDs of destroyed objects in order, moved-from objects excluded.
	Destroyed []int

	caps   Caps
	nextID int
	live   Go_Nx.BitArray
}

// NewCounted tracks up to capacity objects over its lifetime and claims the given capabilities. Claiming a
// capability for an operation that is then made to fail is a test of the fatal path.
func NewCounted(capacity int, caps Caps) *Counted {
	return &Counted{caps: caps, live: Go_Nx.NewBitArray(capacity)}
}

// Constructed counts Init, Copy and Move.
func (u *Counted) Constructed() int {
	return u.Inits + u.Copies + u.Moves
}

// Balanced reports whether every construction was matched by a destruction.
func (u *Counted) Balanced() bool {
	return u.Constructed() == u.Destroys
}

// Live is the number of objects that were constructed with a fresh ID and not destroyed since.
func (u *Counted) Live() int {
	return u.live.Count()
}

func (u *Counted) born(p *Tracked) error {
	if u.FailAt != 0 && u.Constructed()+1 == u.FailAt {
		return ErrInjected
	}
	p.ID = u.nextID
	u.live.Set(u.nextID)
	u.nextID++
	return nil
}

func (u *Counted) Init(p *Tracked) error {
	if err := u.born(p); err != nil {
		return err
	}
	u.Inits++
	p.Val = 0
	return nil
}

func (u *Counted) Copy(dst, src *Tracked) error {
	if err := u.born(dst); err != nil {
		return err
	}
	u.Copies++
	dst.Val = src.Val
	return nil
}

func (u *Counted) Move(dst, src *Tracked) error {
	if u.FailAt != 0 && u.Constructed()+1 == u.FailAt {
		return ErrInjected
	}
	u.Moves++
	*dst = *src
	src.ID, src.Val = -1, 0
	return nil
}

func (u *Counted) Assign(dst, src *Tracked) error {
	u.Assigns++
	dst.Val = src.Val
	return nil
}

func (u *Counted) Destroy(p *Tracked) error {
	if u.FailDestroyAt != 0 && u.Destroys+1 == u.FailDestroyAt {
		return ErrInjected
	}
	u.Destroys++
	if p.ID >= 0 {
		u.live.Clr(p.ID)
		u.Destroyed = append(u.Destroyed, p.ID)
	}
	p.ID, p.Val = -1, 0
	return nil
}

func (u *Counted) Caps() Caps {
	return u.caps
}
