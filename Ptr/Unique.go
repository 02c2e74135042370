/*
Package Ptr implements owning pointers. A Unique or an Array is the only party responsible for the value it
references: the value is destroyed and its storage released exactly once, by Reset, Close, or whoever took it over
through Release or Move. Go can't forbid copying a struct, so both types carry a noCopy marker that go vet's
copylocks check reports; transfer ownership with Move instead.

Defer Close right after creation to release the value on every exit path, including panics.
*/
package Ptr

import (
	"github.com/g-m-twostay/go-nx/Lifecycle"
)

// noCopy may be embedded into structs which must not be copied after first use.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Unique owns a single *T. Dereferencing an empty Unique through Get yields nil.
type Unique[T any] struct {
	_    noCopy
	ptr  *T
	drop func(*T)
}

// Wrap p, destroying it with drop when the time comes. A nil drop leaves p to the garbage collector.
func Wrap[T any](p *T, drop func(*T)) Unique[T] {
	return Unique[T]{ptr: p, drop: drop}
}

// Make allocates and default constructs a T in env and wraps it.
func Make[T any](env Lifecycle.Env[T]) (Unique[T], error) {
	env = env.Resolve()
	p, err := Lifecycle.New(env)
	if err != nil {
		return Unique[T]{}, err
	}
	return Unique[T]{ptr: p, drop: func(p *T) { Lifecycle.Delete(env, p) }}, nil
}

// Get the owned pointer without giving up ownership.
func (u *Unique[T]) Get() *T {
	return u.ptr
}

func (u *Unique[T]) Empty() bool {
	return u.ptr == nil
}

// Release ownership; the caller is now responsible for the returned pointer.
func (u *Unique[T]) Release() *T {
	p := u.ptr
	u.ptr = nil
	return p
}

// Reset destroys the owned value, if any, and takes ownership of p with the same drop function.
func (u *Unique[T]) Reset(p *T) {
	if old := u.ptr; old != p {
		u.ptr = p
		if old != nil && u.drop != nil {
			u.drop(old)
		}
	}
}

// Move ownership into the returned Unique, leaving u empty.
func (u *Unique[T]) Move() Unique[T] {
	return Unique[T]{ptr: u.Release(), drop: u.drop}
}

// Close is Reset(nil).
func (u *Unique[T]) Close() {
	u.Reset(nil)
}
