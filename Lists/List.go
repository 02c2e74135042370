/*
Package Lists implements List, an amortized-growth dynamic array whose elements live in an explicit
Lifecycle.Env.

The zero List is empty and ready to use; it holds no buffer and allocating one is deferred until the first
mutation that needs room, so a List of empty Lists costs no allocations. Capacity grows by 1.5x starting from 16
elements and only shrinks through Compact.

Mutations either succeed completely or leave the List as it was: allocation failures are reported as
Lifecycle.ErrOutOfMemory and element construction failures are rolled back before they are returned.
*/
package Lists

import (
	"iter"
	"slices"

	"github.com/g-m-twostay/go-nx/Lifecycle"
)

const minGrowth = 16

type List[T any] struct {
	n   int
	buf []T // len(buf) is the capacity; [0, n) are live.
	env Lifecycle.Env[T]
}

// New empty List using env. Equivalent to the zero List when env is zero.
func New[T any](env Lifecycle.Env[T]) *List[T] {
	return &List[T]{env: env.Resolve()}
}

func (u *List[T]) resolve() Lifecycle.Env[T] {
	if u.env.Alloc == nil || u.env.Life == nil {
		u.env = u.env.Resolve()
	}
	return u.env
}

func (u *List[T]) Size() int {
	return u.n
}

func (u *List[T]) Capacity() int {
	return len(u.buf)
}

// grown is the capacity reached by repeatedly growing from the current one until it holds need elements.
func (u *List[T]) grown(need int) int {
	x := max(minGrowth, len(u.buf))
	for need > x {
		x += x >> 1
	}
	return x
}

// relocate the live elements into a fresh buffer of exactly c elements; c >= n.
func (u *List[T]) relocate(c int) error {
	env := u.resolve()
	var nb []T
	if c > 0 {
		if nb = Lifecycle.AllocBlock[T](env.Alloc, c); nb == nil {
			return Lifecycle.ErrOutOfMemory
		}
		if err := Lifecycle.ConstructRangeByMove(env.Life, nb, u.buf[:u.n]); err != nil {
			Lifecycle.FreeBlock(env.Alloc, nb)
			return err
		}
	}
	u.release()
	u.buf = nb
	return nil
}

// release destroys the live elements and frees the buffer, keeping n.
func (u *List[T]) release() {
	if u.buf != nil {
		Lifecycle.DestroyRange(u.env.Life, u.buf[:u.n])
		Lifecycle.FreeBlock(u.env.Alloc, u.buf)
	}
}

// Reserve capacity for c elements. It never decreases the capacity.
func (u *List[T]) Reserve(c int) error {
	if c <= len(u.buf) {
		return nil
	}
	return u.relocate(c)
}

// Compact shrinks the capacity to the size, freeing the buffer if the List is empty.
func (u *List[T]) Compact() error {
	if u.n == len(u.buf) {
		return nil
	}
	Lifecycle.L.Debug("compacting list", "size", u.n, "capacity", len(u.buf))
	return u.relocate(u.n)
}

// Resize to n elements, default constructing new ones or destroying the tail.
func (u *List[T]) Resize(n int) error {
	if n < 0 {
		return ErrOutOfRange
	}
	if err := u.Reserve(n); err != nil {
		return err
	}
	if n > u.n {
		if err := Lifecycle.ConstructRange(u.resolve().Life, u.buf[u.n:n]); err != nil {
			return err
		}
	} else if n < u.n {
		Lifecycle.DestroyRange(u.env.Life, u.buf[n:u.n])
	}
	u.n = n
	return nil
}

func (u *List[T]) ensureOne() error {
	if u.n+1 > len(u.buf) {
		x := max(minGrowth, len(u.buf))
		return u.Reserve(x + x>>1)
	}
	return nil
}

// Append a copy of v.
func (u *List[T]) Append(v T) error {
	if err := u.ensureOne(); err != nil {
		return err
	}
	if err := Lifecycle.CopyAt(u.env.Life, &u.buf[u.n], &v); err != nil {
		return err
	}
	u.n++
	return nil
}

// AppendMove moves *p into the List, or copies it if moving may fail. The caller still destroys *p.
func (u *List[T]) AppendMove(p *T) error {
	if err := u.ensureOne(); err != nil {
		return err
	}
	if err := Lifecycle.MoveAt(u.env.Life, &u.buf[u.n], p); err != nil {
		return err
	}
	u.n++
	return nil
}

// Extend appends copies of every element of o, reserving room for them at once. o may be u.
func (u *List[T]) Extend(o *List[T]) error {
	k := o.n
	if k == 0 {
		return nil
	}
	if err := u.Reserve(u.grown(u.n + k)); err != nil {
		return err
	}
	if err := Lifecycle.ConstructRangeByCopy(u.env.Life, u.buf[u.n:], o.buf[:k]); err != nil {
		return err
	}
	u.n += k
	return nil
}

// ExtendMove appends every element of o, moving them when moving never fails, and leaves o empty without a
// buffer. On failure neither List changes.
func (u *List[T]) ExtendMove(o *List[T]) error {
	if o == u {
		return ErrSelfMove
	}
	k := o.n
	if k == 0 {
		return nil
	}
	if err := u.Reserve(u.grown(u.n + k)); err != nil {
		return err
	}
	if err := Lifecycle.ConstructRangeByMove(u.env.Life, u.buf[u.n:], o.buf[:k]); err != nil {
		return err
	}
	u.n += k
	o.Destroy()
	return nil
}

// At returns a pointer to the i-th element; it panics if i is out of range.
func (u *List[T]) At(i int) *T {
	return &u.buf[:u.n][i]
}

// Get the i-th element, or def if i is out of range.
func (u *List[T]) Get(i int, def T) T {
	if 0 <= i && i < u.n {
		return u.buf[i]
	}
	return def
}

// Slice views the live elements; it's invalidated by any mutation that reallocates.
func (u *List[T]) Slice() []T {
	return u.buf[:u.n:u.n]
}

// All iterates over index-element pairs.
func (u *List[T]) All() iter.Seq2[int, T] {
	return slices.All(u.Slice())
}

// Clone copies the elements into a new List whose capacity equals the size.
func (u *List[T]) Clone() (*List[T], error) {
	c := &List[T]{env: u.resolve()}
	if err := c.Reserve(u.n); err != nil {
		return nil, err
	}
	if err := Lifecycle.ConstructRangeByCopy(c.env.Life, c.buf, u.buf[:u.n]); err != nil {
		Lifecycle.FreeBlock(c.env.Alloc, c.buf)
		return nil, err
	}
	c.n = u.n
	return c, nil
}

// Move the contents into the returned List, leaving u empty without a buffer.
func (u *List[T]) Move() List[T] {
	m := List[T]{n: u.n, buf: u.buf, env: u.env}
	u.n, u.buf = 0, nil
	return m
}

// Destroy the elements in descending order and free the buffer. The List is empty and usable afterward.
func (u *List[T]) Destroy() {
	u.release()
	u.n, u.buf = 0, nil
}
