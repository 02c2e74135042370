package Lifecycle

import (
	"reflect"
	"unsafe"
)

// ConstructAt default constructs *p. On failure *p is left unconstructed.
func ConstructAt[T any](lc Lifecycle[T], p *T) error {
	return checked(lc, InitNoFail, "init", lc.Init(p))
}

// CopyAt copy constructs *dst from *src.
func CopyAt[T any](lc Lifecycle[T], dst, src *T) error {
	return checked(lc, CopyNoFail, "copy", lc.Copy(dst, src))
}

// MoveAt moves *src into *dst if moving never fails, otherwise it copies and leaves *src untouched.
func MoveAt[T any](lc Lifecycle[T], dst, src *T) error {
	if lc.Caps().Has(MoveNoFail) {
		if err := lc.Move(dst, src); err != nil {
			fatal("move", -1, err)
		}
		return nil
	}
	return CopyAt(lc, dst, src)
}

// DestroyAt destroys *p. A failure terminates the process.
func DestroyAt[T any](lc Lifecycle[T], p *T) {
	if err := lc.Destroy(p); err != nil {
		fatal("destroy", -1, err)
	}
}

func checked[T any](lc Lifecycle[T], c Caps, op string, err error) error {
	if err != nil && lc.Caps().Has(c) {
		fatal(op, -1, err)
	}
	return err
}

// ConstructRange default constructs the elements of s in ascending order. If element i fails, elements [0, i) are
// destroyed in descending order and a *ConstructError is returned; a panic in Init unwinds the same way.
func ConstructRange[T any](lc Lifecycle[T], s []T) error {
	if lc.Caps().Has(InitNoFail) {
		for i := range s {
			if err := lc.Init(&s[i]); err != nil {
				fatal("init", i, err)
			}
		}
		return nil
	}
	return transact(lc, s, func(i int) error {
		return lc.Init(&s[i])
	})
}

// ConstructRangeByCopy copy constructs dst[i] from src[i] for every i of src, with the rollback of ConstructRange.
// dst must be at least as long as src.
func ConstructRangeByCopy[T any](lc Lifecycle[T], dst, src []T) error {
	dst = dst[:len(src)]
	if lc.Caps().Has(CopyNoFail) {
		for i := range src {
			if err := lc.Copy(&dst[i], &src[i]); err != nil {
				fatal("copy", i, err)
			}
		}
		return nil
	}
	return transact(lc, dst, func(i int) error {
		return lc.Copy(&dst[i], &src[i])
	})
}

// ConstructRangeByMove moves src into dst when moving never fails. Otherwise it copies: a failed move could leave
// an element of src in an indeterminate state, a failed copy can be rolled back. Either way src still has to be
// destroyed by the caller.
func ConstructRangeByMove[T any](lc Lifecycle[T], dst, src []T) error {
	if !lc.Caps().Has(MoveNoFail) {
		return ConstructRangeByCopy(lc, dst, src)
	}
	dst = dst[:len(src)]
	for i := range src {
		if err := lc.Move(&dst[i], &src[i]); err != nil {
			fatal("move", i, err)
		}
	}
	return nil
}

// transact runs op for every index of s; unless all of them succeed, the constructed prefix is destroyed again.
func transact[T any](lc Lifecycle[T], s []T, op func(i int) error) error {
	i := 0
	defer func() {
		if i < len(s) {
			rollback(lc, s[:i])
		}
	}()
	for ; i < len(s); i++ {
		if err := op(i); err != nil {
			return &ConstructError{Index: i, Err: err}
		}
	}
	return nil
}

func rollback[T any](lc Lifecycle[T], s []T) {
	for i := len(s) - 1; i >= 0; i-- {
		if err := lc.Destroy(&s[i]); err != nil {
			fatal("rollback", i, err)
		}
	}
}

// DestroyRange destroys the elements of s in descending order. A failure terminates the process.
func DestroyRange[T any](lc Lifecycle[T], s []T) {
	for i := len(s) - 1; i >= 0; i-- {
		if err := lc.Destroy(&s[i]); err != nil {
			fatal("destroy", i, err)
		}
	}
}

// New allocates and default constructs a single T. Storage is released again if construction fails.
func New[T any](env Env[T]) (*T, error) {
	env = env.Resolve()
	t := reflect.TypeFor[T]()
	p := (*T)(env.Alloc.Alloc(t))
	if p == nil {
		return nil, ErrOutOfMemory
	}
	if err := ConstructAt(env.Life, p); err != nil {
		env.Alloc.Free(unsafe.Pointer(p), t)
		return nil, err
	}
	return p, nil
}

// Delete destroys *p and releases its storage; a nil p is ignored.
func Delete[T any](env Env[T], p *T) {
	if p == nil {
		return
	}
	env = env.Resolve()
	DestroyAt(env.Life, p)
	env.Alloc.Free(unsafe.Pointer(p), reflect.TypeFor[T]())
}
