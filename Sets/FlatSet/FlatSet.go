// Package FlatSet is a Sets.Set over a FlatMap.Map with empty values.
package FlatSet

import (
	"iter"

	"github.com/g-m-twostay/go-nx/Maps/FlatMap"
)

type FlatSet[E comparable] struct {
	m *FlatMap.Map[E, struct{}]
}

// New FlatSet; the options are those of FlatMap.New.
func New[E comparable](opts ...FlatMap.Option) (*FlatSet[E], error) {
	m, err := FlatMap.New[E, struct{}](opts...)
	if err != nil {
		return nil, err
	}
	return &FlatSet[E]{m: m}, nil
}

func (u *FlatSet[E]) Put(e E) (bool, error) {
	_, had, err := u.m.Insert(e, struct{}{})
	return err == nil && !had, err
}

func (u *FlatSet[E]) Has(e E) bool {
	return u.m.Has(e)
}

func (u *FlatSet[E]) Remove(e E) bool {
	_, ok := u.m.Remove(e)
	return ok
}

func (u *FlatSet[E]) Size() int {
	return u.m.Size()
}

func (u *FlatSet[E]) Capacity() int {
	return u.m.Capacity()
}

// Range calls f on every element until it returns false. The set must not be modified meanwhile.
func (u *FlatSet[E]) Range(f func(E) bool) {
	for e := range u.m.Keys() {
		if !f(e) {
			return
		}
	}
}

func (u *FlatSet[E]) All() iter.Seq[E] {
	return u.m.Keys()
}

// Destroy empties the set and releases its tables.
func (u *FlatSet[E]) Destroy() {
	u.m.Destroy()
}
