package Sets

// Set of comparable elements.
type Set[E comparable] interface {
	// Put e, reporting whether it wasn't present. Growing the set may fail.
	Put(E) (bool, error)
	Has(E) bool
	Remove(E) bool
	Size() int
	Range(func(E) bool)
}

// PutAll puts every element of src into dst and returns how many were added. It stops at the first failure.
func PutAll[E comparable](dst, src Set[E]) (n int, err error) {
	src.Range(func(e E) bool {
		var added bool
		if added, err = dst.Put(e); added {
			n++
		}
		return err == nil
	})
	return
}

// RemoveAll removes every element of src from dst and returns how many were removed. dst and src must differ.
func RemoveAll[E comparable](dst, src Set[E]) (n int) {
	src.Range(func(e E) bool {
		if dst.Remove(e) {
			n++
		}
		return true
	})
	return
}

// Eq reports whether a and b hold the same elements.
func Eq[E comparable](a, b Set[E]) bool {
	if a.Size() != b.Size() {
		return false
	}
	eq := true
	a.Range(func(e E) bool {
		eq = b.Has(e)
		return eq
	})
	return eq
}
