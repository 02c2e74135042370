package Lifecycle

// Caps are the operations of a Lifecycle that never fail. Bulk operations use them to skip rollback bookkeeping
// and to decide between moving and copying; the observable behavior is the same either way.
type Caps uint8

const (
	InitNoFail Caps = 1 << iota
	CopyNoFail
	MoveNoFail

	AllNoFail = InitNoFail | CopyNoFail | MoveNoFail
)

// Has every flag of f.
func (c Caps) Has(f Caps) bool {
	return c&f == f
}

// Lifecycle constructs and destroys values of T in storage the caller owns.
//
// Init, Copy and Move construct *dst from nothing, from *src, or by taking over *src; after Move, *src is still a
// value that must be destroyed. Assign replaces a live *dst with a copy of *src. Destroy ends the life of *p; its
// failure is unrecoverable and terminates the process.
type Lifecycle[T any] interface {
	Init(p *T) error
	Copy(dst, src *T) error
	Move(dst, src *T) error
	Assign(dst, src *T) error
	Destroy(p *T) error
	Caps() Caps
}

// Plain is the Lifecycle of ordinary Go values: construction is zeroing or assignment, destruction zeroes the value
// so the collector can reclaim whatever it referenced. Nothing fails.
type Plain[T any] struct{}

func (Plain[T]) Init(p *T) error {
	*p = *new(T)
	return nil
}

func (Plain[T]) Copy(dst, src *T) error {
	*dst = *src
	return nil
}

func (Plain[T]) Move(dst, src *T) error {
	*dst = *src
	*src = *new(T)
	return nil
}

func (Plain[T]) Assign(dst, src *T) error {
	*dst = *src
	return nil
}

func (Plain[T]) Destroy(p *T) error {
	*p = *new(T)
	return nil
}

func (Plain[T]) Caps() Caps {
	return AllNoFail
}

// Env is where a container's elements live and how they are born and die. Nil fields mean Heap and Plain.
type Env[T any] struct {
	Alloc Allocator
	Life  Lifecycle[T]
}

// Default is Heap with Plain.
func Default[T any]() Env[T] {
	return Env[T]{Heap, Plain[T]{}}
}

// Resolve fills in the defaults of nil fields.
func (e Env[T]) Resolve() Env[T] {
	if e.Alloc == nil {
		e.Alloc = Heap
	}
	if e.Life == nil {
		e.Life = Plain[T]{}
	}
	return e
}
