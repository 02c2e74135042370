/*
Package FlatMap implements Map, an open addressing hash map whose entries live in a dense node array and whose
slots live in a separate index table.

Each slot of the index table holds 1 + the position of a node, or 0 for an empty slot; its entries are 8, 16, 32 or
64 bits wide, whichever is the narrowest that can address the capacity. Probing is linear from hash % capacity and
removal shifts the following entries of the cluster backward, so there are no tombstones. Nodes are kept dense:
removing one moves the last node into the hole. A hash of 0 is reserved for empty nodes and remapped.

Keys and values are constructed and destroyed through their Lifecycles; nodes are relocated bitwise when the table
is rehashed. The Map is not safe for concurrent use.
*/
package FlatMap

import (
	"iter"

	"github.com/g-m-twostay/go-nx/Lifecycle"
)

// zeroHash substitutes a hash of 0.
const zeroHash uint64 = 0x9e3779b97f4a7c15

type node[K comparable, V any] struct {
	hash uint64
	key  K
	val  V
}

type Map[K comparable, V any] struct {
	nodes []node[K, V] // len(nodes) is the capacity; [0, n) are live.
	idx   index
	n     int
	cfg   Config
	alloc Lifecycle.Allocator
	keys  Lifecycle.Lifecycle[K]
	vals  Lifecycle.Lifecycle[V]
	hash  func(K) uint64
}

// New Map. Unless WithCapacity asks for room, nothing is allocated until the first Insert.
func New[K comparable, V any](opts ...Option) (*Map[K, V], error) {
	o := options{cfg: defaultConfig, alloc: Lifecycle.Heap}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.validate(); err != nil {
		return nil, err
	}
	u := &Map[K, V]{cfg: o.cfg, alloc: o.alloc}
	var err error
	if u.keys, err = typed[Lifecycle.Lifecycle[K]](o.keys, "key lifecycle"); err != nil {
		return nil, err
	}
	if u.vals, err = typed[Lifecycle.Lifecycle[V]](o.vals, "value lifecycle"); err != nil {
		return nil, err
	}
	if u.hash, err = typed[func(K) uint64](o.hash, "hasher"); err != nil {
		return nil, err
	}
	if u.alloc == nil {
		u.alloc = Lifecycle.Heap
	}
	if u.keys == nil {
		u.keys = Lifecycle.Plain[K]{}
	}
	if u.vals == nil {
		u.vals = Lifecycle.Plain[V]{}
	}
	if u.hash == nil {
		u.hash = defaultHasher[K]()
	}
	if o.capacity > 0 {
		if err = u.rehash(u.cfg.grown(0, o.capacity)); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (u *Map[K, V]) Size() int {
	return u.n
}

// Capacity is the number of slots.
func (u *Map[K, V]) Capacity() int {
	return len(u.nodes)
}

// Load is Size / Capacity, 0 for an unallocated Map.
func (u *Map[K, V]) Load() float64 {
	if len(u.nodes) == 0 {
		return 0
	}
	return float64(u.n) / float64(len(u.nodes))
}

// IndexWidth is the width in bits of an index table entry, 0 for an unallocated Map.
func (u *Map[K, V]) IndexWidth() int {
	if u.idx == nil {
		return 0
	}
	return u.idx.bits()
}

func (u *Map[K, V]) Config() Config {
	return u.cfg
}

func (u *Map[K, V]) hashOf(k K) uint64 {
	if h := u.hash(k); h != 0 {
		return h
	}
	return zeroHash
}

// find returns the slot holding k, or the empty slot ending its probe sequence. The table must be allocated.
func (u *Map[K, V]) find(k K, h uint64) (int, bool) {
	m := len(u.nodes)
	for i := int(h % uint64(m)); ; i = (i + 1) % m {
		e := u.idx.at(i)
		if e == 0 {
			return i, false
		}
		if nd := &u.nodes[e-1]; nd.hash == h && nd.key == k {
			return i, true
		}
	}
}

// slotOf returns the slot pointing to node j.
func (u *Map[K, V]) slotOf(j int) int {
	m := len(u.nodes)
	for i := int(u.nodes[j].hash % uint64(m)); ; i = (i + 1) % m {
		if u.idx.at(i) == j+1 {
			return i
		}
	}
}

// Lookup returns a pointer to the value of k. It's invalidated by Insert and Remove.
func (u *Map[K, V]) Lookup(k K) (*V, bool) {
	if u.n == 0 {
		return nil, false
	}
	i, ok := u.find(k, u.hashOf(k))
	if !ok {
		return nil, false
	}
	return &u.nodes[u.idx.at(i)-1].val, true
}

func (u *Map[K, V]) Get(k K) (v V, ok bool) {
	p, ok := u.Lookup(k)
	if ok {
		v = *p
	}
	return
}

func (u *Map[K, V]) Has(k K) bool {
	_, ok := u.Lookup(k)
	return ok
}

// Insert copies v into the entry of k, copying k as well if it's new. If k was present, its previous value is
// returned and the caller becomes responsible for destroying it. On failure the Map's contents are unchanged.
func (u *Map[K, V]) Insert(k K, v V) (prev V, had bool, err error) {
	h := u.hashOf(k)
	if u.n > 0 {
		if i, ok := u.find(k, h); ok {
			nd := &u.nodes[u.idx.at(i)-1]
			prev = nd.val
			if err = Lifecycle.CopyAt(u.vals, &nd.val, &v); err != nil {
				nd.val = prev
				return *new(V), false, err
			}
			return prev, true, nil
		}
	}
	if m := u.cfg.grown(len(u.nodes), u.n+1); m != len(u.nodes) {
		if err = u.rehash(m); err != nil {
			return
		}
	}
	i, _ := u.find(k, h)
	nd := &u.nodes[u.n]
	if err = Lifecycle.CopyAt(u.keys, &nd.key, &k); err != nil {
		*nd = node[K, V]{}
		return
	}
	if err = Lifecycle.CopyAt(u.vals, &nd.val, &v); err != nil {
		Lifecycle.DestroyAt(u.keys, &nd.key)
		*nd = node[K, V]{}
		return
	}
	nd.hash = h
	u.idx.put(i, u.n+1)
	u.n++
	return
}

// Remove deletes the entry of k and returns its value, which the caller becomes responsible for destroying.
func (u *Map[K, V]) Remove(k K) (v V, ok bool) {
	if u.n == 0 {
		return
	}
	i, ok := u.find(k, u.hashOf(k))
	if !ok {
		return
	}
	j := u.idx.at(i) - 1
	v = u.nodes[j].val
	Lifecycle.DestroyAt(u.keys, &u.nodes[j].key)
	u.unlink(i)

	last := u.n - 1
	if j != last {
		s := u.slotOf(last)
		u.nodes[j] = u.nodes[last]
		u.idx.put(s, j+1)
	}
	u.nodes[last] = node[K, V]{}
	u.n--

	if m := u.cfg.shrunk(len(u.nodes), u.n); m != len(u.nodes) {
		if err := u.rehash(m); err != nil {
			Lifecycle.L.Debug("flatmap shrink skipped", "size", u.n, "capacity", len(u.nodes), "error", err)
		}
	}
	return v, true
}

// unlink empties slot i and shifts the rest of its cluster back so every entry stays reachable from its home slot.
func (u *Map[K, V]) unlink(i int) {
	m := len(u.nodes)
	u.idx.put(i, 0)
	for k := (i + 1) % m; ; k = (k + 1) % m {
		e := u.idx.at(k)
		if e == 0 {
			return
		}
		home := int(u.nodes[e-1].hash % uint64(m))
		// the entry at k may move to i unless its home lies cyclically in (i, k].
		if (i < k && (home <= i || home > k)) || (i > k && home <= i && home > k) {
			u.idx.put(i, e)
			u.idx.put(k, 0)
			i = k
		}
	}
}

// rehash moves the nodes into tables of m slots.
func (u *Map[K, V]) rehash(m int) error {
	nodes := Lifecycle.AllocBlock[node[K, V]](u.alloc, m)
	if nodes == nil {
		return Lifecycle.ErrOutOfMemory
	}
	idx, ok := newIndex(u.alloc, m)
	if !ok {
		Lifecycle.FreeBlock(u.alloc, nodes)
		return Lifecycle.ErrOutOfMemory
	}
	Lifecycle.L.Debug("flatmap rehash", "size", u.n, "from", len(u.nodes), "to", m, "width", idx.bits())
	copy(nodes, u.nodes[:u.n])
	u.release()
	u.nodes, u.idx = nodes, idx
	for j := range u.n {
		i := int(nodes[j].hash % uint64(m))
		for idx.at(i) != 0 {
			i = (i + 1) % m
		}
		idx.put(i, j+1)
	}
	return nil
}

func (u *Map[K, V]) release() {
	if u.idx != nil {
		u.idx.free(u.alloc)
	}
	Lifecycle.FreeBlock(u.alloc, u.nodes)
	u.nodes, u.idx = nil, nil
}

// All iterates over the entries in node order. The Map must not be modified during the iteration.
func (u *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for j := range u.n {
			if !yield(u.nodes[j].key, u.nodes[j].val) {
				return
			}
		}
	}
}

func (u *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for j := range u.n {
			if !yield(u.nodes[j].key) {
				return
			}
		}
	}
}

// Clear destroys every entry, newest first, and keeps the capacity.
func (u *Map[K, V]) Clear() {
	for j := u.n - 1; j >= 0; j-- {
		Lifecycle.DestroyAt(u.vals, &u.nodes[j].val)
		Lifecycle.DestroyAt(u.keys, &u.nodes[j].key)
		u.nodes[j] = node[K, V]{}
	}
	u.n = 0
	if u.idx != nil {
		u.idx.clear()
	}
}

// Destroy clears the Map and releases its tables. It's empty and usable afterward.
func (u *Map[K, V]) Destroy() {
	u.Clear()
	u.release()
}
