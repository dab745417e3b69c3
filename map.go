package nibblemap

import (
	"unsafe"

	"github.com/forestrie/go-nibblemap/keyorder"
)

// Map is an ordered map from a fixed-width numeric key to V, backed by a
// fan-out-16 digital trie over the order-transformed key nibbles. Lookups
// cost exactly 2*sizeof(K) slot dereferences; insertion and deletion walk
// the path more than once, a constant multiple of that cost independent
// of the element count. The zero Map is not ready to use; construct with
// New.
type Map[K keyorder.Key, V any] struct {
	root  unsafe.Pointer
	count int
	order keyorder.Order[K]
	alloc CellAllocator[V]
	kw    int // key width in bytes
	w     int // trie depth in nibbles, 2*kw

	endC  Cursor[K, V]
	rendC Cursor[K, V]
}

// New returns an empty map ordering K naturally unless overridden with
// WithOrder.
func New[K keyorder.Key, V any](opts ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		root:  sentinel(),
		order: keyorder.Default[K](),
		alloc: HeapAllocator[V]{},
		kw:    keyorder.Width[K](),
	}
	m.w = 2 * m.kw
	for _, o := range opts {
		o(m)
	}
	m.endC = m.endCursor(false)
	m.rendC = m.endCursor(true)
	return m
}

// bits returns the transformed bit pattern the trie indexes k under.
func (m *Map[K, V]) bits(k K) uint64 {
	return keyorder.Bits(m.order.Apply(k))
}

func (m *Map[K, V]) maxBits() uint64 {
	return ^uint64(0) >> (64 - uint(m.kw)*8)
}

// endCursor builds a sentinel-form cursor: all key bytes zero, depth at
// the root, overflow marking which end.
func (m *Map[K, V]) endCursor(rev bool) Cursor[K, V] {
	var c Cursor[K, V]
	c.m = m
	c.rev = rev
	c.depth = m.w
	c.stack[m.w-1] = &m.root
	if rev {
		c.kb[m.kw] = ovfBefore
	} else {
		c.kb[m.kw] = ovfPast
	}
	return c
}

// seek positions a cursor at the transformed key bits. With findNext the
// cursor advances to the nearest present key in the traversal direction
// when the exact key is absent; otherwise a miss yields the end sentinel.
func (m *Map[K, V]) seek(bits uint64, findNext, rev bool) Cursor[K, V] {
	var c Cursor[K, V]
	c.m = m
	c.rev = rev
	putBits(&c.kb, bits, m.kw)
	c.fillStack()
	for c.depth = m.w - 1; c.depth > 0 && present(*c.stack[c.depth]); c.depth-- {
	}
	if c.valid() {
		return c
	}
	if !findNext {
		return m.endCursor(rev)
	}
	// The sought subtree is absent; normalize the nibbles below the
	// resting depth to the minimal (maximal, reverse) completion so the
	// advance lands on the true neighbour rather than a completion of the
	// sought key.
	if rev {
		fillBelow(c.kb[:], c.depth, 0xF)
		c.decrement()
	} else {
		fillBelow(c.kb[:], c.depth, 0x0)
		c.increment()
	}
	return c
}

// addCell materializes the path for bits and binds a fresh value cell to
// the leaf slot. A failed cell allocation rolls back every interior node
// this insertion created before reporting ErrAllocFailed.
func (m *Map[K, V]) addCell(bits uint64) (*V, error) {
	leaf, created := insertPath(&m.root, bits, m.w)
	cell := m.alloc.Get()
	if cell == nil {
		rollbackPath(created)
		return nil, ErrAllocFailed
	}
	*leaf = unsafe.Pointer(cell)
	m.count++
	return cell, nil
}

func (m *Map[K, V]) mustCell(bits uint64) *V {
	cell, err := m.addCell(bits)
	if err != nil {
		panic(err)
	}
	return cell
}

// Ref returns a pointer to the value stored under k, inserting a zero
// value first if k is absent. The pointer stays valid until k is removed
// or the map cleared.
func (m *Map[K, V]) Ref(k K) *V {
	b := m.bits(k)
	if p := findSlot(&m.root, b, m.w); present(p) {
		return (*V)(p)
	}
	return m.mustCell(b)
}

// At returns a pointer to the value stored under k, or ErrKeyNotFound.
func (m *Map[K, V]) At(k K) (*V, error) {
	p := findSlot(&m.root, m.bits(k), m.w)
	if !present(p) {
		return nil, ErrKeyNotFound
	}
	return (*V)(p), nil
}

// Get returns the value stored under k and whether k is present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	p := findSlot(&m.root, m.bits(k), m.w)
	if !present(p) {
		var zero V
		return zero, false
	}
	return *(*V)(p), true
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	return present(findSlot(&m.root, m.bits(k), m.w))
}

// Insert stores v under k if k is absent and reports whether it did. The
// returned cursor names k either way; an existing value is not
// overwritten.
func (m *Map[K, V]) Insert(k K, v V) (Cursor[K, V], bool) {
	b := m.bits(k)
	inserted := false
	if !present(findSlot(&m.root, b, m.w)) {
		*m.mustCell(b) = v
		inserted = true
	}
	return m.seek(b, false, false), inserted
}

// InsertLazy is Insert with deferred construction: construct runs only
// when k is absent, writing directly into the newly bound cell.
func (m *Map[K, V]) InsertLazy(k K, construct func() V) (Cursor[K, V], bool) {
	b := m.bits(k)
	inserted := false
	if !present(findSlot(&m.root, b, m.w)) {
		*m.mustCell(b) = construct()
		inserted = true
	}
	return m.seek(b, false, false), inserted
}

// Find returns a cursor naming k, or the end sentinel if k is absent.
func (m *Map[K, V]) Find(k K) Cursor[K, V] {
	return m.seek(m.bits(k), false, false)
}

// LowerBound returns a cursor at the smallest present key not below k, or
// the end sentinel.
func (m *Map[K, V]) LowerBound(k K) Cursor[K, V] {
	return m.seek(m.bits(k), true, false)
}

// UpperBound returns a cursor at the smallest present key above k, or the
// end sentinel.
func (m *Map[K, V]) UpperBound(k K) Cursor[K, V] {
	c := m.seek(m.bits(k), false, false)
	if c.Equal(m.endC) {
		return m.seek(m.bits(k), true, false)
	}
	c.Next()
	return c
}

// Delete removes k and reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	c := m.seek(m.bits(k), false, false)
	if !c.Ok() {
		return false
	}
	c.removeCurrent()
	m.count--
	return true
}

// DeleteAt removes the key the cursor names and returns a cursor at its
// successor in the cursor's traversal direction. A sentinel cursor is
// returned unchanged.
func (m *Map[K, V]) DeleteAt(c Cursor[K, V]) Cursor[K, V] {
	if !c.removeCurrent() {
		return c
	}
	m.count--
	c.Next()
	return c
}

// DeleteRange removes every key in [first, last), advancing in first's
// traversal direction. The advance happens off the removed cursor's still
// valid key bytes, so removing the current key never invalidates it.
func (m *Map[K, V]) DeleteRange(first, last Cursor[K, V]) {
	for !first.Equal(last) {
		if first.removeCurrent() {
			m.count--
		}
		first.Next()
	}
}

// Clear removes every element. Cells return to the allocator, interior
// nodes to the block pool.
func (m *Map[K, V]) Clear() {
	m.releaseSubtree(m.root, m.w)
	m.root = sentinel()
	m.count = 0
}

// releaseSubtree destroys every value cell and releases every interior
// node below the slot value p at depth d.
func (m *Map[K, V]) releaseSubtree(p unsafe.Pointer, d int) {
	if !present(p) {
		return
	}
	if d == 0 {
		m.alloc.Put((*V)(p))
		return
	}
	blk := (*block)(p)
	for i := range blk {
		m.releaseSubtree(blk[i], d-1)
	}
	freeBlock(blk)
}

// Len returns the element count.
func (m *Map[K, V]) Len() int { return m.count }

// Empty reports whether the map holds no elements.
func (m *Map[K, V]) Empty() bool { return m.count == 0 }

// First returns a cursor at the smallest present key, or the end sentinel
// for an empty map.
func (m *Map[K, V]) First() Cursor[K, V] {
	return m.seek(0, true, false)
}

// Last returns a reverse cursor at the largest present key, or the reverse
// end sentinel for an empty map. Its Next walks descending.
func (m *Map[K, V]) Last() Cursor[K, V] {
	return m.seek(m.maxBits(), true, true)
}

// End returns the forward end sentinel: the position after the largest
// key.
func (m *Map[K, V]) End() Cursor[K, V] { return m.endC }

// REnd returns the reverse end sentinel: the position before the smallest
// key.
func (m *Map[K, V]) REnd() Cursor[K, V] { return m.rendC }

// Clone returns a map with the same order and allocator holding copies of
// every element.
func (m *Map[K, V]) Clone() *Map[K, V] {
	n := New(WithOrder[K, V](m.order), WithAllocator[K, V](m.alloc))
	for c := m.First(); !c.Equal(m.endC); c.Next() {
		n.Insert(c.Key(), *c.Value())
	}
	return n
}

// Take transplants src's elements into m, replacing m's contents without
// copying cells or nodes, and leaves src empty. Both maps must share the
// same order; cursors into src keep naming the transplanted elements.
func (m *Map[K, V]) Take(src *Map[K, V]) {
	if src == m {
		return
	}
	m.Clear()
	m.root = src.root
	m.count = src.count
	src.root = sentinel()
	src.count = 0
}

// Merge inserts every element of src into m. Keys already present in m
// keep their value.
func (m *Map[K, V]) Merge(src *Map[K, V]) {
	for c := src.First(); !c.Equal(src.endC); c.Next() {
		m.Insert(c.Key(), *c.Value())
	}
}
