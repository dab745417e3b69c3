package nibblemap

import (
	"bytes"
	"unsafe"

	"github.com/forestrie/go-nibblemap/keyorder"
)

// A Cursor addresses one position within a Map: either a present key or
// one of the two end sentinels. It carries the nibble bytes of the key it
// names, the overflow marker, and a stack of slot references from root to
// leaf, so movement needs no parent pointers in nodes.
//
// Cursors obtained before an insertion remain valid afterwards. Removal
// invalidates only cursors naming the removed key.
//
// A Cursor is a value; copies are independent. The zero Cursor is not
// meaningful, obtain cursors from a Map.
type Cursor[K keyorder.Key, V any] struct {
	m     *Map[K, V]
	stack [maxNibbles]*unsafe.Pointer
	kb    [maxKeyBytes + 1]byte
	depth int
	rev   bool
}

// Ok reports whether the cursor names a present key, as opposed to one of
// the end sentinels.
func (c Cursor[K, V]) Ok() bool {
	return c.m != nil && c.kb[c.m.kw] == ovfNormal
}

// Key returns the key the cursor names, or the zero key at an end
// sentinel.
func (c Cursor[K, V]) Key() K {
	if !c.Ok() {
		var zero K
		return zero
	}
	return c.m.order.Restore(keyorder.FromBits[K](getBits(&c.kb, c.m.kw)))
}

// Value returns the stored value cell, or nil at an end sentinel. The
// pointer stays valid until the key is removed or the map cleared.
func (c Cursor[K, V]) Value() *V {
	if !c.Ok() {
		return nil
	}
	blk := (*block)(*c.stack[0])
	return (*V)(blk[nibbleAt(&c.kb, 0)])
}

// Equal compares positions. Two cursors are equal iff their key bytes and
// overflow marker match byte for byte; the slot stacks do not participate.
func (c Cursor[K, V]) Equal(o Cursor[K, V]) bool {
	return bytes.Equal(c.kb[:c.m.kw+1], o.kb[:o.m.kw+1])
}

// Next advances the cursor one position in its traversal direction:
// ascending for cursors from First/Find/LowerBound, descending for
// cursors from Last. At the end sentinel of its own direction the cursor
// stays put; at the opposite sentinel it steps onto the first element in
// its direction.
func (c *Cursor[K, V]) Next() {
	if c.rev {
		c.decrement()
	} else {
		c.increment()
	}
}

// Prev moves the cursor one position against its traversal direction.
func (c *Cursor[K, V]) Prev() {
	if c.rev {
		c.increment()
	} else {
		c.decrement()
	}
}

// fillStack populates the slot stack for the cursor's current key bytes.
// The descent indexes sentinel blocks as readily as real ones, so no
// presence checks are needed on the way down.
func (c *Cursor[K, V]) fillStack() {
	w := c.m.w
	cur := &c.m.root
	c.stack[w-1] = cur
	for t := w - 2; t >= 0; t-- {
		blk := (*block)(*cur)
		cur = &blk[nibbleAt(&c.kb, t+1)]
		c.stack[t] = cur
	}
}

// valid reports whether the cursor rests on a present leaf.
func (c *Cursor[K, V]) valid() bool {
	if c.depth != 0 {
		return false
	}
	blk := (*block)(*c.stack[0])
	return present(blk[nibbleAt(&c.kb, 0)])
}

// increment walks the cursor to the in-order successor. At each step it
// descends while the subtree addressed by the current nibble is present,
// and otherwise increments that nibble with carry; carry out of the top
// nibble reaches the overflow byte and ends the walk. A cursor at the
// reverse sentinel wraps one step to the first element; a cursor at the
// forward sentinel stays there.
func (c *Cursor[K, V]) increment() {
	w := c.m.w
	for c.depth < w {
		if c.depth != 0 {
			blk := (*block)(*c.stack[c.depth])
			if nx := &blk[nibbleAt(&c.kb, c.depth)]; present(*nx) {
				c.stack[c.depth-1] = nx
				c.depth--
			} else {
				c.depth += incrNibble(c.kb[:], c.depth, w)
			}
		} else {
			c.depth += incrNibble(c.kb[:], c.depth, w)
		}
		if c.depth == 0 && c.valid() {
			return
		}
	}
	if c.kb[c.m.kw] == ovfBefore {
		c.reset(0x00, ovfNormal)
		c.depth = w - 1
		c.increment()
		return
	}
	c.reset(0x00, ovfPast)
}

// decrement is the borrow mirror of increment, walking to the in-order
// predecessor. A cursor at the forward sentinel wraps one step to the last
// element; a cursor at the reverse sentinel stays there.
func (c *Cursor[K, V]) decrement() {
	w := c.m.w
	for c.depth < w {
		if c.depth != 0 {
			blk := (*block)(*c.stack[c.depth])
			if nx := &blk[nibbleAt(&c.kb, c.depth)]; present(*nx) {
				c.stack[c.depth-1] = nx
				c.depth--
			} else {
				c.depth += decrNibble(c.kb[:], c.depth, w)
			}
		} else {
			c.depth += decrNibble(c.kb[:], c.depth, w)
		}
		if c.depth == 0 && c.valid() {
			return
		}
	}
	if c.kb[c.m.kw] == ovfPast {
		c.reset(0xFF, ovfNormal)
		c.depth = w - 1
		c.decrement()
		return
	}
	c.reset(0x00, ovfBefore)
}

// reset rewrites the key bytes with fill and installs the overflow marker,
// leaving the cursor in sentinel form at the root.
func (c *Cursor[K, V]) reset(fill byte, ovf byte) {
	kw := c.m.kw
	for i := range kw {
		c.kb[i] = fill
	}
	c.kb[kw] = ovf
	c.depth = c.m.w
}

// removeCurrent erases the leaf the cursor names: the cell is released,
// the leaf slot becomes absent, and interior nodes left fully empty are
// released bottom-up. On return the depth rests at the shallowest level
// that survived the removal, with the nibbles below it normalized so an
// immediate advance lands on the true neighbour.
func (c *Cursor[K, V]) removeCurrent() bool {
	if c.depth != 0 {
		return false
	}
	blk := (*block)(*c.stack[0])
	leaf := &blk[nibbleAt(&c.kb, 0)]
	if !present(*leaf) {
		return false
	}
	c.m.alloc.Put((*V)(*leaf))
	*leaf = sentinel()

	w := c.m.w
	for ; c.depth < w; c.depth++ {
		nb := (*block)(*c.stack[c.depth])
		if !blockEmpty(nb) {
			break
		}
		freeBlock(nb)
		*c.stack[c.depth] = sentinel()
	}

	fill := byte(0x0)
	if c.rev {
		fill = 0xF
	}
	fillBelow(c.kb[:], c.depth, fill)
	return true
}
