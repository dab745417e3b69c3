package nibblemap

import (
	"sync"
	"unsafe"
)

// block is an interior trie node: sixteen child slots indexed by one key
// nibble. A slot is a single pointer with positional discrimination: at
// depth > 0 a non-sentinel slot references another block, at depth 0 it
// references a value cell. The block type carries no type parameter, which
// is what lets every map instantiation in the process share one sentinel.
type block [fanout]unsafe.Pointer

// emptyBlock is the process-wide sentinel standing in for every absent
// subtree. Each of its slots references the block itself, so descending
// through an absent subtree stays inside the sentinel and never needs a
// presence check, while absence itself reduces to one pointer comparison.
// It is initialized once and never written again.
var emptyBlock = func() *block {
	b := &block{}
	for i := range b {
		b[i] = unsafe.Pointer(b)
	}
	return b
}()

func sentinel() unsafe.Pointer { return unsafe.Pointer(emptyBlock) }

// present reports whether a slot value references a real subtree or cell.
func present(p unsafe.Pointer) bool { return p != sentinel() }

// blockPool recycles interior nodes so that steady-state insert/remove
// churn does not allocate.
var blockPool = sync.Pool{New: func() any { return &block{} }}

// newBlock returns a block with every slot absent.
func newBlock() *block {
	b := blockPool.Get().(*block)
	for i := range b {
		b[i] = sentinel()
	}
	return b
}

func freeBlock(b *block) {
	blockPool.Put(b)
}

// blockEmpty reports whether all sixteen slots of b are absent.
func blockEmpty(b *block) bool {
	for i := range b {
		if present(b[i]) {
			return false
		}
	}
	return true
}

// findSlot walks w levels from the root slot, selecting the child slot for
// each nibble of bits from most significant down, and returns the leaf
// slot value. Exactly w dereferences, no allocation; walks along absent
// paths stay inside the sentinel and report absence.
func findSlot(root *unsafe.Pointer, bits uint64, w int) unsafe.Pointer {
	cur := root
	for t := w - 1; t >= 0; t-- {
		blk := (*block)(*cur)
		cur = &blk[bitsNibble(bits, t)]
	}
	return *cur
}

// insertPath materializes an interior node at every absent level along the
// path for bits and returns the leaf slot reference. created is the first
// slot this call switched from the sentinel to a fresh block, or nil if
// the full interior path already existed; it is the rollback handle for a
// failed cell allocation. The caller must already have checked that the
// leaf is absent.
func insertPath(root *unsafe.Pointer, bits uint64, w int) (leaf, created *unsafe.Pointer) {
	cur := root
	for t := w - 1; t >= 0; t-- {
		if !present(*cur) {
			*cur = unsafe.Pointer(newBlock())
			if created == nil {
				created = cur
			}
		}
		blk := (*block)(*cur)
		cur = &blk[bitsNibble(bits, t)]
	}
	return cur, created
}

// rollbackPath undoes the interior nodes materialized by a failed
// insertion. Each block below created holds at most one present slot, the
// link to the next block of the chain, and the chain carries no value
// cell, so releasing it restores the no-empty-interior invariant.
func rollbackPath(created *unsafe.Pointer) {
	if created == nil {
		return
	}
	p := *created
	for present(p) {
		blk := (*block)(p)
		next := sentinel()
		for i := range blk {
			if present(blk[i]) {
				next = blk[i]
				break
			}
		}
		freeBlock(blk)
		p = next
	}
	*created = sentinel()
}
